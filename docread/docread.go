// Package docread loads dataset documents from files and URLs.
//
// A source may hold several YAML documents; each one is returned with
// its own URI, disambiguated by a #part=N fragment.
package docread

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessellata/lineage/debug"
	"github.com/tessellata/lineage/ir"
	"github.com/tessellata/lineage/parse"
)

// ErrScheme reports a source URL whose scheme has no reader.
var ErrScheme = errors.New("unsupported url scheme")

// Document pairs one parsed document with the URI it came from.
type Document struct {
	URI string
	Doc *ir.Node
}

// AsURL normalizes a source reference: with a scheme it comes back
// unchanged, a bare filesystem path becomes an absolute file:// URL.
func AsURL(pathOrURL string) string {
	if u, err := url.Parse(pathOrURL); err == nil && u.Scheme != "" {
		return pathOrURL
	}
	abs, err := filepath.Abs(pathOrURL)
	if err != nil {
		abs = pathOrURL
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// ReadDocuments reads every document from every source, in order.
// Sources may be bare paths, file:// URLs or http(s):// URLs, and may
// be gzip-compressed (by .gz suffix). A source holding a single
// document keeps its URL as the URI; a multi-document source yields
// one entry per document with a #part=N fragment, N counting from 0.
func ReadDocuments(ctx context.Context, sources ...string) ([]Document, error) {
	var out []Document
	for _, src := range sources {
		docs, err := readSource(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		out = append(out, docs...)
	}
	return out, nil
}

func readSource(ctx context.Context, src string) ([]Document, error) {
	srcURL := AsURL(src)
	u, err := url.Parse(srcURL)
	if err != nil {
		return nil, err
	}
	if debug.Read() {
		slog.Debug("docread", "url", srcURL)
	}
	r, err := open(ctx, u)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var body io.Reader = r
	if strings.HasSuffix(u.Path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}
	docs, err := parse.ParseAll(body)
	if err != nil {
		return nil, err
	}
	out := make([]Document, len(docs))
	for i, doc := range docs {
		uri := srcURL
		if len(docs) > 1 {
			uri = fmt.Sprintf("%s#part=%d", srcURL, i)
		}
		out[i] = Document{URI: uri, Doc: doc}
	}
	return out, nil
}

func open(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	switch u.Scheme {
	case "file":
		return os.Open(u.Path)
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrScheme, u.Scheme)
	}
}
