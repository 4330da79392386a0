package docread

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tessellata/lineage/ir"
)

const singleDoc = "id: abc\nlabel: one\n"

const multiDoc = `id: d0
---
id: d1
---
id: d2
`

func writeFile(t *testing.T, dir, name, content string, gzipped bool) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if gzipped {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
		if err := gz.Close(); err != nil {
			t.Fatal(err)
		}
		return path
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return path
}

func checkIDs(t *testing.T, docs []Document, want ...string) {
	t.Helper()
	if len(docs) != len(want) {
		t.Fatalf("got %d documents, want %d", len(docs), len(want))
	}
	for i, d := range docs {
		id := ir.Get(d.Doc, "id")
		if id == nil || id.String != want[i] {
			t.Errorf("doc %d id = %v, want %q", i, id, want[i])
		}
	}
}

func TestReadDocumentsSingle(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ds.yml", singleDoc, false)
	docs, err := ReadDocuments(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, docs, "abc")
	if docs[0].URI != AsURL(path) {
		t.Errorf("URI = %q, want %q", docs[0].URI, AsURL(path))
	}
}

func TestReadDocumentsMulti(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ds.yml", multiDoc, false)
	docs, err := ReadDocuments(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, docs, "d0", "d1", "d2")
	base := AsURL(path)
	for i, d := range docs {
		want := fmt.Sprintf("%s#part=%d", base, i)
		if d.URI != want {
			t.Errorf("URI = %q, want %q", d.URI, want)
		}
	}
}

func TestReadDocumentsGzip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ds.yml.gz", multiDoc, true)
	docs, err := ReadDocuments(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, docs, "d0", "d1", "d2")
}

func TestReadDocumentsFileURL(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ds.yml", singleDoc, false)
	docs, err := ReadDocuments(context.Background(), "file://"+filepath.ToSlash(path))
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, docs, "abc")
}

func TestReadDocumentsHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/multi.yml" {
			fmt.Fprint(w, multiDoc)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	docs, err := ReadDocuments(context.Background(), srv.URL+"/multi.yml")
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, docs, "d0", "d1", "d2")

	if _, err := ReadDocuments(context.Background(), srv.URL+"/absent.yml"); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestReadDocumentsMixedSources(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yml", "id: a\n", false)
	b := writeFile(t, dir, "b.yml", multiDoc, false)
	docs, err := ReadDocuments(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, docs, "a", "d0", "d1", "d2")
}

func TestReadDocumentsBadScheme(t *testing.T) {
	_, err := ReadDocuments(context.Background(), "s3://bucket/key.yml")
	if !errors.Is(err, ErrScheme) {
		t.Fatalf("got %v, want ErrScheme", err)
	}
}

func TestAsURL(t *testing.T) {
	if got := AsURL("http://x/y.yml"); got != "http://x/y.yml" {
		t.Errorf("AsURL kept-scheme = %q", got)
	}
	got := AsURL("some/rel/path.yml")
	if !strings.HasPrefix(got, "file:///") || !strings.HasSuffix(got, "/some/rel/path.yml") {
		t.Errorf("AsURL bare path = %q", got)
	}
}
