package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tessellata/lineage/docread"
	"github.com/tessellata/lineage/parse"
)

// readDocs loads every document from one argument. "-" reads stdin,
// anything else goes through docread (paths, file:// and http(s)://
// URLs, .gz files).
func readDocs(ctx context.Context, arg string) ([]docread.Document, error) {
	if arg != "-" {
		return docread.ReadDocuments(ctx, arg)
	}
	docs, err := parse.ParseAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	out := make([]docread.Document, len(docs))
	for i, doc := range docs {
		uri := "stdin"
		if len(docs) > 1 {
			uri = fmt.Sprintf("stdin#part=%d", i)
		}
		out[i] = docread.Document{URI: uri, Doc: doc}
	}
	return out, nil
}

// readDoc loads exactly one document from one argument.
func readDoc(ctx context.Context, arg string) (docread.Document, error) {
	docs, err := readDocs(ctx, arg)
	if err != nil {
		return docread.Document{}, err
	}
	if len(docs) != 1 {
		return docread.Document{}, fmt.Errorf("%s: expected one document, found %d", arg, len(docs))
	}
	return docs[0], nil
}
