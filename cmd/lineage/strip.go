package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/tessellata/lineage/docread"
	"github.com/tessellata/lineage/ir"
	"github.com/tessellata/lineage/lineage"
)

func strip(cfg *StripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Strip.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	path, err := cfg.sourcesPath()
	if err != nil {
		return err
	}
	ctx := context.Background()
	first := true
	for _, arg := range args {
		docs, err := readDocs(ctx, arg)
		if err != nil {
			return err
		}
		stripped := make([]*ir.Node, len(docs))
		for i, doc := range docs {
			stripped[i] = lineage.WithoutSources(doc.Doc, path, false)
		}
		if cfg.Inplace {
			if err := rewriteFile(cfg, arg, stripped); err != nil {
				return err
			}
			continue
		}
		for _, doc := range stripped {
			if !first {
				if _, err := fmt.Fprintln(cc.Out, "---"); err != nil {
					return err
				}
			}
			first = false
			if err := cfg.encodeDoc(cc.Out, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// rewriteFile writes the stripped documents back over a local file
// argument. Remote and stdin sources cannot be rewritten.
func rewriteFile(cfg *StripConfig, arg string, docs []*ir.Node) error {
	if arg == "-" {
		return fmt.Errorf("%w: cannot rewrite stdin", cli.ErrUsage)
	}
	u, err := url.Parse(docread.AsURL(arg))
	if err != nil || u.Scheme != "file" {
		return fmt.Errorf("%w: cannot rewrite %s", cli.ErrUsage, arg)
	}
	if strings.HasSuffix(u.Path, ".gz") {
		return fmt.Errorf("%w: cannot rewrite compressed file %s", cli.ErrUsage, arg)
	}
	var buf bytes.Buffer
	for i, doc := range docs {
		if i > 0 {
			buf.WriteString("---\n")
		}
		if err := cfg.encodeDoc(&buf, doc); err != nil {
			return err
		}
	}
	return os.WriteFile(u.Path, buf.Bytes(), 0644)
}
