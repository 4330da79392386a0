package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/tessellata/lineage/lineage"
)

func dedup(cfg *DedupConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dedup.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	navOpts, err := cfg.navOptions()
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
		for _, doc := range docs {
			out, err := lineage.Dedup(doc.Doc, navOpts...)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.URI, err)
			}
			if !first {
				if _, err := fmt.Fprintln(cc.Out, "---"); err != nil {
					return err
				}
			}
			first = false
			if err := cfg.encodeDoc(cc.Out, out); err != nil {
				return err
			}
		}
	}
	return nil
}
