package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/tessellata/lineage/lineage"
)

func ls(cfg *LsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ls.Parse(cc, args)
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
	var filter *vm.Program
	if cfg.Filter != "" {
		filter, err = expr.Compile(cfg.Filter, expr.AsBool())
		if err != nil {
			return fmt.Errorf("%w: filter: %v", cli.ErrUsage, err)
		}
	}
	ctx := context.Background()
	for _, arg := range args {
		docs, err := readDocs(ctx, arg)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			root, err := lineage.NewDocNav(doc.Doc, navOpts...)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.URI, err)
			}
			if err := lsRoot(cfg, cc, root, filter); err != nil {
				return fmt.Errorf("%s: %w", doc.URI, err)
			}
		}
	}
	return nil
}

// entry is the row shape -filter expressions evaluate over.
type entry struct {
	ID    string `expr:"id"`
	Edge  string `expr:"edge"`
	Depth int    `expr:"depth"`
	Dups  int    `expr:"dups"`
}

func lsRoot(cfg *LsConfig, cc *cli.Context, root *lineage.DocNav, filter *vm.Program) error {
	byID, err := lineage.Flatten(root)
	if err != nil {
		return err
	}
	var entries []entry
	err = lineage.Traverse(root, func(n *lineage.DocNav, edge string, depth int) error {
		id, err := n.ID()
		if err != nil {
			return err
		}
		entries = append(entries, entry{
			ID:    id,
			Edge:  edge,
			Depth: depth,
			Dups:  len(byID[id]),
		})
		return nil
	}, lineage.PreOrder)
	if err != nil {
		return err
	}
	if cfg.Depth {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Depth < entries[j].Depth
		})
	}
	return emitEntries(cfg, cc, entries, filter)
}

func emitEntries(cfg *LsConfig, cc *cli.Context, entries []entry, filter *vm.Program) error {
	lastDepth := -1
	for _, e := range entries {
		if filter != nil {
			keep, err := expr.Run(filter, e)
			if err != nil {
				return fmt.Errorf("filter: %w", err)
			}
			if keep != true {
				continue
			}
		}
		if cfg.Depth && e.Depth != lastDepth {
			if _, err := fmt.Fprintf(cc.Out, "depth %d:\n", e.Depth); err != nil {
				return err
			}
			lastDepth = e.Depth
		}
		indent := ""
		if cfg.Depth {
			indent = "  "
		}
		edge := e.Edge
		if edge == "" {
			edge = ".."
		}
		if _, err := fmt.Fprintf(cc.Out, "%s%s\t%s\t%d\t%d\n",
			indent, e.ID, edge, e.Depth, e.Dups); err != nil {
			return err
		}
	}
	return nil
}
