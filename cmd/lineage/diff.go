package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/tessellata/lineage/changes"
	"github.com/tessellata/lineage/encode"
	"github.com/tessellata/lineage/ir"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	ctx := context.Background()
	lhs, err := readDoc(ctx, args[0])
	if err != nil {
		return err
	}
	rhs, err := readDoc(ctx, args[1])
	if err != nil {
		return err
	}
	diffs := changes.DocChanges(lhs.Doc, rhs.Doc, nil)
	if len(diffs) == 0 {
		return nil
	}
	switch {
	case cfg.Patch:
		err = diffPatch(cfg, cc, diffs)
	case cfg.Text:
		err = diffText(cfg, cc, lhs.Doc, rhs.Doc)
	default:
		err = diffRecords(cfg, cc, diffs)
	}
	if err != nil {
		return err
	}
	// documents differ
	return cli.ExitCodeErr(1)
}

func diffRecords(cfg *DiffConfig, cc *cli.Context, diffs []changes.Change) error {
	pathColor := fmt.Sprint
	lhsColor := fmt.Sprint
	rhsColor := fmt.Sprint
	if cfg.useColor(cc.Out) {
		pathColor = color.New(color.FgCyan).Sprint
		lhsColor = color.New(color.FgRed).Sprint
		rhsColor = color.New(color.FgGreen).Sprint
	}
	for _, c := range diffs {
		_, err := fmt.Fprintf(cc.Out, "%s: %s != %s\n",
			pathColor(c.Path.String()),
			lhsColor(renderSide(c.LHS)),
			rhsColor(renderSide(c.RHS)))
		if err != nil {
			return err
		}
	}
	return nil
}

func renderSide(n *ir.Node) string {
	if n == nil || n.Type == ir.MissingType {
		return "missing"
	}
	d, err := encode.JSON(n)
	if err != nil {
		return fmt.Sprintf("<%s>", n.Type)
	}
	return string(d)
}

func diffText(cfg *DiffConfig, cc *cli.Context, lhs, rhs *ir.Node) error {
	lhsText, err := encode.YAML(lhs)
	if err != nil {
		return err
	}
	rhsText, err := encode.YAML(rhs)
	if err != nil {
		return err
	}
	dmp := diffmatchpatch.New()
	ds := dmp.DiffMain(string(lhsText), string(rhsText), true)
	ds = dmp.DiffCleanupSemantic(ds)
	if cfg.useColor(cc.Out) {
		_, err = fmt.Fprint(cc.Out, dmp.DiffPrettyText(ds))
		return err
	}
	for _, d := range ds {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			_, err = fmt.Fprintf(cc.Out, "[-%s-]", d.Text)
		case diffmatchpatch.DiffInsert:
			_, err = fmt.Fprintf(cc.Out, "{+%s+}", d.Text)
		default:
			_, err = fmt.Fprint(cc.Out, d.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func diffPatch(cfg *DiffConfig, cc *cli.Context, diffs []changes.Change) error {
	patch, err := changes.JSONPatch(diffs)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cc.Out, "%s\n", patch)
	return err
}
