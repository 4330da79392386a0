package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "lineage").
		WithSynopsis("lineage [opts] command [opts]").
		WithDescription("lineage is a tool for working with dataset lineage documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return lineageMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			LsCommand(cfg),
			DedupCommand(cfg),
			StripCommand(cfg))
}

func lineageMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if err := cfg.applyDefaults(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [opts] a b").
		WithDescription("diff two dataset documents structurally").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func LsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Ls, "ls").
		WithAliases("l", "list").
		WithSynopsis("ls [opts] [files]").
		WithDescription("list every dataset reachable through lineage").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ls(cfg, cc, args)
		})
}

func DedupCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DedupConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dedup, "dedup").
		WithAliases("dd").
		WithSynopsis("dedup [files]").
		WithDescription("collapse duplicated lineage subtrees to shared datasets").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dedup(cfg, cc, args)
		})
}

func StripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StripConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Strip, "strip").
		WithAliases("s").
		WithSynopsis("strip [opts] [files]").
		WithDescription("empty the source-dataset mapping of documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return strip(cfg, cc, args)
		})
}
