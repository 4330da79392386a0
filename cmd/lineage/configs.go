package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/tessellata/lineage/encode"
	"github.com/tessellata/lineage/ir"
	"github.com/tessellata/lineage/lineage"
	"github.com/tessellata/lineage/meta"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='output documents as json'"`
	Y bool `cli:"name=y aliases=yaml desc='output documents as yaml (default)'"`

	Color   bool   `cli:"name=color desc='force colored output'"`
	Config  string `cli:"name=config desc='toml file with option defaults'"`
	Type    string `cli:"name=type desc='metadata type definition file'"`
	Sources string `cli:"name=sources desc='dotted path of the source-dataset mapping'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// fileDefaults is the shape of the -config TOML file. File values
// apply only where no flag was given.
type fileDefaults struct {
	Output  string `toml:"output"`
	Color   bool   `toml:"color"`
	Type    string `toml:"type"`
	Sources string `toml:"sources"`
}

func (cfg *MainConfig) applyDefaults() error {
	if cfg.Config == "" {
		return nil
	}
	var d fileDefaults
	if _, err := toml.DecodeFile(cfg.Config, &d); err != nil {
		return fmt.Errorf("config %s: %w", cfg.Config, err)
	}
	if !cfg.J && !cfg.Y {
		switch d.Output {
		case "", "yaml":
		case "json":
			cfg.J = true
		default:
			return fmt.Errorf("config %s: unknown output format %q", cfg.Config, d.Output)
		}
	}
	if !cfg.optSet("color") {
		cfg.Color = d.Color
	}
	if cfg.Type == "" {
		cfg.Type = d.Type
	}
	if cfg.Sources == "" {
		cfg.Sources = d.Sources
	}
	return nil
}

// optSet reports whether a main option was given on the command line.
func (cfg *MainConfig) optSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

// metaType resolves the metadata type in effect: the -type definition
// file when given, the built-in default otherwise. A -sources path
// overrides the type's declaration.
func (cfg *MainConfig) metaType() (*meta.Type, error) {
	typ := meta.Default()
	if cfg.Type != "" {
		d, err := os.ReadFile(cfg.Type)
		if err != nil {
			return nil, err
		}
		typ, err = meta.ParseTypeYAML(d)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", cfg.Type, err)
		}
	}
	return typ, nil
}

func (cfg *MainConfig) sourcesPath() ([]string, error) {
	if cfg.Sources != "" {
		return strings.Split(cfg.Sources, "."), nil
	}
	typ, err := cfg.metaType()
	if err != nil {
		return nil, err
	}
	return typ.SourcesPath(), nil
}

func (cfg *MainConfig) navOptions() ([]lineage.Option, error) {
	path, err := cfg.sourcesPath()
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, nil
	}
	return []lineage.Option{lineage.WithSourcesPath(path)}, nil
}

// encodeDoc writes one document in the selected output format.
func (cfg *MainConfig) encodeDoc(w io.Writer, doc *ir.Node) error {
	if cfg.J {
		d, err := encode.JSON(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", d)
		return err
	}
	d, err := encode.YAML(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// useColor decides whether to colorize: -color forces it on, otherwise
// only a terminal gets color.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type DiffConfig struct {
	*MainConfig
	Text  bool `cli:"name=text desc='character diff of the rendered documents'"`
	Patch bool `cli:"name=patch desc='output an rfc 6902 json patch'"`

	Diff *cli.Command
}

type LsConfig struct {
	*MainConfig
	Depth  bool   `cli:"name=depth desc='group entries by depth'"`
	Filter string `cli:"name=filter desc='expression over id, edge, depth, dups'"`

	Ls *cli.Command
}

type DedupConfig struct {
	*MainConfig

	Dedup *cli.Command
}

type StripConfig struct {
	*MainConfig
	Inplace bool `cli:"name=w desc='rewrite the input file'"`

	Strip *cli.Command
}
