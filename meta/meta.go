// Package meta describes document types: named declarations of where a
// dataset document keeps its identity, label, creation time, format and
// source-dataset edges. A type with no sources declaration describes
// documents that carry no lineage at all.
package meta

import (
	"errors"
	"fmt"

	"github.com/tessellata/lineage/ir"
	"github.com/tessellata/lineage/lineage"
	"github.com/tessellata/lineage/parse"
)

// ErrDefinition reports a malformed metadata-type definition document.
var ErrDefinition = errors.New("invalid metadata type definition")

// Type is one metadata-type declaration. Paths are key sequences into a
// dataset document; a nil path means the type does not declare that
// field.
type Type struct {
	Name        string
	Description string

	IDPath           []string
	LabelPath        []string
	CreationTimePath []string
	FormatPath       []string

	sourcesPath []string
}

// Default returns the built-in eo type, matching the conventional
// dataset document layout.
func Default() *Type {
	return &Type{
		Name:             "eo",
		Description:      "Earth observation datasets",
		IDPath:           []string{"id"},
		LabelPath:        []string{"label"},
		CreationTimePath: []string{"creation_dt"},
		FormatPath:       []string{"format", "name"},
		sourcesPath:      []string{"lineage", "source_datasets"},
	}
}

// SourcesPath returns the declared path of the source-dataset mapping,
// nil when the type declares none.
func (t *Type) SourcesPath() []string { return t.sourcesPath }

// NavOptions returns the navigator options implied by the type.
func (t *Type) NavOptions() []lineage.Option {
	if t.sourcesPath == nil {
		return nil
	}
	return []lineage.Option{lineage.WithSourcesPath(t.sourcesPath)}
}

// ID returns the identity value of doc under this type, nil when the
// field is absent or undeclared.
func (t *Type) ID(doc *ir.Node) *ir.Node { return at(doc, t.IDPath) }

// Label returns the label value of doc, nil when absent or undeclared.
func (t *Type) Label(doc *ir.Node) *ir.Node { return at(doc, t.LabelPath) }

// Strip returns doc with its source-dataset mapping emptied. For a
// type with no sources declaration the document comes back unchanged.
func (t *Type) Strip(doc *ir.Node, inplace bool) *ir.Node {
	return lineage.WithoutSources(doc, t.sourcesPath, inplace)
}

func at(doc *ir.Node, path []string) *ir.Node {
	if len(path) == 0 {
		return nil
	}
	return ir.GetIn(doc, path...)
}

// ParseType reads a type declaration out of a definition document:
//
//	name: eo
//	description: ...
//	dataset:
//	  id: [id]
//	  label: [label]
//	  creation_dt: [creation_dt]
//	  format: [format, name]
//	  sources: [lineage, source_datasets]
//
// name and dataset.id are required; every other field is optional, and
// an absent dataset.sources declares a type without lineage.
func ParseType(doc *ir.Node) (*Type, error) {
	if doc == nil || doc.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: expected a mapping", ErrDefinition)
	}
	name := ir.Get(doc, "name")
	if name == nil || name.Type != ir.StringType || name.String == "" {
		return nil, fmt.Errorf("%w: missing name", ErrDefinition)
	}
	t := &Type{Name: name.String}
	if d := ir.Get(doc, "description"); d != nil && d.Type == ir.StringType {
		t.Description = d.String
	}
	ds := ir.Get(doc, "dataset")
	if ds == nil {
		return nil, fmt.Errorf("%w: type %q has no dataset section", ErrDefinition, t.Name)
	}
	var err error
	if t.IDPath, err = pathField(ds, "id"); err != nil {
		return nil, fmt.Errorf("type %q: %w", t.Name, err)
	}
	if t.IDPath == nil {
		return nil, fmt.Errorf("%w: type %q declares no id path", ErrDefinition, t.Name)
	}
	if t.LabelPath, err = pathField(ds, "label"); err != nil {
		return nil, fmt.Errorf("type %q: %w", t.Name, err)
	}
	if t.CreationTimePath, err = pathField(ds, "creation_dt"); err != nil {
		return nil, fmt.Errorf("type %q: %w", t.Name, err)
	}
	if t.FormatPath, err = pathField(ds, "format"); err != nil {
		return nil, fmt.Errorf("type %q: %w", t.Name, err)
	}
	if t.sourcesPath, err = pathField(ds, "sources"); err != nil {
		return nil, fmt.Errorf("type %q: %w", t.Name, err)
	}
	return t, nil
}

// ParseTypeYAML parses a YAML or JSON type definition.
func ParseTypeYAML(d []byte) (*Type, error) {
	doc, err := parse.Parse(d)
	if err != nil {
		return nil, err
	}
	return ParseType(doc)
}

// pathField reads an array-of-strings field, nil when absent.
func pathField(ds *ir.Node, field string) ([]string, error) {
	v := ir.Get(ds, field)
	if v == nil {
		return nil, nil
	}
	if v.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: dataset.%s is %s, expected an array of keys",
			ErrDefinition, field, v.Type)
	}
	path := make([]string, len(v.Values))
	for i, elt := range v.Values {
		if elt.Type != ir.StringType {
			return nil, fmt.Errorf("%w: dataset.%s[%d] is %s, expected a string",
				ErrDefinition, field, i, elt.Type)
		}
		path[i] = elt.String
	}
	return path, nil
}
