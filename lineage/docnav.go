package lineage

import (
	"fmt"

	"github.com/tessellata/lineage/ir"
)

// DefaultSourcesPath is the conventional location of the source-dataset
// edge mapping inside a dataset document.
var DefaultSourcesPath = []string{"lineage", "source_datasets"}

// DocNav is a read-only view over one dataset document. Its derived
// views (identity, source edges, the lineage-stripped document) are
// computed on first access and cached for the navigator's lifetime.
//
// Navigators reached from one root share a document → navigator cache,
// so after deduplication two edge paths to the same shared document
// yield the same DocNav instance. A fully constructed navigator is
// read-only and safe to share across goroutines; construction itself
// is single-writer.
type DocNav struct {
	doc         *ir.Node
	sourcesPath []string
	navs        map[*ir.Node]*DocNav

	idDone bool
	id     string
	idErr  error

	sourcesDone bool
	sourceNames []string
	sources     map[string]*DocNav
	sourcesErr  error

	stripped *ir.Node
}

// Option configures navigator construction.
type Option func(*DocNav)

// WithSourcesPath overrides the path at which the edge mapping is
// stored. The default is DefaultSourcesPath.
func WithSourcesPath(path []string) Option {
	return func(n *DocNav) {
		if path != nil {
			n.sourcesPath = path
		}
	}
}

// NewDocNav wraps a document in a navigator. The document must be
// mapping-shaped; anything else fails immediately with
// *InvalidDocumentError.
func NewDocNav(doc *ir.Node, opts ...Option) (*DocNav, error) {
	if doc == nil || doc.Type != ir.ObjectType {
		return nil, &InvalidDocumentError{
			Reason: fmt.Sprintf("expected a mapping document, got %s", docType(doc)),
		}
	}
	n := &DocNav{
		doc:         doc,
		sourcesPath: DefaultSourcesPath,
		navs:        map[*ir.Node]*DocNav{},
	}
	for _, opt := range opts {
		opt(n)
	}
	n.navs[doc] = n
	return n, nil
}

func docType(doc *ir.Node) string {
	if doc == nil {
		return "nil"
	}
	return doc.Type.String()
}

// Doc returns the underlying document.
func (n *DocNav) Doc() *ir.Node { return n.doc }

// SourcesPath returns the declared path of the edge mapping.
func (n *DocNav) SourcesPath() []string { return n.sourcesPath }

// ID returns the document's identity. It fails with
// *InvalidDocumentError when the identity field is absent or not a
// string. The result, error included, is computed once.
func (n *DocNav) ID() (string, error) {
	if n.idDone {
		return n.id, n.idErr
	}
	n.idDone = true
	idNode := ir.Get(n.doc, "id")
	switch {
	case idNode == nil:
		n.idErr = &InvalidDocumentError{Reason: "document has no id field"}
	case idNode.Type != ir.StringType:
		n.idErr = &InvalidDocumentError{
			Reason: fmt.Sprintf("id field has type %s, expected String", idNode.Type),
		}
	default:
		n.id = idNode.String
	}
	return n.id, n.idErr
}

// Sources returns the outgoing edges as a mapping from edge name to
// child navigator. A document with no lineage field has no edges.
// Children wrapping a document already seen under this root reuse the
// existing navigator. The mapping is computed once; callers must not
// modify it.
func (n *DocNav) Sources() (map[string]*DocNav, error) {
	if err := n.computeSources(); err != nil {
		return nil, err
	}
	return n.sources, nil
}

// SourceNames returns the edge names in document order.
func (n *DocNav) SourceNames() ([]string, error) {
	if err := n.computeSources(); err != nil {
		return nil, err
	}
	return n.sourceNames, nil
}

func (n *DocNav) computeSources() error {
	if n.sourcesDone {
		return n.sourcesErr
	}
	n.sourcesDone = true
	n.sources = map[string]*DocNav{}
	srcNode := ir.GetIn(n.doc, n.sourcesPath...)
	if srcNode == nil {
		return nil
	}
	if srcNode.Type != ir.ObjectType {
		n.sourcesErr = &InvalidDocumentError{
			Reason: fmt.Sprintf("value at %v is %s, expected a mapping",
				n.sourcesPath, srcNode.Type),
		}
		return n.sourcesErr
	}
	for i := range srcNode.Fields {
		name := srcNode.Fields[i].String
		childDoc := srcNode.Values[i]
		child, ok := n.navs[childDoc]
		if !ok {
			var err error
			child, err = NewDocNav(childDoc, WithSourcesPath(n.sourcesPath))
			if err != nil {
				n.sourcesErr = fmt.Errorf("source %q: %w", name, err)
				return n.sourcesErr
			}
			child.navs = n.navs
			child.navs[childDoc] = child
		}
		n.sourceNames = append(n.sourceNames, name)
		n.sources[name] = child
	}
	return nil
}

// WithoutSources returns the document with the edge mapping replaced
// by an empty mapping, everything else untouched. Absent levels of the
// sources path are created, so documents with and without an empty
// lineage block normalize to the same form. The result is computed
// once and the same instance is returned on every call; the input
// document is never modified.
func (n *DocNav) WithoutSources() *ir.Node {
	if n.stripped == nil {
		n.stripped = assocIn(n.doc.Clone(), n.sourcesPath, ir.FromKeyVals())
	}
	return n.stripped
}

// assocIn sets path to val in doc, creating intermediate mappings as
// needed, and returns doc.
func assocIn(doc *ir.Node, path []string, val *ir.Node) *ir.Node {
	if len(path) == 0 {
		return doc
	}
	cur := doc
	for _, field := range path[:len(path)-1] {
		next := ir.Get(cur, field)
		if next == nil || next.Type != ir.ObjectType {
			next = ir.FromKeyVals()
			ir.Set(cur, field, next)
		}
		cur = next
	}
	ir.Set(cur, path[len(path)-1], val)
	return doc
}
