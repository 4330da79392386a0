package lineage

import (
	"github.com/tessellata/lineage/ir"
)

// WithoutSources returns doc with the edge mapping at sourcesPath
// replaced by an empty mapping. A nil sourcesPath means the document
// type has no lineage concept; then, as when the path is simply absent
// from the document, the content comes back unchanged.
//
// With inplace set the input document is modified and returned;
// otherwise the input is left untouched and the result is a copy.
// Never use inplace on a document exposed as a dedup result: the
// stripped mapping would vanish from every parent sharing it.
func WithoutSources(doc *ir.Node, sourcesPath []string, inplace bool) *ir.Node {
	if !inplace {
		doc = doc.Clone()
	}
	if len(sourcesPath) == 0 {
		return doc
	}
	ir.SetIn(doc, sourcesPath, ir.FromKeyVals())
	return doc
}
