package changes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tessellata/lineage/ir"
)

// ErrMergeConflict reports a shared key with differing values.
var ErrMergeConflict = errors.New("merge conflict")

// Merge returns the union of two mapping documents. Keys present in
// only one side are taken as is; keys present in both must hold deeply
// equal values, anything else fails with ErrMergeConflict naming every
// diverging path. Neither input is modified; a's field order comes
// first, then b's extra keys in b's order.
//
// Equality here is diff equality, so a NaN value conflicts with itself.
func Merge(a, b *ir.Node) (*ir.Node, error) {
	if a == nil || a.Type != ir.ObjectType || b == nil || b.Type != ir.ObjectType {
		return nil, fmt.Errorf("merge: both documents must be mappings")
	}
	out := a.Clone()
	for i := range b.Fields {
		name := b.Fields[i].String
		bv := b.Values[i]
		av := ir.Get(a, name)
		if av == nil {
			ir.Set(out, name, bv.Clone())
			continue
		}
		if diff := DocChanges(av, bv, Path{Step{Field: name}}); len(diff) != 0 {
			paths := make([]string, len(diff))
			for j, c := range diff {
				paths[j] = c.Path.String()
			}
			return nil, fmt.Errorf("%w: differing values at %s",
				ErrMergeConflict, strings.Join(paths, ", "))
		}
	}
	return out, nil
}
