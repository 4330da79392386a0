// Package changes computes structural diffs between documents.
//
// A diff is a list of [Change] records, each locating one point of
// divergence by path. Computing a diff never fails on well-formed
// documents; an empty list means the two documents are deeply equal.
// The lineage package builds its consistency checking on top of this.
package changes

import (
	"slices"
	"strconv"
	"strings"

	"github.com/tessellata/lineage/ir"
)

// Missing is the sentinel for "no value at this key or index". It is
// distinguishable from every legal document value, null included.
var Missing = &ir.Node{Type: ir.MissingType}

// Step is one component of a change path: an object field name or an
// array index.
type Step struct {
	Field   string
	Index   int
	IsIndex bool
}

func (s Step) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Field
}

// Path locates a point of divergence from the document root.
type Path []Step

// String renders the path with dot separators, indices included, so
// ("a", 2, "b") prints as "a.2.b". The root path prints as "".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

func (p Path) field(name string) Path {
	return append(slices.Clip(p), Step{Field: name})
}

func (p Path) index(i int) Path {
	return append(slices.Clip(p), Step{Index: i, IsIndex: true})
}

// Change records one divergence between two documents. LHS or RHS is
// Missing when the path exists on only one side.
type Change struct {
	Path Path
	LHS  *ir.Node
	RHS  *ir.Node
}

// DocChanges compares two documents and returns every point of
// divergence, each anchored at base plus the path within the pair. A
// nil base anchors records at the root. The result is empty exactly
// when the documents are deeply equal, and its order is deterministic:
// object keys are visited in sorted union order, array elements by
// index.
//
// Arrays of differing length are not produced by the documents this
// engine serves, but they diff conservatively anyway: the shared prefix
// is compared index-wise and each trailing element on the longer side
// becomes a record against Missing.
func DocChanges(lhs, rhs *ir.Node, base Path) []Change {
	return docChanges(nil, lhs, rhs, base)
}

func docChanges(dst []Change, lhs, rhs *ir.Node, path Path) []Change {
	switch {
	case lhs.Type == ir.ObjectType && rhs.Type == ir.ObjectType:
		return objectChanges(dst, lhs, rhs, path)
	case lhs.Type == ir.ArrayType && rhs.Type == ir.ArrayType:
		return arrayChanges(dst, lhs, rhs, path)
	default:
		if !ir.Equal(lhs, rhs) {
			dst = append(dst, Change{Path: path, LHS: lhs, RHS: rhs})
		}
		return dst
	}
}

func objectChanges(dst []Change, lhs, rhs *ir.Node, path Path) []Change {
	lm, rm := ir.ToMap(lhs), ir.ToMap(rhs)
	keys := make([]string, 0, len(lm)+len(rm))
	for k := range lm {
		keys = append(keys, k)
	}
	for k := range rm {
		if _, ok := lm[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		lv, lok := lm[k]
		rv, rok := rm[k]
		switch {
		case lok && rok:
			dst = docChanges(dst, lv, rv, path.field(k))
		case lok:
			dst = append(dst, Change{Path: path.field(k), LHS: lv, RHS: Missing})
		default:
			dst = append(dst, Change{Path: path.field(k), LHS: Missing, RHS: rv})
		}
	}
	return dst
}

func arrayChanges(dst []Change, lhs, rhs *ir.Node, path Path) []Change {
	shared := min(len(lhs.Values), len(rhs.Values))
	for i := 0; i < shared; i++ {
		dst = docChanges(dst, lhs.Values[i], rhs.Values[i], path.index(i))
	}
	for i := shared; i < len(lhs.Values); i++ {
		dst = append(dst, Change{Path: path.index(i), LHS: lhs.Values[i], RHS: Missing})
	}
	for i := shared; i < len(rhs.Values); i++ {
		dst = append(dst, Change{Path: path.index(i), LHS: Missing, RHS: rhs.Values[i]})
	}
	return dst
}
