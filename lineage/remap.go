package lineage

import (
	"github.com/tessellata/lineage/ir"
)

// Combine builds the transformed value for one node from the node and
// the already-transformed values of its children, keyed by edge name.
type Combine[T any] func(n *DocNav, sources map[string]T) (T, error)

// Remap folds the lineage graph bottom-up: children are transformed
// before their parent's combine runs. root may be a *DocNav or a raw
// *ir.Node document, which is wrapped internally.
//
// Results are cached per document instance, so in a deduplicated graph
// each shared identity is combined exactly once and every further
// reference reuses the cached value. Occurrences that are merely equal
// in content but distinct instances (pre-dedup duplication) are each
// combined on their own.
func Remap[T any](root any, combine Combine[T], opts ...Option) (T, error) {
	var zero T
	nav, err := navOf(root, opts...)
	if err != nil {
		return zero, err
	}
	cache := map[*ir.Node]T{}
	return remap(nav, combine, cache)
}

func remap[T any](n *DocNav, combine Combine[T], cache map[*ir.Node]T) (T, error) {
	var zero T
	if v, ok := cache[n.doc]; ok {
		return v, nil
	}
	names, err := n.SourceNames()
	if err != nil {
		return zero, err
	}
	sources, err := n.Sources()
	if err != nil {
		return zero, err
	}
	transformed := make(map[string]T, len(names))
	for _, name := range names {
		tv, err := remap(sources[name], combine, cache)
		if err != nil {
			return zero, err
		}
		transformed[name] = tv
	}
	v, err := combine(n, transformed)
	if err != nil {
		return zero, err
	}
	cache[n.doc] = v
	return v, nil
}

// navOf accepts the root representations Remap and Dedup allow.
// Options configure the wrapping of a raw document; a *DocNav root
// already carries its configuration, so passing options with one is a
// conflict, not something to ignore.
func navOf(root any, opts ...Option) (*DocNav, error) {
	switch x := root.(type) {
	case *DocNav:
		if len(opts) > 0 {
			return nil, &ConfigError{
				Reason: "options cannot be applied to an existing navigator",
			}
		}
		return x, nil
	case *ir.Node:
		return NewDocNav(x, opts...)
	default:
		return nil, &ConfigError{
			Reason: "root must be a *DocNav or *ir.Node document",
		}
	}
}
