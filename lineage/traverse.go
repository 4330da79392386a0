package lineage

import (
	"fmt"
	"log/slog"

	"github.com/tessellata/lineage/debug"
)

// Mode selects the order in which Traverse reports nodes.
type Mode string

const (
	PreOrder  Mode = "pre-order"
	PostOrder Mode = "post-order"
)

// Visit is called once per edge traversal. edge is the incoming edge
// name, empty for the root; depth is the distance from the root.
type Visit func(n *DocNav, edge string, depth int) error

// Traverse walks the lineage graph depth-first from root, reporting
// every edge occurrence: a node reachable through two different
// parents is visited once per path. Children are entered in edge
// declaration order. Pre-order reports a node before its children,
// post-order after.
//
// Traversal assumes the tree shape that navigator construction
// guarantees before deduplication. Walking an already-deduplicated DAG
// re-expands shared subtrees once per reference; callers needing
// visit-once semantics over a DAG should use Remap or track visited
// identities themselves.
func Traverse(root *DocNav, visit Visit, mode Mode) error {
	switch mode {
	case PreOrder, PostOrder:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown traversal mode %q", mode)}
	}
	return traverse(root, "", 0, visit, mode)
}

func traverse(n *DocNav, edge string, depth int, visit Visit, mode Mode) error {
	if debug.Traverse() {
		id, _ := n.ID()
		slog.Debug("traverse", "id", id, "edge", edge, "depth", depth, "mode", mode)
	}
	if mode == PreOrder {
		if err := visit(n, edge, depth); err != nil {
			return err
		}
	}
	names, err := n.SourceNames()
	if err != nil {
		return err
	}
	sources, err := n.Sources()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := traverse(sources[name], name, depth+1, visit, mode); err != nil {
			return err
		}
	}
	if mode == PostOrder {
		return visit(n, edge, depth)
	}
	return nil
}

// Flatten buckets every node occurrence reachable from root by
// identity, in pre-order traversal order. An identity with more than
// one occurrence marks a duplicated subtree.
func Flatten(root *DocNav) (map[string][]*DocNav, error) {
	byID, _, err := flatten(root, false)
	return byID, err
}

// FlattenWithDepth additionally buckets occurrences by depth: bucket i
// holds every occurrence visited at depth i, in traversal order, with
// no trailing empty buckets.
func FlattenWithDepth(root *DocNav) (map[string][]*DocNav, [][]*DocNav, error) {
	return flatten(root, true)
}

func flatten(root *DocNav, withDepth bool) (map[string][]*DocNav, [][]*DocNav, error) {
	byID := map[string][]*DocNav{}
	var byDepth [][]*DocNav
	err := Traverse(root, func(n *DocNav, edge string, depth int) error {
		id, err := n.ID()
		if err != nil {
			return err
		}
		byID[id] = append(byID[id], n)
		if withDepth {
			for len(byDepth) <= depth {
				byDepth = append(byDepth, nil)
			}
			byDepth[depth] = append(byDepth[depth], n)
		}
		return nil
	}, PreOrder)
	if err != nil {
		return nil, nil, err
	}
	return byID, byDepth, nil
}
