// Package ir provides the in-memory representation of dataset metadata
// documents.
//
// A document is a tree of [Node] values: a closed tagged union over
// null, bool, number, string, array and object. Object fields preserve
// the order in which they were written, so iteration over a document is
// deterministic and round-trips through encoders without reshuffling.
//
// Nodes carry no parent references. A subtree can therefore be shared
// between several parents, which is what the lineage package relies on
// after deduplication: the same dataset document instance may be
// reachable through many source edges without forming ownership cycles.
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//
// Equality is strict: ir.Equal treats a NaN-valued number as unequal to
// every number including itself. See [Equal] for the rationale.
//
// Related packages:
//
//   - github.com/tessellata/lineage/parse - parses YAML/JSON into nodes
//   - github.com/tessellata/lineage/encode - encodes nodes to YAML/JSON
//   - github.com/tessellata/lineage/changes - structural diffs over nodes
//   - github.com/tessellata/lineage/lineage - lineage graph operations
package ir
