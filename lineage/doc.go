// Package lineage implements the dataset lineage graph engine.
//
// A dataset document embeds full copies of the documents of the
// datasets it was derived from, under an edge mapping conventionally
// stored at lineage.source_datasets. The serialized form is a tree,
// but the same upstream dataset frequently appears under several
// parents, so the tree really encodes a directed acyclic graph with
// duplication.
//
// [DocNav] gives an identity-aware view over one document with lazily
// cached derived views. [Traverse] and [Flatten] walk the reachable
// graph reporting every occurrence. [Dedup] validates that duplicated
// identities are consistent and collapses them into genuinely shared
// instances, turning the tree into a DAG. [Remap] folds the graph
// bottom-up into an arbitrary output structure, visiting each shared
// instance once. [WithoutSources] strips the edge mapping from a
// document.
//
// All operations are pure computations over in-memory documents; any
// failure is a data integrity problem reported through the typed
// errors in this package, never a transient condition.
package lineage
