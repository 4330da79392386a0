package lineage

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tessellata/lineage/changes"
	"github.com/tessellata/lineage/debug"
	"github.com/tessellata/lineage/ir"
)

// dedupEntry is the single materialization of one identity: the
// rebuilt document and the child documents it was assembled from,
// plus what is needed to validate later occurrences against it.
type dedupEntry struct {
	stripped *ir.Node
	hash     uint64
	children map[string]*ir.Node
	out      *ir.Node
}

// Dedup rewrites the lineage tree under root so that every identity is
// materialized exactly once: all positions that held structurally equal
// duplicates of an identity end up referencing one shared document
// instance, children included. The representative for an identity is
// its first occurrence in traversal order, so equal inputs produce
// equal outputs. The input is never modified.
//
// Duplicate occurrences must agree: differing non-lineage content
// fails with *InconsistentMetadataError, differing edge-name sets or
// child identities with *InconsistentLineageError.
//
// root may be a *DocNav or a raw *ir.Node document.
func Dedup(root any, opts ...Option) (*ir.Node, error) {
	nav, err := navOf(root, opts...)
	if err != nil {
		return nil, err
	}
	byID := map[string]*dedupEntry{}
	return Remap(nav, func(n *DocNav, sources map[string]*ir.Node) (*ir.Node, error) {
		return dedupNode(n, sources, byID)
	})
}

func dedupNode(n *DocNav, sources map[string]*ir.Node, byID map[string]*dedupEntry) (*ir.Node, error) {
	id, err := n.ID()
	if err != nil {
		return nil, err
	}
	stripped := n.WithoutSources()

	entry, seen := byID[id]
	if !seen {
		names, err := n.SourceNames()
		if err != nil {
			return nil, err
		}
		out := stripped.Clone()
		kvs := make([]ir.KeyVal, len(names))
		for i, name := range names {
			kvs[i] = ir.KeyVal{Key: name, Val: sources[name]}
		}
		assocIn(out, n.SourcesPath(), ir.FromKeyVals(kvs...))
		byID[id] = &dedupEntry{
			stripped: stripped,
			hash:     stripped.Hash(),
			children: sources,
			out:      out,
		}
		return out, nil
	}

	if debug.Dedup() {
		slog.Debug("dedup: validating duplicate occurrence", "id", id)
	}
	// metadata must match the first occurrence byte for byte
	if entry.hash != stripped.Hash() || !ir.Equal(entry.stripped, stripped) {
		diff := changes.DocChanges(entry.stripped, stripped, nil)
		paths := make([]string, len(diff))
		for i, c := range diff {
			paths[i] = c.Path.String()
		}
		return nil, &InconsistentMetadataError{ID: id, Paths: paths}
	}
	// the same edges must be present
	if missing, extra := keyDiff(entry.children, sources); len(missing)+len(extra) > 0 {
		return nil, &InconsistentLineageError{
			ID:     id,
			Detail: edgeSetDetail(missing, extra),
		}
	}
	// and each edge must lead to the same child identity; children were
	// rebuilt bottom-up through the per-identity cache, so a pointer
	// mismatch means a different child id
	for name, child := range sources {
		if prev := entry.children[name]; prev != child {
			return nil, &InconsistentLineageError{
				ID: id,
				Detail: fmt.Sprintf("source %q refers to dataset %s in one occurrence and %s in another",
					name, childID(prev), childID(child)),
			}
		}
	}
	return entry.out, nil
}

func keyDiff(a, b map[string]*ir.Node) (missing, extra []string) {
	for k := range a {
		if _, ok := b[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

func edgeSetDetail(missing, extra []string) string {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing sources [%s]", strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra sources [%s]", strings.Join(extra, ", ")))
	}
	return strings.Join(parts, "; ")
}

func childID(doc *ir.Node) string {
	if v := ir.Get(doc, "id"); v != nil && v.Type == ir.StringType {
		return v.String
	}
	return "<unknown>"
}
