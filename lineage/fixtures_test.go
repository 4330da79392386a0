package lineage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tessellata/lineage/ir"
)

var testNamespace = uuid.MustParse("7caa5ee6-6c67-4b1a-9e7a-6e5b1f3e8b11")

func kv(name string, doc *ir.Node) ir.KeyVal {
	return ir.KeyVal{Key: name, Val: doc}
}

// nodeDoc builds a minimal lineage-bearing document whose id is just
// the given name.
func nodeDoc(name string, sources ...ir.KeyVal) *ir.Node {
	return ir.FromKeyVals(
		kv("id", ir.FromString(name)),
		kv("lineage", ir.FromKeyVals(
			kv("source_datasets", ir.FromKeyVals(sources...)),
		)),
	)
}

// graphABCDE builds the shared test graph:
//
//	A -> B
//	|    |
//	|    v
//	+--> C -> D
//	|
//	+--> E
//
// C and D are each reachable by two paths; each embedding is a
// separate document instance with equal content.
func graphABCDE(mk func(name string, sources ...ir.KeyVal) *ir.Node) *ir.Node {
	d := mk("D")
	c := mk("C", kv("cd", d))
	b := mk("B", kv("bc", c.Clone()))
	e := mk("E")
	return mk("A", kv("ab", b), kv("ac", c.Clone()), kv("ae", e))
}

// dsMaker returns a dataset document factory producing deterministic
// ids and content for a given generation; distinct generations give
// the same dataset names different ids and timestamps.
func dsMaker(gen int) func(name string, sources ...ir.KeyVal) *ir.Node {
	created := time.Date(2016, 5, 12, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(gen) * time.Hour)
	return func(name string, sources ...ir.KeyVal) *ir.Node {
		id := uuid.NewSHA1(testNamespace, fmt.Appendf(nil, "%s#%d", name, gen))
		return ir.FromKeyVals(
			kv("id", ir.FromString(id.String())),
			kv("label", ir.FromString(name)),
			kv("creation_dt", ir.FromString(created.Format(time.RFC3339))),
			kv("lineage", ir.FromKeyVals(
				kv("source_datasets", ir.FromKeyVals(sources...)),
			)),
		)
	}
}

// genTestDAG builds the ABCDE graph out of full dataset documents.
func genTestDAG(gen int) *ir.Node {
	return graphABCDE(dsMaker(gen))
}
