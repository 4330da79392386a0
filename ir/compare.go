package ir

import (
	"cmp"
	"math"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType, MissingType:
		return 0
	}
	return 0
}

// Equal reports whether two nodes hold deeply equal documents. Object
// field order is not significant for equality, only the key set and the
// per-key values.
//
// Number equality follows IEEE semantics: a NaN value is unequal to
// every number, itself included. Documents containing NaN therefore
// never compare equal, which keeps the policy uniform instead of
// special-casing self-comparison.
func Equal(a, b *Node) bool {
	if a == b {
		return a != nil && !hasNaN(a)
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType, MissingType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return numberEqual(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		bm := ToMap(b)
		for i := range a.Fields {
			bv, ok := bm[a.Fields[i].String]
			if !ok || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

func numberEqual(a, b *Node) bool {
	// integers compare exactly; a float64 round trip would collapse
	// distinct values above 2^53
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	af, aok := floatValue(a)
	bf, bok := floatValue(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	return a.Number == b.Number
}

func floatValue(n *Node) (float64, bool) {
	if n.Int64 != nil {
		return float64(*n.Int64), true
	}
	if n.Float64 != nil {
		return *n.Float64, true
	}
	return 0, false
}

func hasNaN(n *Node) bool {
	if n.Type == NumberType {
		return n.Float64 != nil && math.IsNaN(*n.Float64)
	}
	for _, v := range n.Values {
		if hasNaN(v) {
			return true
		}
	}
	return false
}

// rank returns the sorting rank of a type.
// Order: Missing < Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case MissingType:
		return 0
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case ArrayType:
		return 5
	case ObjectType:
		return 6
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	// Sub-rank: Int64 < Float64 < String
	subRankA := numberSubRank(a)
	subRankB := numberSubRank(b)
	if subRankA != subRankB {
		return cmp.Compare(subRankA, subRankB)
	}

	if a.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	if a.Float64 != nil {
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	return strings.Compare(a.Number, b.Number)
}

func numberSubRank(n *Node) int {
	if n.Int64 != nil {
		return 0
	}
	if n.Float64 != nil {
		return 1
	}
	return 2
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
