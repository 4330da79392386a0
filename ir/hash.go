package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit content hash of the node. Nodes that are Equal
// hash to the same value within one process; the seed is per-process,
// so hashes must not be persisted. Object field order does not affect
// the hash, matching Equal.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	n.hashTo(&h)
	return h.Sum64()
}

func (n *Node) hashTo(h *maphash.Hash) {
	h.WriteByte(byte(n.Type))
	switch n.Type {
	case NullType, MissingType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		var b [8]byte
		switch {
		case n.Int64 != nil:
			// integers hash as floats so 1 and 1.0 collide like Equal
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(float64(*n.Int64)))
			h.Write(b[:])
		case n.Float64 != nil:
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(*n.Float64))
			h.Write(b[:])
		default:
			h.WriteString(n.Number)
		}
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		for _, v := range n.Values {
			v.hashTo(h)
		}
	case ObjectType:
		// order-insensitive: combine per-field hashes commutatively
		var sum uint64
		for i := range n.Fields {
			var fh maphash.Hash
			fh.SetSeed(hashSeed)
			fh.WriteString(n.Fields[i].String)
			n.Values[i].hashTo(&fh)
			sum += fh.Sum64()
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
}
