package ir

import (
	"maps"
	"slices"
)

// Node is one value in a document tree. The Type field selects which of
// the remaining fields carry the value:
//
//   - ObjectType: Fields[i] is the key node for Values[i]; the two slices
//     always have equal length and field order is significant.
//   - ArrayType: Values holds the elements in order; Fields is empty.
//   - StringType: String holds the value.
//   - NumberType: exactly one of Int64, Float64 is set; Number holds a
//     decimal string fallback for values neither can represent.
//   - BoolType: Bool holds the value.
//   - NullType, MissingType: no payload.
//
// Object keys are always StringType nodes. Nodes hold no reference to
// their parent, so any subtree may be shared by multiple containers.
type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Fields = make([]*Node, len(y.Fields))
	dst.Values = make([]*Node, len(y.Values))
	for i, yf := range y.Fields {
		dst.Fields[i] = yf.Clone()
	}
	for i, yv := range y.Values {
		dst.Values[i] = yv.Clone()
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// FromMap builds an object node with fields in sorted key order.
// Use FromKeyVals when insertion order matters.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	keys := slices.Sorted(maps.Keys(yMap))
	res.Fields = make([]*Node, len(keys))
	res.Values = make([]*Node, len(keys))
	for i, key := range keys {
		res.Fields[i] = FromString(key)
		res.Values[i] = yMap[key]
	}
	return res
}

// ToMap returns the fields of an object node keyed by name, or nil if
// the node is not an object. Field order is lost; use Fields/Values
// directly where order matters.
func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object node preserving the given field order.
func FromKeyVals(kvs ...KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Fields[i] = FromString(kvs[i].Key)
		res.Values[i] = kvs[i].Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(ySlice))
	copy(res.Values, ySlice)
	return res
}

// Get returns the value of the named field, or nil if y is not an
// object or has no such field.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set replaces the value of the named field in place, appending a new
// field if no field with that name exists. It reports whether y is an
// object; Set does nothing on non-objects.
func Set(y *Node, field string, val *Node) bool {
	if y == nil || y.Type != ObjectType {
		return false
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			y.Values[i] = val
			return true
		}
	}
	y.Fields = append(y.Fields, FromString(field))
	y.Values = append(y.Values, val)
	return true
}

// Visit walks the subtree rooted at y depth-first. f is called twice per
// node, before (isPost=false) and after (isPost=true) its children; the
// pre-visit return value controls whether children are entered.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
