package changes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/tessellata/lineage/encode"
	"github.com/tessellata/lineage/ir"
)

// RFC 6902 bridge: change records translate directly into patch
// operations, which lets callers reconcile a stored copy instead of
// re-writing it wholesale.

type patchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// JSONPatch renders a change list as an RFC 6902 patch document that
// transforms the left-hand document into the right-hand one: a Missing
// left side becomes an add, a Missing right side a remove, anything
// else a replace.
func JSONPatch(diff []Change) ([]byte, error) {
	ops := make([]patchOp, 0, len(diff))
	for _, c := range diff {
		op := patchOp{Path: pointer(c.Path)}
		switch {
		case c.LHS.Type == ir.MissingType:
			op.Op = "add"
		case c.RHS.Type == ir.MissingType:
			op.Op = "remove"
		default:
			op.Op = "replace"
		}
		if op.Op != "remove" {
			v, err := encode.JSON(c.RHS)
			if err != nil {
				return nil, err
			}
			op.Value = json.RawMessage(v)
		}
		ops = append(ops, op)
	}
	return json.Marshal(ops)
}

// ApplyJSONPatch applies an RFC 6902 patch to a document and returns
// the patched document. The input document is not modified.
func ApplyJSONPatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}
	d, err := encode.JSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("applying patch: %w", err)
	}
	var v any
	if err := json.NewDecoder(bytes.NewReader(out)).Decode(&v); err != nil {
		return nil, err
	}
	return fromJSONValue(v)
}

func fromJSONValue(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case float64:
		if x == float64(int64(x)) {
			return ir.FromInt(int64(x)), nil
		}
		return ir.FromFloat(x), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			node, err := fromJSONValue(e)
			if err != nil {
				return nil, err
			}
			vals[i] = node
		}
		return ir.FromSlice(vals), nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, e := range x {
			node, err := fromJSONValue(e)
			if err != nil {
				return nil, err
			}
			m[k] = node
		}
		return ir.FromMap(m), nil
	default:
		return nil, fmt.Errorf("unsupported JSON value %T", v)
	}
}

func pointer(p Path) string {
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		seg := s.String()
		seg = strings.ReplaceAll(seg, "~", "~0")
		seg = strings.ReplaceAll(seg, "/", "~1")
		b.WriteString(seg)
	}
	return b.String()
}
