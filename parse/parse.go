// Package parse decodes YAML and JSON bytes into ir nodes.
//
// YAML is treated as the primary syntax; since YAML is a superset of
// JSON, .json sources go through the same decoder. Mappings decode with
// their field order preserved.
package parse

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/tessellata/lineage/ir"
)

var ErrParse = errors.New("parse error")

// Parse decodes a single document. Inputs holding more than one YAML
// document yield only the first; use ParseAll for streams.
func Parse(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fromDecoded(v)
}

// ParseAll decodes every document in a multi-document stream, in order.
func ParseAll(r io.Reader) ([]*ir.Node, error) {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())
	var res []*ir.Node
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %v", ErrParse, len(res), err)
		}
		node, err := fromDecoded(v)
		if err != nil {
			return nil, err
		}
		res = append(res, node)
	}
}

func fromDecoded(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return ir.FromFloat(float64(x)), nil
		}
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			val, err := fromDecoded(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		}
		return ir.FromKeyVals(kvs...), nil
	case map[string]any:
		// UseOrderedMap keeps this branch out of the yaml path; JSON
		// decoded elsewhere may still hand us plain maps.
		m := make(map[string]*ir.Node, len(x))
		for k, v := range x {
			node, err := fromDecoded(v)
			if err != nil {
				return nil, err
			}
			m[k] = node
		}
		return ir.FromMap(m), nil
	case []any:
		vals := make([]*ir.Node, 0, len(x))
		for _, e := range x {
			node, err := fromDecoded(e)
			if err != nil {
				return nil, err
			}
			vals = append(vals, node)
		}
		return ir.FromSlice(vals), nil
	default:
		return nil, fmt.Errorf("%w: unsupported decoded value %T", ErrParse, v)
	}
}
