// Package encode renders ir nodes back to JSON or YAML bytes.
//
// Both encoders write object fields in document order. JSON output is
// compact; YAML output follows goccy/go-yaml's default block style.
package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/tessellata/lineage/ir"
)

// JSON renders the document as compact JSON. NaN and infinities have no
// JSON representation and encode as the strings "NaN", "Infinity" and
// "-Infinity", matching the gomap scalar policy.
func JSON(node *ir.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, node *ir.Node) error {
	switch node.Type {
	case ir.NullType:
		buf.WriteString("null")
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(node.Bool))
	case ir.StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ir.NumberType:
		buf.WriteString(numberJSON(node))
	case ir.ArrayType:
		buf.WriteByte('[')
		for i, v := range node.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ir.ObjectType:
		buf.WriteByte('{')
		for i := range node.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(node.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, node.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode node of type %s", node.Type)
	}
	return nil
}

func numberJSON(node *ir.Node) string {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10)
	case node.Float64 != nil:
		f := *node.Float64
		switch {
		case math.IsNaN(f):
			return `"NaN"`
		case math.IsInf(f, 1):
			return `"Infinity"`
		case math.IsInf(f, -1):
			return `"-Infinity"`
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		return node.Number
	}
}

// YAML renders the document as YAML, preserving object field order.
func YAML(node *ir.Node) ([]byte, error) {
	v, err := toGo(node)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

func toGo(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			return *node.Float64, nil
		default:
			return node.Number, nil
		}
	case ir.ArrayType:
		vals := make([]any, len(node.Values))
		for i, v := range node.Values {
			gv, err := toGo(v)
			if err != nil {
				return nil, err
			}
			vals[i] = gv
		}
		return vals, nil
	case ir.ObjectType:
		ms := make(yaml.MapSlice, len(node.Fields))
		for i := range node.Fields {
			gv, err := toGo(node.Values[i])
			if err != nil {
				return nil, err
			}
			ms[i] = yaml.MapItem{Key: node.Fields[i].String, Value: gv}
		}
		return ms, nil
	default:
		return nil, fmt.Errorf("cannot encode node of type %s", node.Type)
	}
}
