// Package gomap converts Go values into ir nodes.
//
// The conversion applies a JSON-safe scalar policy for the extension
// types that appear in dataset metadata: timestamps render as RFC 3339
// text, UUIDs as their canonical string form, NaN and infinities as the
// strings "NaN", "Infinity" and "-Infinity", and map keys are coerced
// to strings. Values with no other representation fall back to their
// fmt.Stringer form when they have one.
package gomap

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tessellata/lineage/ir"
)

// MarshalError reports a value that could not be converted.
type MarshalError struct {
	FieldPath string // path into the value being converted, e.g. "lineage.source_datasets"
	Message   string
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

// FromGo converts a Go value to an ir node. Maps convert with their
// keys sorted so the result is deterministic; use ir.FromKeyVals
// directly when field order matters.
func FromGo(v any) (*ir.Node, error) {
	return fromGo(v, "")
}

func fromGo(v any, fieldPath string) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case *ir.Node:
		return x, nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case float64:
		return floatNode(x), nil
	case float32:
		return floatNode(float64(x)), nil
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339)), nil
	case uuid.UUID:
		return ir.FromString(x.String()), nil
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return floatNode(float64(u)), nil
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return fromGo(val.Elem().Interface(), fieldPath)
	case reflect.Slice, reflect.Array:
		vals := make([]*ir.Node, val.Len())
		for i := 0; i < val.Len(); i++ {
			node, err := fromGo(val.Index(i).Interface(), indexPath(fieldPath, i))
			if err != nil {
				return nil, err
			}
			vals[i] = node
		}
		return ir.FromSlice(vals), nil
	case reflect.Map:
		keys := make([]string, 0, val.Len())
		byKey := make(map[string]reflect.Value, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			k := keyString(iter.Key())
			keys = append(keys, k)
			byKey[k] = iter.Value()
		}
		sort.Strings(keys)
		kvs := make([]ir.KeyVal, 0, len(keys))
		for _, k := range keys {
			node, err := fromGo(byKey[k].Interface(), fieldAt(fieldPath, k))
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: k, Val: node})
		}
		return ir.FromKeyVals(kvs...), nil
	}

	if s, ok := v.(fmt.Stringer); ok {
		return ir.FromString(s.String()), nil
	}
	return nil, &MarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("unsupported type %T", v),
	}
}

func floatNode(f float64) *ir.Node {
	switch {
	case math.IsNaN(f):
		return ir.FromString("NaN")
	case math.IsInf(f, 1):
		return ir.FromString("Infinity")
	case math.IsInf(f, -1):
		return ir.FromString("-Infinity")
	}
	return ir.FromFloat(f)
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if s, ok := k.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", k.Interface())
}

func fieldAt(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
