package gomap

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tessellata/lineage/encode"
	"github.com/tessellata/lineage/ir"
)

func TestFromGoJSONSafety(t *testing.T) {
	node, err := FromGo(map[string]any{
		"a": []any{1.0, 2.0, 3.0},
		"b": math.Inf(1),
		"c": time.Date(2016, 3, 11, 0, 0, 0, 0, time.UTC),
		"k": uuid.MustParse("1f231570-e777-11e6-820f-185e0f80a5c0"),
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := encode.JSON(node)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":[1,2,3],"b":"Infinity","c":"2016-03-11T00:00:00Z","k":"1f231570-e777-11e6-820f-185e0f80a5c0"}`
	if string(got) != want {
		t.Errorf("FromGo JSON = %s, want %s", got, want)
	}
}

func TestFromGoKeysCoercedToStrings(t *testing.T) {
	node, err := FromGo(map[int]any{1: "a", 2: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if v := ir.Get(node, "1"); v == nil || v.String != "a" {
		t.Errorf("int key not coerced: %+v", node)
	}
}

func TestFromGoScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *ir.Node
	}{
		{"nil", nil, ir.Null()},
		{"bool", true, ir.FromBool(true)},
		{"int", 7, ir.FromInt(7)},
		{"uint8", uint8(3), ir.FromInt(3)},
		{"float", 1.25, ir.FromFloat(1.25)},
		{"nan", math.NaN(), ir.FromString("NaN")},
		{"neg inf", math.Inf(-1), ir.FromString("-Infinity")},
		{"node passthrough", ir.FromString("x"), ir.FromString("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromGo(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("FromGo(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromGoUnsupported(t *testing.T) {
	_, err := FromGo(map[string]any{"f": func() {}})
	var me *MarshalError
	if !errors.As(err, &me) {
		t.Fatalf("expected MarshalError, got %v", err)
	}
	if me.FieldPath != "f" {
		t.Errorf("FieldPath = %q, want %q", me.FieldPath, "f")
	}
}
