package parse

import (
	"strings"
	"testing"

	"github.com/tessellata/lineage/ir"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *ir.Node
	}{
		{"int", "a: 10", ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.FromInt(10)})},
		{"float", "a: 1.5", ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.FromFloat(1.5)})},
		{"string", "a: hello", ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.FromString("hello")})},
		{"bool", "a: true", ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.FromBool(true)})},
		{"null", "a:", ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.Null()})},
		{"seq", "[1, 2]", ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
		{"json", `{"a": [1, "x"]}`, ir.FromKeyVals(ir.KeyVal{
			Key: "a",
			Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("x")}),
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePreservesFieldOrder(t *testing.T) {
	got, err := Parse([]byte("z: 1\na: 2\nm: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"z", "a", "m"}
	for i, f := range got.Fields {
		if f.String != want[i] {
			t.Fatalf("field %d = %q, want %q", i, f.String, want[i])
		}
	}
}

func TestParseAll(t *testing.T) {
	src := "a: 1\n---\nb: 2\n---\nc: 3\n"
	docs, err := ParseAll(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	if v := ir.Get(docs[1], "b"); v == nil || *v.Int64 != 2 {
		t.Errorf("second document = %+v", docs[1])
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse([]byte("a: [unclosed")); err == nil {
		t.Errorf("expected error on malformed input")
	}
}
