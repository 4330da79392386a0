package encode

import (
	"math"
	"strings"
	"testing"

	"github.com/tessellata/lineage/ir"
	"github.com/tessellata/lineage/parse"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want string
	}{
		{"scalar", ir.FromInt(3), "3"},
		{"null", ir.Null(), "null"},
		{
			"object order",
			ir.FromKeyVals(
				ir.KeyVal{Key: "z", Val: ir.FromInt(1)},
				ir.KeyVal{Key: "a", Val: ir.FromSlice([]*ir.Node{ir.FromBool(true)})},
			),
			`{"z":1,"a":[true]}`,
		},
		{"nan", ir.FromFloat(math.NaN()), `"NaN"`},
		{"inf", ir.FromFloat(math.Inf(1)), `"Infinity"`},
		{"neg inf", ir.FromFloat(math.Inf(-1)), `"-Infinity"`},
		{"escaping", ir.FromString(`he said "hi"`), `"he said \"hi\""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JSON(tt.node)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("JSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	src := "id: abc\nlineage:\n  source_datasets:\n    ab:\n      id: def\n"
	node, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	out, err := YAML(node)
	if err != nil {
		t.Fatal(err)
	}
	back, err := parse.Parse(out)
	if err != nil {
		t.Fatalf("re-parsing emitted YAML: %v\n%s", err, out)
	}
	if !ir.Equal(node, back) {
		t.Errorf("round trip changed document:\n%s", out)
	}
	if !strings.HasPrefix(string(out), "id:") {
		t.Errorf("field order not preserved:\n%s", out)
	}
}
