package ir

import (
	"testing"
)

func TestFromMapSortsKeys(t *testing.T) {
	obj := FromMap(map[string]*Node{
		"c": FromInt(3),
		"a": FromInt(1),
		"b": FromInt(2),
	})
	got := make([]string, len(obj.Fields))
	for i, f := range obj.Fields {
		got[i] = f.String
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field order %v, want %v", got, want)
		}
	}
}

func TestFromKeyValsPreservesOrder(t *testing.T) {
	obj := FromKeyVals(
		KeyVal{"z", FromInt(1)},
		KeyVal{"a", FromInt(2)},
	)
	if obj.Fields[0].String != "z" || obj.Fields[1].String != "a" {
		t.Errorf("insertion order not preserved: %s, %s",
			obj.Fields[0].String, obj.Fields[1].String)
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := FromKeyVals(
		KeyVal{"a", FromSlice([]*Node{FromInt(1)})},
	)
	cp := orig.Clone()
	if !Equal(orig, cp) {
		t.Fatalf("clone not equal to original")
	}
	Set(cp, "a", FromString("changed"))
	if Equal(orig, cp) {
		t.Errorf("mutating clone affected original")
	}
	if Get(orig, "a").Type != ArrayType {
		t.Errorf("original mutated by clone edit")
	}
}

func TestGetSetIn(t *testing.T) {
	doc := FromKeyVals(
		KeyVal{"lineage", FromKeyVals(
			KeyVal{"source_datasets", FromKeyVals(KeyVal{"ab", Null()})},
			KeyVal{"machine", FromString("m")},
		)},
		KeyVal{"id", FromString("x")},
	)

	if got := GetIn(doc, "lineage", "machine"); got == nil || got.String != "m" {
		t.Errorf("GetIn(lineage, machine) = %v", got)
	}
	if got := GetIn(doc, "lineage", "nope"); got != nil {
		t.Errorf("GetIn on absent key = %v, want nil", got)
	}
	if got := GetIn(doc, "id", "deeper"); got != nil {
		t.Errorf("GetIn through scalar = %v, want nil", got)
	}
	if got := GetIn(doc); got != doc {
		t.Errorf("empty path should return the node itself")
	}

	if !SetIn(doc, []string{"lineage", "source_datasets"}, FromKeyVals()) {
		t.Fatalf("SetIn on existing path failed")
	}
	if got := GetIn(doc, "lineage", "source_datasets"); len(got.Fields) != 0 {
		t.Errorf("SetIn did not replace value")
	}
	if SetIn(doc, []string{"lineage", "absent"}, Null()) {
		t.Errorf("SetIn on absent path reported success")
	}
	if SetIn(doc, nil, Null()) {
		t.Errorf("SetIn with empty path reported success")
	}
}

func TestVisitOrder(t *testing.T) {
	doc := FromKeyVals(
		KeyVal{"a", FromSlice([]*Node{FromInt(1), FromInt(2)})},
		KeyVal{"b", FromString("s")},
	)
	var pre, post int
	err := doc.Visit(func(y *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// doc, array, 2 ints, string
	if pre != 5 || post != 5 {
		t.Errorf("visit counts pre=%d post=%d, want 5/5", pre, post)
	}
}
