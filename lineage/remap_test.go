package lineage

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/tessellata/lineage/ir"
)

// describeCombine renders a node as "id(child child ...)" with children
// sorted by edge name, and counts how often it runs.
func describeCombine(calls *int) Combine[string] {
	return func(n *DocNav, sources map[string]string) (string, error) {
		*calls++
		id, err := n.ID()
		if err != nil {
			return "", err
		}
		if len(sources) == 0 {
			return id, nil
		}
		names := make([]string, 0, len(sources))
		for name := range sources {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = sources[name]
		}
		return id + "(" + strings.Join(parts, " ") + ")", nil
	}
}

func TestRemap(t *testing.T) {
	var calls int
	got, err := Remap(graphABCDE(nodeDoc), describeCombine(&calls))
	if err != nil {
		t.Fatal(err)
	}
	want := "A(B(C(D)) C(D) E)"
	if got != want {
		t.Errorf("Remap = %q, want %q", got, want)
	}
	// duplicated subtrees are distinct instances, so each occurrence
	// is combined on its own
	if calls != 7 {
		t.Errorf("combine ran %d times, want 7", calls)
	}
}

func TestRemapAfterDedup(t *testing.T) {
	out, err := Dedup(graphABCDE(nodeDoc))
	if err != nil {
		t.Fatal(err)
	}
	var calls int
	got, err := Remap(out, describeCombine(&calls))
	if err != nil {
		t.Fatal(err)
	}
	want := "A(B(C(D)) C(D) E)"
	if got != want {
		t.Errorf("Remap = %q, want %q", got, want)
	}
	// shared instances are combined once and reused
	if calls != 5 {
		t.Errorf("combine ran %d times, want 5", calls)
	}
}

func TestRemapNavRoot(t *testing.T) {
	nav := mustNav(t, graphABCDE(nodeDoc))
	var calls int
	got, err := Remap(nav, describeCombine(&calls))
	if err != nil {
		t.Fatal(err)
	}
	if want := "A(B(C(D)) C(D) E)"; got != want {
		t.Errorf("Remap = %q, want %q", got, want)
	}
}

func TestRemapNavRootRejectsOptions(t *testing.T) {
	nav := mustNav(t, graphABCDE(nodeDoc))
	_, err := Remap(nav, describeCombine(new(int)), WithSourcesPath([]string{"inputs"}))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want *ConfigError", err)
	}
	if _, err := Dedup(nav, WithSourcesPath([]string{"inputs"})); !errors.As(err, &ce) {
		t.Fatalf("Dedup: got %v, want *ConfigError", err)
	}
}

func TestRemapBadRoot(t *testing.T) {
	_, err := Remap("not a document", describeCombine(new(int)))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want *ConfigError", err)
	}
}

func TestRemapCombineError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Remap(graphABCDE(nodeDoc), func(n *DocNav, sources map[string]*ir.Node) (*ir.Node, error) {
		if id, _ := n.ID(); id == "C" {
			return nil, boom
		}
		return n.Doc(), nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped boom", err)
	}
}
