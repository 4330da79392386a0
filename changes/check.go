package changes

import (
	"fmt"
	"strings"

	"github.com/tessellata/lineage/encode"
	"github.com/tessellata/lineage/ir"
)

// MismatchError reports that a document differs from its stored copy.
// The message lists every divergence, so one error fully describes the
// mismatch.
type MismatchError struct {
	Label   string
	Changes []Change
}

func (e *MismatchError) Error() string {
	parts := make([]string, len(e.Changes))
	for i, c := range e.Changes {
		parts[i] = fmt.Sprintf("%s: %s!=%s",
			c.Path, renderValue(c.LHS), renderValue(c.RHS))
	}
	return fmt.Sprintf("%s differs from stored (%s)",
		e.Label, strings.Join(parts, ", "))
}

func renderValue(n *ir.Node) string {
	if n.Type == ir.MissingType {
		return "missing"
	}
	d, err := encode.JSON(n)
	if err != nil {
		return fmt.Sprintf("<%s>", n.Type)
	}
	return string(d)
}

// CheckUnchanged diffs actual against expected and returns a
// *MismatchError describing every divergence, or nil when the two are
// deeply equal. label names the document in the error message.
func CheckUnchanged(actual, expected *ir.Node, label string) error {
	diff := DocChanges(actual, expected, nil)
	if len(diff) == 0 {
		return nil
	}
	return &MismatchError{Label: label, Changes: diff}
}
