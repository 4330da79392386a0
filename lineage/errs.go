package lineage

import (
	"fmt"
	"strings"
)

// InvalidDocumentError reports a value that cannot serve as a
// lineage-bearing document: it is not mapping-shaped, or it lacks a
// usable identity field. Navigator construction raises it eagerly.
type InvalidDocumentError struct {
	Reason string
}

func (e *InvalidDocumentError) Error() string {
	return "invalid document: " + e.Reason
}

// ConfigError reports caller misconfiguration, such as an unknown
// traversal mode. It is returned before any traversal work begins.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Reason
}

// InconsistentMetadataError reports that two occurrences of the same
// identity carry different non-lineage content. Paths lists every
// diverging location.
type InconsistentMetadataError struct {
	ID    string
	Paths []string
}

func (e *InconsistentMetadataError) Error() string {
	return fmt.Sprintf("inconsistent metadata for dataset %s: %s",
		e.ID, strings.Join(e.Paths, ", "))
}

// InconsistentLineageError reports that two occurrences of the same
// identity disagree about their source edges: different edge-name
// sets, or a shared edge name resolving to different child identities.
type InconsistentLineageError struct {
	ID     string
	Detail string
}

func (e *InconsistentLineageError) Error() string {
	return fmt.Sprintf("inconsistent lineage for dataset %s: %s", e.ID, e.Detail)
}
