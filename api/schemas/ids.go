// File: api/schemas/ids.go
// Deterministic node and edge identifiers. IDs are pure functions of their
// inputs so that repeated scans of an unchanged tree produce byte-identical
// snapshots.
package schemas

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// externalIDPrefix marks synthetic provider nodes in relationship targets.
const externalIDPrefix = "ext-"

// NormalizePath converts a path to the canonical snapshot form: forward
// slashes only, no leading "./".
func NormalizePath(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	normalized = strings.TrimPrefix(normalized, "./")
	return normalized
}

// FileID derives the stable node id for a file from its normalized
// root-relative path.
func FileID(relPath string) string {
	return fmt.Sprintf("file-%016x", xxh3.HashString(NormalizePath(relPath)))
}

// ExternalProviderID derives the singleton node id for a third-party
// provider. All references to one provider share one node.
func ExternalProviderID(provider string) string {
	return externalIDPrefix + strings.ToLower(provider)
}

// IsExternalID reports whether a node id names a synthetic provider node.
func IsExternalID(id string) bool {
	return strings.HasPrefix(id, externalIDPrefix)
}

// RelationshipID derives a stable edge id. The occurrence index disambiguates
// deliberate duplicate edges between the same pair of nodes.
func RelationshipID(sourceID, targetID string, kind RelationshipKind, occurrence int) string {
	h := xxh3.HashString(sourceID + "|" + targetID + "|" + string(kind))
	return fmt.Sprintf("rel-%016x-%d", h, occurrence)
}
