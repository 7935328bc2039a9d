// File: cmd/scan_test.go
package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

func sampleSnapshot() *schemas.Snapshot {
	return &schemas.Snapshot{
		ScanID:      "scan-1",
		ProjectRoot: "/tmp/project",
		ScannedAt:   time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		Files: []schemas.ScannedFile{
			{
				ID:      schemas.FileID("routes/users.ts"),
				Path:    "routes/users.ts",
				Role:    schemas.RoleRoute,
				Lines:   12,
				Content: "never serialized",
			},
		},
		Relationships: []schemas.Relationship{},
	}
}

func TestWriteSnapshot_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, writeSnapshot(sampleSnapshot(), out, false))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded schemas.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "scan-1", decoded.ScanID)
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "routes/users.ts", decoded.Files[0].Path)

	// Raw content stays out of the wire format.
	assert.Empty(t, decoded.Files[0].Content)
	assert.NotContains(t, string(data), "never serialized")
}

func TestWriteSnapshot_Pretty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, writeSnapshot(sampleSnapshot(), out, true))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")
}
