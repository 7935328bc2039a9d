// File: internal/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
	"github.com/Amrlmlna/dyad-scan/internal/config"
	"github.com/Amrlmlna/dyad-scan/internal/walker"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const usersRoute = `import { listUsers } from '../services/db';

router.get('/users', async (req, res) => {
  res.json(await listUsers());
});
`

const dbService = `export async function listUsers() {
  return db.query('SELECT id, name FROM users');
}
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestOrchestrator() *Orchestrator {
	return New(config.NewDefaultConfig(), zap.NewNop())
}

func findFile(snapshot *schemas.Snapshot, path string) *schemas.ScannedFile {
	for i := range snapshot.Files {
		if snapshot.Files[i].Path == path {
			return &snapshot.Files[i]
		}
	}
	return nil
}

func TestScan_RouteAndService(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/users.ts", usersRoute)
	writeFile(t, root, "services/db.ts", dbService)

	snapshot, err := newTestOrchestrator().Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, snapshot.Files, 2)
	assert.NotEmpty(t, snapshot.ScanID)
	assert.False(t, snapshot.ScannedAt.IsZero())

	route := findFile(snapshot, "routes/users.ts")
	require.NotNil(t, route)
	assert.Equal(t, schemas.RoleRoute, route.Role)
	require.Len(t, route.Endpoints, 1)
	assert.Equal(t, schemas.Endpoint{Method: "GET", Path: "/users"}, route.Endpoints[0])
	assert.Equal(t, []string{"../services/db"}, route.Imports)

	service := findFile(snapshot, "services/db.ts")
	require.NotNil(t, service)
	assert.Equal(t, schemas.RoleService, service.Role)
	assert.Equal(t, []string{"listUsers"}, service.Exports)

	// One import edge, one call edge enabled by it.
	var imports, calls int
	for _, edge := range snapshot.Relationships {
		switch edge.Kind {
		case schemas.RelationshipImport:
			imports++
			assert.Equal(t, route.ID, edge.SourceID)
			assert.Equal(t, service.ID, edge.TargetID)
		case schemas.RelationshipFunctionCall:
			calls++
			assert.Equal(t, "listUsers", edge.Label)
		}
	}
	assert.Equal(t, 1, imports)
	assert.Equal(t, 1, calls)
}

func TestScan_UnsupportedOnlyTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md", "# nothing to see")
	writeFile(t, root, "src/notes.txt", "still nothing")

	snapshot, err := newTestOrchestrator().Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Files)
	assert.Empty(t, snapshot.Relationships)
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := newTestOrchestrator().Scan(context.Background(), filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)

	var rootErr *walker.RootError
	assert.True(t, errors.As(err, &rootErr))
}

func TestScan_Canceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/users.ts", usersRoute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOrchestrator().Scan(ctx, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// Two scans of an unchanged tree differ only in scan id and timestamp.
func TestScan_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/users.ts", usersRoute)
	writeFile(t, root, "services/db.ts", dbService)
	writeFile(t, root, "models/user.ts", "export interface User { id: string }\n")

	first, err := newTestOrchestrator().Scan(context.Background(), root)
	require.NoError(t, err)
	second, err := newTestOrchestrator().Scan(context.Background(), root)
	require.NoError(t, err)

	assert.NotEqual(t, first.ScanID, second.ScanID)

	ignoreRunMetadata := cmpopts.IgnoreFields(schemas.Snapshot{}, "ScanID", "ScannedAt")
	if diff := cmp.Diff(first, second, ignoreRunMetadata); diff != "" {
		t.Fatalf("snapshots differ across identical scans (-first +second):\n%s", diff)
	}
}

func TestScan_PositionsFormGrid(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "routes/a.ts", "export const a = 1;\n")
	writeFile(t, root, "routes/b.ts", "export const b = 2;\n")
	writeFile(t, root, "routes/c.ts", "export const c = 3;\n")

	snapshot, err := newTestOrchestrator().Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, snapshot.Files, 3)

	// Three nodes fit a two-column grid: the third wraps to row two.
	assert.Equal(t, 0.0, snapshot.Files[0].Position.X)
	assert.Equal(t, 0.0, snapshot.Files[0].Position.Y)
	assert.NotEqual(t, snapshot.Files[0].Position, snapshot.Files[1].Position)
	assert.Equal(t, 0.0, snapshot.Files[2].Position.X)
	assert.Greater(t, snapshot.Files[2].Position.Y, 0.0)
}
