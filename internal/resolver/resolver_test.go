// File: internal/resolver/resolver_test.go
package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

func file(path string, mutate func(*schemas.ScannedFile)) schemas.ScannedFile {
	f := schemas.ScannedFile{
		ID:   schemas.FileID(path),
		Path: path,
	}
	if mutate != nil {
		mutate(&f)
	}
	return f
}

func newTestResolver() *Resolver {
	return New(zap.NewNop())
}

func TestResolve_ImportEdge(t *testing.T) {
	files := []schemas.ScannedFile{
		file("routes/users.ts", func(f *schemas.ScannedFile) {
			f.Imports = []string{"../services/db"}
		}),
		file("services/db.ts", nil),
	}

	edges := newTestResolver().Resolve(files)
	require.Len(t, edges, 1)

	edge := edges[0]
	assert.Equal(t, files[0].ID, edge.SourceID)
	assert.Equal(t, files[1].ID, edge.TargetID)
	assert.Equal(t, schemas.RelationshipImport, edge.Kind)
	assert.Equal(t, "../services/db", edge.Label)
}

// The candidate order is exact path, then each extension, then each index
// file. A ".ts" sibling must win over a ".js" one.
func TestResolve_ProbeOrder(t *testing.T) {
	importer := file("src/a.ts", func(f *schemas.ScannedFile) {
		f.Imports = []string{"./b"}
	})

	tsFirst := []schemas.ScannedFile{importer, file("src/b.ts", nil), file("src/b.js", nil)}
	edges := newTestResolver().Resolve(tsFirst)
	require.Len(t, edges, 1)
	assert.Equal(t, schemas.FileID("src/b.ts"), edges[0].TargetID)

	indexFallback := []schemas.ScannedFile{importer, file("src/b/index.js", nil)}
	edges = newTestResolver().Resolve(indexFallback)
	require.Len(t, edges, 1)
	assert.Equal(t, schemas.FileID("src/b/index.js"), edges[0].TargetID)
}

func TestResolve_UnresolvedImportDropped(t *testing.T) {
	files := []schemas.ScannedFile{
		file("src/a.ts", func(f *schemas.ScannedFile) {
			f.Imports = []string{"./missing", "../also/missing"}
		}),
	}
	assert.Empty(t, newTestResolver().Resolve(files))
}

func TestResolve_FunctionCallEdges(t *testing.T) {
	files := []schemas.ScannedFile{
		file("routes/users.ts", func(f *schemas.ScannedFile) {
			f.Imports = []string{"../services/db"}
			f.Content = "const users = await listUsers();\nconst n = count;\n"
		}),
		file("services/db.ts", func(f *schemas.ScannedFile) {
			f.Exports = []string{"count", "listUsers"}
		}),
	}

	edges := newTestResolver().Resolve(files)
	require.Len(t, edges, 2)

	assert.Equal(t, schemas.RelationshipImport, edges[0].Kind)

	call := edges[1]
	assert.Equal(t, schemas.RelationshipFunctionCall, call.Kind)
	assert.Equal(t, "listUsers", call.Label, "count is referenced but never called")
	assert.Equal(t, files[0].ID, call.SourceID)
	assert.Equal(t, files[1].ID, call.TargetID)
}

// Every third-party block yields an edge to the provider's singleton node;
// repeats are kept and distinguished by occurrence.
func TestResolve_ProviderEdges(t *testing.T) {
	files := []schemas.ScannedFile{
		file("services/billing.ts", func(f *schemas.ScannedFile) {
			f.CodeBlocks = []schemas.CodeBlockFact{
				{ID: "cb-1", Kind: schemas.CodeBlockThirdParty, Provider: "stripe", StartLine: 3, EndLine: 3},
				{ID: "cb-2", Kind: schemas.CodeBlockDBQuery, StartLine: 4, EndLine: 4},
				{ID: "cb-3", Kind: schemas.CodeBlockThirdParty, Provider: "stripe", StartLine: 9, EndLine: 9},
			}
		}),
	}

	edges := newTestResolver().Resolve(files)
	require.Len(t, edges, 2, "db_query blocks produce no provider edge")

	for _, edge := range edges {
		assert.Equal(t, schemas.RelationshipAPICall, edge.Kind)
		assert.Equal(t, "ext-stripe", edge.TargetID)
		assert.True(t, schemas.IsExternalID(edge.TargetID))
	}
	assert.NotEqual(t, edges[0].ID, edges[1].ID)
}

func TestResolve_Deterministic(t *testing.T) {
	files := []schemas.ScannedFile{
		file("routes/users.ts", func(f *schemas.ScannedFile) {
			f.Imports = []string{"../services/db", "./helpers"}
		}),
		file("routes/helpers.ts", nil),
		file("services/db.ts", nil),
	}

	first := newTestResolver().Resolve(files)
	second := newTestResolver().Resolve(files)
	assert.Equal(t, first, second)
}
