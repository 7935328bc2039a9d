// File: api/schemas/ids_test.go
package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "routes/users.ts", NormalizePath(`routes\users.ts`))
	assert.Equal(t, "routes/users.ts", NormalizePath("./routes/users.ts"))
	assert.Equal(t, "../shared/db.ts", NormalizePath("../shared/db.ts"))
}

func TestFileID_Deterministic(t *testing.T) {
	a := FileID("routes/users.ts")
	b := FileID("./routes\\users.ts")
	require.Equal(t, a, b, "equivalent spellings must share an id")

	assert.NotEqual(t, a, FileID("routes/orders.ts"))
	assert.Regexp(t, `^file-[0-9a-f]{16}$`, a)
}

func TestExternalProviderID(t *testing.T) {
	id := ExternalProviderID("Stripe")
	assert.Equal(t, "ext-stripe", id)
	assert.True(t, IsExternalID(id))
	assert.False(t, IsExternalID(FileID("routes/users.ts")))
}

func TestRelationshipID_OccurrenceDisambiguates(t *testing.T) {
	first := RelationshipID("file-a", "ext-stripe", RelationshipAPICall, 0)
	second := RelationshipID("file-a", "ext-stripe", RelationshipAPICall, 1)
	require.NotEqual(t, first, second)

	// Same inputs, same id.
	assert.Equal(t, first, RelationshipID("file-a", "ext-stripe", RelationshipAPICall, 0))
}
