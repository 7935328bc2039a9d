// File: internal/extractor/extractor_test.go
package extractor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

const routeFile = `import express from 'express';
import { createUser, listUsers } from '../services/db';

const router = express.Router();

router.get('/users', async (req, res) => {
  const users = await listUsers();
  res.json(users);
});

router.post('/users', async (req, res) => {
  const user = await createUser(req.body);
  res.status(201).json(user);
});

export default router;
`

func newTestExtractor() *Extractor {
	return New(zap.NewNop())
}

func TestExtract_RouteFile(t *testing.T) {
	facts := newTestExtractor().Extract("routes/users.ts", routeFile, schemas.RoleRoute)

	assert.Equal(t, []string{"../services/db"}, facts.Imports)
	assert.True(t, facts.HasDefaultExport)

	require.Len(t, facts.Endpoints, 2)
	assert.Equal(t, schemas.Endpoint{Method: "GET", Path: "/users"}, facts.Endpoints[0])
	assert.Equal(t, schemas.Endpoint{Method: "POST", Path: "/users"}, facts.Endpoints[1])

	// The two inline handlers surface as handler facts.
	var handlers []schemas.FunctionFact
	for _, fn := range facts.Functions {
		if fn.Kind == schemas.FunctionEndpoint {
			handlers = append(handlers, fn)
		}
	}
	require.Len(t, handlers, 2)
	assert.Equal(t, "GET /users", handlers[0].Name)
	assert.Equal(t, "GET", handlers[0].HTTPMethod)
	assert.Equal(t, "/users", handlers[0].Route)
	assert.True(t, handlers[0].IsAsync)
	assert.Equal(t, 6, handlers[0].StartLine)
	assert.Equal(t, 9, handlers[0].EndLine)
}

func TestExtract_EndpointsOnlyForRoutingRoles(t *testing.T) {
	content := "router.get('/internal', h)\n"
	withRole := newTestExtractor().Extract("x.ts", content, schemas.RoleRoute)
	withoutRole := newTestExtractor().Extract("x.ts", content, schemas.RoleService)

	assert.Len(t, withRole.Endpoints, 1)
	assert.Empty(t, withoutRole.Endpoints)
}

func TestExtractFunctions_Declarations(t *testing.T) {
	content := `export async function fetchUser(id, opts) {
  return load(id);
}

const toName = (user) => user.name;

export const save = async (user) => {
  await db.put(user);
};
`
	facts := extractFunctions(content)
	require.Len(t, facts, 3)

	fetch := facts[0]
	assert.Equal(t, "fetchUser", fetch.Name)
	assert.Equal(t, schemas.FunctionDeclaration, fetch.Kind)
	assert.Equal(t, []string{"id", "opts"}, fetch.Parameters)
	assert.True(t, fetch.IsAsync)
	assert.True(t, fetch.IsExported)
	assert.Equal(t, 1, fetch.StartLine)
	assert.Equal(t, 3, fetch.EndLine)

	toName := facts[1]
	assert.Equal(t, "toName", toName.Name)
	assert.Equal(t, schemas.FunctionDeclaration, toName.Kind)
	assert.False(t, toName.IsExported)

	save := facts[2]
	assert.Equal(t, "save", save.Name)
	assert.True(t, save.IsAsync)
	assert.True(t, save.IsExported)

	// Sequential ids in line order.
	assert.Equal(t, "fn-1", fetch.ID)
	assert.Equal(t, "fn-3", save.ID)
}

func TestExtractFunctions_Python(t *testing.T) {
	content := `class UserRepo:
    def __init__(self, db):
        self.db = db

    async def find(self, user_id):
        row = await self.db.get(user_id)
        return row

def make_repo(db):
    return UserRepo(db)
`
	facts := extractFunctions(content)
	require.Len(t, facts, 3)

	find := facts[1]
	assert.Equal(t, "find", find.Name)
	assert.True(t, find.IsAsync)
	assert.True(t, find.IsExported)
	assert.Equal(t, 5, find.StartLine)
	assert.Equal(t, 7, find.EndLine)

	init := facts[0]
	assert.Equal(t, "__init__", init.Name)
	assert.False(t, init.IsExported)
}

func TestExtractClasses(t *testing.T) {
	content := `export class UserService extends BaseService implements Disposable {
  private cache = new Map();

  async find(id) {
    return this.cache.get(id);
  }

  dispose() {}
}

export interface User {
  id: string;
}

export type UserID = string;
`
	facts := extractClasses(content)
	require.Len(t, facts, 3)

	svc := facts[0]
	assert.Equal(t, "UserService", svc.Name)
	assert.Equal(t, schemas.ClassDeclaration, svc.Kind)
	assert.Equal(t, "BaseService", svc.Extends)
	assert.Equal(t, []string{"Disposable"}, svc.Implements)
	assert.True(t, svc.IsExported)
	assert.Equal(t, 1, svc.StartLine)
	assert.Equal(t, 9, svc.EndLine)
	assert.Contains(t, svc.Methods, "find")
	assert.Contains(t, svc.Methods, "dispose")

	assert.Equal(t, schemas.ClassInterface, facts[1].Kind)
	assert.Equal(t, schemas.ClassTypeAlias, facts[2].Kind)
	assert.True(t, facts[2].IsExported)
}

func TestExtractImports_LocalOnly(t *testing.T) {
	content := `import express from 'express';
import { a } from './lib/a';
import b from "../shared/b";
const c = require('./c');
export { d } from './d';
from .models import User
`
	imports := extractImports(content)
	assert.Equal(t, []string{"../shared/b", "./c", "./d", "./lib/a", "./models"}, imports)
}

func TestExtractExports(t *testing.T) {
	content := `export function createUser() {}
export { listUsers, removeUser as deleteUser };
export default createUser;
`
	exports, hasDefault := extractExports(content)
	assert.Equal(t, []string{"createUser", "deleteUser", "listUsers"}, exports)
	assert.True(t, hasDefault)
}

func TestExtractExports_CommonJS(t *testing.T) {
	content := `function helper() {}
exports.helper = helper;
module.exports = { run, helper };
`
	exports, hasDefault := extractExports(content)
	assert.True(t, hasDefault)
	assert.Contains(t, exports, "run")
	assert.Contains(t, exports, "helper")
}

// A payment-provider line must rank critical regardless of the provider's
// service class.
func TestExtractCodeBlocks_PaymentLineIsCritical(t *testing.T) {
	content := "const intent = await stripe.paymentIntents.create({ amount });\n"
	blocks := extractCodeBlocks(content)

	require.NotEmpty(t, blocks)
	block := blocks[0]
	assert.Equal(t, schemas.CodeBlockThirdParty, block.Kind)
	assert.Equal(t, "stripe", block.Provider)
	assert.Equal(t, schemas.ImportanceCritical, block.Importance)
	assert.Equal(t, 1, block.StartLine)
	assert.Equal(t, 1, block.EndLine)
}

func TestExtractCodeBlocks_ImportanceTiers(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		provider string
		want     schemas.Importance
	}{
		{"datastore", "const client = new MongoClient(url);", "mongodb", schemas.ImportanceHigh},
		{"comms", "await twilio.messages.send(msg);", "twilio", schemas.ImportanceMedium},
		{"plain third party", "const res = await axios.get(url);", "axios", schemas.ImportanceLow},
		{"auth keyword lifts", "axios.post(url, { authToken });", "axios", schemas.ImportanceCritical},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blocks := extractCodeBlocks(tc.line + "\n")
			require.NotEmpty(t, blocks)
			assert.Equal(t, tc.provider, blocks[0].Provider)
			assert.Equal(t, tc.want, blocks[0].Importance)
		})
	}
}

// A line that both names a provider and performs a database operation gets
// two facts, one per detector.
func TestExtractCodeBlocks_DualTagging(t *testing.T) {
	content := "const user = await prisma.user.findOne({ where });\n"
	blocks := extractCodeBlocks(content)
	require.Len(t, blocks, 2)

	assert.Equal(t, schemas.CodeBlockThirdParty, blocks[0].Kind)
	assert.Equal(t, "prisma", blocks[0].Provider)
	assert.Equal(t, schemas.CodeBlockDBQuery, blocks[1].Kind)
	assert.Equal(t, schemas.ImportanceHigh, blocks[1].Importance)
	assert.Equal(t, blocks[0].StartLine, blocks[1].StartLine)
}

func TestExtractCodeBlocks_OperationDetectors(t *testing.T) {
	content := `const rows = db.query('SELECT id FROM users');
if (!jwt.verify(token, secret)) throw new Error('nope');
fs.readFileSync(path);
// stripe mentioned in a comment only
`
	blocks := extractCodeBlocks(content)

	kinds := make(map[schemas.CodeBlockKind]int)
	for _, b := range blocks {
		kinds[b.Kind]++
	}
	assert.Equal(t, 1, kinds[schemas.CodeBlockDBQuery])
	assert.Equal(t, 1, kinds[schemas.CodeBlockAuthCheck])
	assert.Equal(t, 1, kinds[schemas.CodeBlockFileOperation])
	// The comment line is never tagged.
	assert.Zero(t, kinds[schemas.CodeBlockThirdParty])

	for _, b := range blocks {
		if b.Kind == schemas.CodeBlockAuthCheck {
			assert.Equal(t, schemas.ImportanceCritical, b.Importance)
		}
	}
}

// Identical content always yields identical facts.
func TestExtract_Idempotent(t *testing.T) {
	first := newTestExtractor().Extract("routes/users.ts", routeFile, schemas.RoleRoute)
	second := newTestExtractor().Extract("routes/users.ts", routeFile, schemas.RoleRoute)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("extraction is not deterministic (-first +second):\n%s", diff)
	}
}

func TestBraceEndLine_Unbalanced(t *testing.T) {
	content := "function broken() {\n  if (x) {\n    y();\n"
	// Never closes; the estimate runs to the last line.
	assert.Equal(t, 4, braceEndLine(content, 0))
}
