// File: internal/classifier/classifier.go
// Assigns an architectural role to a file. Classification is two ordered
// phases: path patterns first, content patterns only when the path says
// nothing. Within a phase the first role whose pattern list matches wins,
// and the role order of the tables breaks ties. The whole thing is a pure
// function of (path, content).
package classifier

import (
	"regexp"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

// Rule pairs a role with the patterns that elect it. Tables of Rules are
// matched in slice order; the order is the precedence contract and tests
// enumerate it directly.
type Rule struct {
	Role     schemas.FileRole
	Patterns []*regexp.Regexp
}

// PathRules is the phase-1 table, matched against the normalized relative
// path.
var PathRules = []Rule{
	{schemas.RoleController, compile(
		`(?i)controllers?(/|\.|$)`,
		`(?i)controller\.[a-z]+$`,
		`(?i)(^|/)handlers?(/|\.|$)`,
	)},
	{schemas.RoleModel, compile(
		`(?i)(^|/)models?(/|\.|$)`,
		`(?i)(^|/)schemas?(/|\.|$)`,
		`(?i)(^|/)entit(y|ies)(/|\.|$)`,
	)},
	{schemas.RoleRoute, compile(
		`(?i)(^|/)routes?(/|\.|$)`,
		`(?i)router\.[a-z]+$`,
		`(?i)(^|/)api/`,
	)},
	{schemas.RoleService, compile(
		`(?i)(^|/)services?(/|\.|$)`,
		`(?i)service\.[a-z]+$`,
		`(?i)(^|/)providers?(/|\.|$)`,
	)},
	{schemas.RoleMiddleware, compile(
		`(?i)(^|/)middlewares?(/|\.|$)`,
		`(?i)(^|/)interceptors?(/|\.|$)`,
	)},
	{schemas.RoleConfig, compile(
		`(?i)(^|/)config(s|uration)?(/|\.|$)`,
		`(?i)(^|/)settings?(/|\.|$)`,
		`(?i)(^|\.)env(\.|$)`,
	)},
}

// ContentRules is the phase-2 table, consulted only when no path pattern
// matched.
var ContentRules = []Rule{
	{schemas.RoleController, compile(
		`class\s+\w+Controller\b`,
		`\(\s*req\s*,\s*res\s*\)`,
		`res\.(send|json|status)\s*\(`,
	)},
	{schemas.RoleModel, compile(
		`mongoose\.Schema`,
		`sequelize\.define`,
		`@Entity\b`,
		`extends\s+Model\b`,
		`(?i)CREATE\s+TABLE`,
	)},
	{schemas.RoleRoute, compile(
		`\b(router|app)\.(get|post|put|delete|patch)\s*\(`,
		`@(Get|Post|Put|Delete|Patch)(Mapping)?\s*\(`,
	)},
	{schemas.RoleService, compile(
		`class\s+\w+Service\b`,
		`\w+Service\s*=`,
	)},
	{schemas.RoleMiddleware, compile(
		`\(\s*req\s*,\s*res\s*,\s*next\s*\)`,
		`app\.use\s*\(`,
	)},
	{schemas.RoleConfig, compile(
		`process\.env\.`,
		`(?i)require\(['"]dotenv['"]\)`,
		`module\.exports\s*=\s*\{`,
	)},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}

// Classify returns the role for a file given its normalized relative path
// and raw content. Identical inputs always yield the identical role.
func Classify(relPath, content string) schemas.FileRole {
	if role, ok := matchTable(PathRules, relPath); ok {
		return role
	}
	if role, ok := matchTable(ContentRules, content); ok {
		return role
	}
	return schemas.RoleUnknown
}

func matchTable(table []Rule, input string) (schemas.FileRole, bool) {
	for _, rule := range table {
		for _, pattern := range rule.Patterns {
			if pattern.MatchString(input) {
				return rule.Role, true
			}
		}
	}
	return schemas.RoleUnknown, false
}
