// File: internal/extractor/definitions.go
// Pattern tables driving the lexical extractor. All tables are ordered and
// immutable after init; within a table the first matching entry wins, so the
// slice order is the precedence contract.
package extractor

import (
	"regexp"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

// ProviderRule recognizes usage of one external provider on a source line.
type ProviderRule struct {
	Provider string
	Patterns []*regexp.Regexp
}

// ProviderRules is the ordered third-party detection table. At most one
// provider is tagged per line; earlier entries shadow later ones.
var ProviderRules = []ProviderRule{
	{"stripe", compile(
		`(?i)\bstripe\b`,
		`require\s*\(\s*['"]stripe['"]`,
	)},
	{"paypal", compile(`(?i)\bpaypal\b`)},
	{"braintree", compile(`(?i)\bbraintree\b`)},
	{"prisma", compile(`\bprisma\.`, `(?i)@prisma/client`)},
	{"mongoose", compile(`\bmongoose\b`)},
	{"sequelize", compile(`(?i)\bsequelize\b`)},
	{"postgres", compile(`(?i)\b(postgres|postgresql|pg\.Pool|node-postgres)\b`)},
	{"mysql", compile(`(?i)\bmysql2?\b`)},
	{"mongodb", compile(`(?i)\bmongodb\b`, `\bMongoClient\b`)},
	{"sqlite", compile(`(?i)\bsqlite3?\b`)},
	{"redis", compile(`(?i)\bredis\b`)},
	{"firebase", compile(`(?i)\bfirebase\b`, `(?i)\bfirestore\b`)},
	{"supabase", compile(`(?i)\bsupabase\b`)},
	{"aws", compile(`(?i)\baws-sdk\b`, `(?i)@aws-sdk/`, `(?i)\bboto3\b`, `(?i)\bs3Client\b`)},
	{"gcp", compile(`(?i)@google-cloud/`, `(?i)\bgoogleapis\b`)},
	{"azure", compile(`(?i)@azure/`)},
	{"twilio", compile(`(?i)\btwilio\b`)},
	{"sendgrid", compile(`(?i)\bsendgrid\b`, `(?i)@sendgrid/`)},
	{"mailgun", compile(`(?i)\bmailgun\b`)},
	{"slack", compile(`(?i)@slack/`, `(?i)\bslack[_-]?sdk\b`)},
	{"discord", compile(`(?i)\bdiscord\.js\b`, `(?i)\bdiscordjs\b`)},
	{"openai", compile(`(?i)\bopenai\b`)},
	{"anthropic", compile(`(?i)\banthropic\b`)},
	{"axios", compile(`\baxios\b`)},
	{"graphql", compile(`(?i)\bgraphql\b`, `\bApolloClient\b`)},
}

// datastoreProviders rank high unless a sensitive keyword on the line lifts
// the tag to critical.
var datastoreProviders = map[string]struct{}{
	"prisma": {}, "mongoose": {}, "sequelize": {}, "postgres": {},
	"mysql": {}, "mongodb": {}, "sqlite": {},
}

// commsProviders cover communication and storage services; they rank medium.
var commsProviders = map[string]struct{}{
	"redis": {}, "firebase": {}, "supabase": {}, "aws": {}, "gcp": {},
	"azure": {}, "twilio": {}, "sendgrid": {}, "mailgun": {}, "slack": {},
	"discord": {},
}

// sensitiveKeywords lift any provider tag on the line to critical. The list
// covers payment and authentication vocabulary.
var sensitiveKeywords = compile(
	`(?i)payment`,
	`(?i)charge`,
	`(?i)billing`,
	`(?i)checkout`,
	`(?i)subscription`,
	`(?i)\bauth`,
	`(?i)password`,
	`(?i)credential`,
	`(?i)secret`,
	`(?i)token`,
	`(?i)login`,
)

// dbOperationPatterns detect database reads and writes independent of any
// provider tag.
var dbOperationPatterns = compile(
	`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\s+(\*|INTO|FROM|SET|\w+\s+FROM)`,
	`\.(findOne|findMany|findAll|findById|findByPk|create|insertOne|insertMany|updateOne|updateMany|deleteOne|deleteMany|save|aggregate)\s*\(`,
	`\.(query|execute)\s*\(`,
)

// authOperationPatterns detect authentication and authorization activity.
var authOperationPatterns = compile(
	`(?i)\b(authenticate|authorize|isAuthenticated|requireAuth|verifyToken|checkPermission)\b`,
	`\bjwt\.(sign|verify|decode)\s*\(`,
	`\bbcrypt\.(hash|compare|hashSync|compareSync)\s*\(`,
	`\bpassport\.\w+\s*\(`,
	`(?i)\bsession\.(destroy|regenerate)\b`,
)

// fileOperationPatterns detect filesystem access.
var fileOperationPatterns = compile(
	`\bfs(Promises)?\.\w+\s*\(`,
	`\b(readFile|writeFile|appendFile|createReadStream|createWriteStream|unlink|mkdir|rmdir)\w*\s*\(`,
	`\b(os|shutil)\.(remove|rename|makedirs|rmtree|unlink)\s*\(`,
	`\bopen\s*\(\s*['"][^'"]+['"]\s*,\s*['"][rwa]`,
)

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// providerImportance ranks a provider tag. A sensitive keyword anywhere on
// the line dominates; otherwise the provider's service class decides.
func providerImportance(provider, line string) schemas.Importance {
	if matchAny(sensitiveKeywords, line) {
		return schemas.ImportanceCritical
	}
	if _, ok := datastoreProviders[provider]; ok {
		return schemas.ImportanceHigh
	}
	if _, ok := commsProviders[provider]; ok {
		return schemas.ImportanceMedium
	}
	return schemas.ImportanceLow
}
