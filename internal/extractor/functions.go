// File: internal/extractor/functions.go
// Function extraction across the supported language families. Each category
// is its own pattern with its own interpretation of the submatches; the
// categories are independent and their hits are merged by start line.
package extractor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

type blockStyle int

const (
	braceBlock blockStyle = iota
	indentBlock
	singleLine
)

// functionPattern is one declaration shape. Submatch indexes refer to the
// compiled expression; zero means the capture does not exist for this shape.
type functionPattern struct {
	kind        schemas.FunctionKind
	re          *regexp.Regexp
	nameIdx     int
	paramsIdx   int
	asyncIdx    int
	exportIdx   int
	style       blockStyle
	exportCheck func(name, match string) bool
}

var functionPatterns = []functionPattern{
	// JS/TS free function declarations.
	{
		kind:      schemas.FunctionDeclaration,
		re:        regexp.MustCompile(`(?m)^\s*(export\s+(?:default\s+)?)?(async\s+)?function\s*\*?\s*(\w+)\s*\(([^)]*)\)`),
		exportIdx: 1, asyncIdx: 2, nameIdx: 3, paramsIdx: 4,
		style: braceBlock,
	},
	// JS/TS arrow and function-expression bindings.
	{
		kind:      schemas.FunctionDeclaration,
		re:        regexp.MustCompile(`(?m)^\s*(export\s+)?(?:const|let|var)\s+(\w+)\s*(?::[^=]+)?=\s*(async\s*)?(?:\(([^)]*)\)|\w+)\s*(?::[^=]+)?=>`),
		exportIdx: 1, nameIdx: 2, asyncIdx: 3, paramsIdx: 4,
		style: braceBlock,
	},
	{
		kind:      schemas.FunctionDeclaration,
		re:        regexp.MustCompile(`(?m)^\s*(export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(async\s+)?function\s*\*?\s*\(([^)]*)\)`),
		exportIdx: 1, nameIdx: 2, asyncIdx: 3, paramsIdx: 4,
		style: braceBlock,
	},
	// Class methods and TS object methods. Control-flow keywords are filtered
	// out after matching.
	{
		kind:    schemas.FunctionMethod,
		re:      regexp.MustCompile(`(?m)^[ \t]+(?:(?:public|private|protected|static|override|readonly)\s+)*(async\s+)?(\w+)\s*\(([^)]*)\)\s*(?::[^{;]+)?\{`),
		asyncIdx: 1, nameIdx: 2, paramsIdx: 3,
		style: braceBlock,
		exportCheck: func(name, match string) bool {
			return strings.Contains(match, "public")
		},
	},
	// Python functions and methods.
	{
		kind:     schemas.FunctionDeclaration,
		re:       regexp.MustCompile(`(?m)^[ \t]*(async\s+)?def\s+(\w+)\s*\(([^)]*)\)`),
		asyncIdx: 1, nameIdx: 2, paramsIdx: 3,
		style:    indentBlock,
		exportCheck: func(name, match string) bool {
			return !strings.HasPrefix(name, "_")
		},
	},
	// Ruby methods. Parameters may be bare or parenthesized.
	{
		kind:    schemas.FunctionDeclaration,
		re:      regexp.MustCompile(`(?m)^[ \t]*def\s+(?:self\.)?(\w+[?!]?)(?:\s*\(([^)]*)\))?`),
		nameIdx: 1, paramsIdx: 2,
		style: indentBlock,
	},
	// Go functions and methods.
	{
		kind:    schemas.FunctionDeclaration,
		re:      regexp.MustCompile(`(?m)^func\s+(?:\([^)]+\)\s+)?(\w+)\s*\(([^)]*)\)`),
		nameIdx: 1, paramsIdx: 2,
		style:   braceBlock,
		exportCheck: func(name, match string) bool {
			return name != "" && unicode.IsUpper(rune(name[0]))
		},
	},
	// Rust functions.
	{
		kind:      schemas.FunctionDeclaration,
		re:        regexp.MustCompile(`(?m)^\s*(pub\s+)?(async\s+)?fn\s+(\w+)\s*(?:<[^>]*>)?\s*\(([^)]*)\)`),
		exportIdx: 1, asyncIdx: 2, nameIdx: 3, paramsIdx: 4,
		style: braceBlock,
	},
	// Java and C# methods.
	{
		kind:    schemas.FunctionMethod,
		re:      regexp.MustCompile(`(?m)^[ \t]+(?:(?:public|private|protected|static|final|abstract|virtual|override|async)\s+)+[\w<>\[\],\s]+?\s(\w+)\s*\(([^)]*)\)\s*(?:throws\s+[\w,\s]+)?\{`),
		nameIdx: 1, paramsIdx: 2,
		style: braceBlock,
		exportCheck: func(name, match string) bool {
			return strings.Contains(match, "public")
		},
	},
	// PHP functions.
	{
		kind:      schemas.FunctionDeclaration,
		re:        regexp.MustCompile(`(?m)^\s*(public\s+|private\s+|protected\s+)?(?:static\s+)?function\s+(\w+)\s*\(([^)]*)\)`),
		exportIdx: 1, nameIdx: 2, paramsIdx: 3,
		style: braceBlock,
		exportCheck: func(name, match string) bool {
			return !strings.Contains(match, "private") && !strings.Contains(match, "protected")
		},
	},
}

// controlKeywords are statement heads the method pattern can mistake for a
// method name.
var controlKeywords = map[string]struct{}{
	"if": {}, "for": {}, "while": {}, "switch": {}, "catch": {},
	"return": {}, "else": {}, "do": {}, "new": {}, "function": {},
}

// inlineHandlerPattern catches anonymous handlers registered directly on a
// router. They surface as handler facts named after the registration.
var inlineHandlerPattern = regexp.MustCompile(
	`(?m)\b(?:router|app|server|api)\.(get|post|put|delete|patch|all|use)\s*\(\s*['"]([^'"]*)['"]\s*,`)

// extractFunctions returns every function-like declaration found in content,
// ordered by start line, with sequential per-file ids.
func extractFunctions(content string) []schemas.FunctionFact {
	lines := strings.Split(content, "\n")
	var facts []schemas.FunctionFact
	seen := make(map[string]struct{})

	for _, pat := range functionPatterns {
		for _, loc := range pat.re.FindAllStringSubmatchIndex(content, -1) {
			name := submatch(content, loc, pat.nameIdx)
			if name == "" {
				continue
			}
			if _, ctrl := controlKeywords[name]; ctrl {
				continue
			}
			startLine := lineOfOffset(content, loc[0])
			key := fmt.Sprintf("%s:%d", name, startLine)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			match := content[loc[0]:loc[1]]
			fact := schemas.FunctionFact{
				Name:       name,
				Kind:       pat.kind,
				StartLine:  startLine,
				Parameters: splitParams(submatch(content, loc, pat.paramsIdx)),
				IsAsync:    submatch(content, loc, pat.asyncIdx) != "",
			}
			switch {
			case pat.exportCheck != nil:
				fact.IsExported = pat.exportCheck(name, match)
			case pat.exportIdx > 0:
				fact.IsExported = submatch(content, loc, pat.exportIdx) != ""
			}
			switch pat.style {
			case braceBlock:
				fact.EndLine = braceEndLine(content, loc[0])
			case indentBlock:
				fact.EndLine = indentEndLine(lines, startLine-1)
			default:
				fact.EndLine = startLine
			}
			if fact.EndLine < fact.StartLine {
				fact.EndLine = fact.StartLine
			}
			facts = append(facts, fact)
		}
	}

	// Inline route handlers, named "METHOD path".
	for _, loc := range inlineHandlerPattern.FindAllStringSubmatchIndex(content, -1) {
		verb := strings.ToUpper(submatch(content, loc, 1))
		path := submatch(content, loc, 2)
		startLine := lineOfOffset(content, loc[0])
		kind := schemas.FunctionEndpoint
		if verb == "USE" {
			kind = schemas.FunctionMiddleware
		}
		fact := schemas.FunctionFact{
			Name:      verb + " " + path,
			Kind:      kind,
			StartLine: startLine,
			EndLine:   braceEndLine(content, loc[0]),
			IsAsync:   strings.Contains(lineAt(lines, startLine), "async"),
		}
		if kind == schemas.FunctionEndpoint {
			fact.HTTPMethod = verb
			fact.Route = path
		}
		facts = append(facts, fact)
	}

	sort.SliceStable(facts, func(i, j int) bool {
		if facts[i].StartLine != facts[j].StartLine {
			return facts[i].StartLine < facts[j].StartLine
		}
		return facts[i].Name < facts[j].Name
	})
	for i := range facts {
		facts[i].ID = fmt.Sprintf("fn-%d", i+1)
	}
	return facts
}

// submatch returns capture group idx of a FindAllStringSubmatchIndex hit, or
// "" when the group did not participate.
func submatch(content string, loc []int, idx int) string {
	if idx <= 0 || 2*idx+1 >= len(loc) || loc[2*idx] < 0 {
		return ""
	}
	return strings.TrimSpace(content[loc[2*idx]:loc[2*idx+1]])
}

func lineAt(lines []string, lineNo int) string {
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	return lines[lineNo-1]
}
