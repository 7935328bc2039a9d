// File: internal/extractor/classes.go
// Class-like declaration extraction: classes, interfaces, type aliases and
// enums. Methods and properties are collected from the estimated body span
// of each class.
package extractor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

type classPattern struct {
	kind          schemas.ClassKind
	re            *regexp.Regexp
	exportIdx     int
	nameIdx       int
	extendsIdx    int
	implementsIdx int
	style         blockStyle
	exportCheck   func(name string) bool
}

var classPatterns = []classPattern{
	// JS/TS classes.
	{
		kind:      schemas.ClassDeclaration,
		re:        regexp.MustCompile(`(?m)^\s*(export\s+(?:default\s+)?)?(?:abstract\s+)?class\s+(\w+)(?:\s+extends\s+([\w.]+))?(?:\s+implements\s+([\w,\s.]+?))?\s*\{`),
		exportIdx: 1, nameIdx: 2, extendsIdx: 3, implementsIdx: 4,
		style: braceBlock,
	},
	// TS interfaces.
	{
		kind:      schemas.ClassInterface,
		re:        regexp.MustCompile(`(?m)^\s*(export\s+)?interface\s+(\w+)(?:\s+extends\s+([\w,\s.]+?))?\s*\{`),
		exportIdx: 1, nameIdx: 2, extendsIdx: 3,
		style: braceBlock,
	},
	// TS type aliases and enums.
	{
		kind:      schemas.ClassTypeAlias,
		re:        regexp.MustCompile(`(?m)^\s*(export\s+)?type\s+(\w+)(?:<[^>]*>)?\s*=`),
		exportIdx: 1, nameIdx: 2,
		style: braceBlock,
	},
	{
		kind:      schemas.ClassTypeAlias,
		re:        regexp.MustCompile(`(?m)^\s*(export\s+)?(?:const\s+)?enum\s+(\w+)\s*\{`),
		exportIdx: 1, nameIdx: 2,
		style: braceBlock,
	},
	// Python classes. The first base name fills Extends.
	{
		kind:    schemas.ClassDeclaration,
		re:      regexp.MustCompile(`(?m)^\s*class\s+(\w+)(?:\(([^)]*)\))?\s*:`),
		nameIdx: 1, extendsIdx: 2,
		style: indentBlock,
		exportCheck: func(name string) bool {
			return !strings.HasPrefix(name, "_")
		},
	},
	// Go structs and interfaces.
	{
		kind:    schemas.ClassDeclaration,
		re:      regexp.MustCompile(`(?m)^type\s+(\w+)\s+struct\s*\{`),
		nameIdx: 1,
		style:   braceBlock,
		exportCheck: func(name string) bool {
			return unicode.IsUpper(rune(name[0]))
		},
	},
	{
		kind:    schemas.ClassInterface,
		re:      regexp.MustCompile(`(?m)^type\s+(\w+)\s+interface\s*\{`),
		nameIdx: 1,
		style:   braceBlock,
		exportCheck: func(name string) bool {
			return unicode.IsUpper(rune(name[0]))
		},
	},
	// Java/C# classes and interfaces.
	{
		kind:      schemas.ClassDeclaration,
		re:        regexp.MustCompile(`(?m)^\s*(public\s+)?(?:(?:abstract|final|static|sealed|partial)\s+)*class\s+(\w+)(?:\s+extends\s+([\w.]+))?(?:\s+implements\s+([\w,\s.]+?))?\s*\{`),
		exportIdx: 1, nameIdx: 2, extendsIdx: 3, implementsIdx: 4,
		style: braceBlock,
	},
	// Rust structs.
	{
		kind:      schemas.ClassDeclaration,
		re:        regexp.MustCompile(`(?m)^\s*(pub\s+)?struct\s+(\w+)`),
		exportIdx: 1, nameIdx: 2,
		style: braceBlock,
	},
}

// classMemberPattern finds method names inside a class body span.
var classMemberPattern = regexp.MustCompile(
	`(?m)^[ \t]+(?:(?:public|private|protected|static|override|readonly|async)\s+)*(\w+)\s*\(([^)]*)\)\s*(?::[^{;]+)?[{;]`)

// classPropertyPattern finds field declarations inside a class body span.
var classPropertyPattern = regexp.MustCompile(
	`(?m)^[ \t]+(?:(?:public|private|protected|static|readonly)\s+)*(\w+)\s*[:=][^=]`)

// extractClasses returns every class-like declaration, ordered by start
// line, with sequential per-file ids.
func extractClasses(content string) []schemas.ClassFact {
	lines := strings.Split(content, "\n")
	var facts []schemas.ClassFact
	seen := make(map[string]struct{})

	for _, pat := range classPatterns {
		for _, loc := range pat.re.FindAllStringSubmatchIndex(content, -1) {
			name := submatch(content, loc, pat.nameIdx)
			if name == "" {
				continue
			}
			startLine := lineOfOffset(content, loc[0])
			key := fmt.Sprintf("%s:%d", name, startLine)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			fact := schemas.ClassFact{
				Name:      name,
				Kind:      pat.kind,
				StartLine: startLine,
			}
			if pat.style == indentBlock {
				fact.EndLine = indentEndLine(lines, startLine-1)
			} else {
				fact.EndLine = braceEndLine(content, loc[0])
			}
			if fact.EndLine < fact.StartLine {
				fact.EndLine = fact.StartLine
			}

			if extends := submatch(content, loc, pat.extendsIdx); extends != "" {
				bases := splitNames(extends)
				if len(bases) > 0 {
					fact.Extends = bases[0]
				}
			}
			if impl := submatch(content, loc, pat.implementsIdx); impl != "" {
				fact.Implements = splitNames(impl)
			}
			switch {
			case pat.exportCheck != nil:
				fact.IsExported = pat.exportCheck(name)
			case pat.exportIdx > 0:
				fact.IsExported = submatch(content, loc, pat.exportIdx) != ""
			}

			if fact.Kind == schemas.ClassDeclaration || fact.Kind == schemas.ClassInterface {
				fact.Methods, fact.Properties = classMembers(lines, fact.StartLine, fact.EndLine)
			}
			facts = append(facts, fact)
		}
	}

	sort.SliceStable(facts, func(i, j int) bool {
		if facts[i].StartLine != facts[j].StartLine {
			return facts[i].StartLine < facts[j].StartLine
		}
		return facts[i].Name < facts[j].Name
	})
	for i := range facts {
		facts[i].ID = fmt.Sprintf("cls-%d", i+1)
	}
	return facts
}

// classMembers scans the body span of a class for method and property names.
// A name that looks like a call is a method; a name followed by a type or an
// assignment is a property.
func classMembers(lines []string, startLine, endLine int) (methods, properties []string) {
	if startLine >= endLine {
		return nil, nil
	}
	body := strings.Join(lines[startLine:min(endLine-1, len(lines))], "\n")

	methodSet := make(map[string]struct{})
	for _, m := range classMemberPattern.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if _, ctrl := controlKeywords[name]; ctrl {
			continue
		}
		if _, dup := methodSet[name]; dup {
			continue
		}
		methodSet[name] = struct{}{}
		methods = append(methods, name)
	}
	for _, m := range classPropertyPattern.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if _, isMethod := methodSet[name]; isMethod {
			continue
		}
		if !containsString(properties, name) {
			properties = append(properties, name)
		}
	}
	return methods, properties
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
