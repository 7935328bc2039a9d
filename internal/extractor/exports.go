// File: internal/extractor/exports.go
// Export surface extraction: named exports plus a default-export flag. The
// export list feeds cross-file call-edge derivation, so names must be the
// visible (post-alias) identifiers.
package extractor

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// export { a, b as c }
	exportListPattern = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}`)
	// export [default] [async] function/class/const/... name
	exportDeclPattern = regexp.MustCompile(
		`(?m)^\s*export\s+(default\s+)?(?:abstract\s+)?(?:async\s+)?` +
			`(?:function\s*\*?|class|interface|type|enum|const|let|var)\s+(\w+)`)
	// bare "export default <expr>"
	exportDefaultPattern = regexp.MustCompile(`(?m)^\s*export\s+default\b`)

	// CommonJS shapes.
	moduleExportsObject = regexp.MustCompile(`module\.exports\s*=\s*\{([^}]*)\}`)
	moduleExportsIdent  = regexp.MustCompile(`module\.exports\s*=\s*(\w+)\s*;?\s*$`)
	exportsProperty     = regexp.MustCompile(`(?m)^\s*(?:module\.)?exports\.(\w+)\s*=`)

	// Python export list.
	pyAllPattern = regexp.MustCompile(`__all__\s*=\s*\[([^\]]*)\]`)
)

// extractExports returns the sorted named exports of a file and whether it
// has a default export. "module.exports = <obj>" counts as a default export
// in addition to any property names it reveals.
func extractExports(content string) ([]string, bool) {
	seen := make(map[string]struct{})
	hasDefault := false

	for _, m := range exportListPattern.FindAllStringSubmatch(content, -1) {
		for _, name := range splitNames(m[1]) {
			if name == "default" {
				hasDefault = true
				continue
			}
			seen[name] = struct{}{}
		}
	}
	for _, m := range exportDeclPattern.FindAllStringSubmatch(content, -1) {
		if m[1] != "" {
			hasDefault = true
		}
		seen[m[2]] = struct{}{}
	}
	if exportDefaultPattern.MatchString(content) {
		hasDefault = true
	}

	if m := moduleExportsObject.FindStringSubmatch(content); m != nil {
		hasDefault = true
		for _, name := range splitNames(m[1]) {
			// "a: b" shorthand keeps the key.
			if idx := strings.IndexByte(name, ':'); idx >= 0 {
				name = strings.TrimSpace(name[:idx])
			}
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	if m := moduleExportsIdent.FindStringSubmatch(content); m != nil {
		hasDefault = true
		seen[m[1]] = struct{}{}
	}
	for _, m := range exportsProperty.FindAllStringSubmatch(content, -1) {
		seen[m[1]] = struct{}{}
	}
	for _, m := range pyAllPattern.FindAllStringSubmatch(content, -1) {
		for _, name := range splitNames(m[1]) {
			seen[name] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, hasDefault
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, hasDefault
}
