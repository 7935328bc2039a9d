// File: internal/extractor/imports.go
// Local import extraction. Only relative specifiers (./ or ../) are kept;
// package imports are the provider table's concern, not the file graph's.
package extractor

import (
	"regexp"
	"sort"
	"strings"
)

var importPatterns = []*regexp.Regexp{
	// import x from './y', import { a, b } from '../y', import './side-effect'
	regexp.MustCompile(`(?m)^\s*import\s+(?:[\w{}\s,*$]+\s+from\s+)?['"](\.{1,2}/[^'"]+)['"]`),
	// export ... from './y'
	regexp.MustCompile(`(?m)^\s*export\s+(?:\*|\{[^}]*\})\s+from\s+['"](\.{1,2}/[^'"]+)['"]`),
	// require('./y'), dynamic import('./y')
	regexp.MustCompile(`\brequire\s*\(\s*['"](\.{1,2}/[^'"]+)['"]\s*\)`),
	regexp.MustCompile(`\bimport\s*\(\s*['"](\.{1,2}/[^'"]+)['"]\s*\)`),
}

// Python relative imports: "from .models import User", "from ..db import x".
var pyRelativeImport = regexp.MustCompile(`(?m)^\s*from\s+(\.{1,2})([\w.]*)\s+import\b`)

// extractImports returns the deduplicated, sorted local import specifiers of
// a file.
func extractImports(content string) []string {
	seen := make(map[string]struct{})
	for _, pattern := range importPatterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			seen[m[1]] = struct{}{}
		}
	}
	for _, m := range pyRelativeImport.FindAllStringSubmatch(content, -1) {
		marker := "./"
		if m[1] == ".." {
			marker = "../"
		}
		spec := marker + strings.ReplaceAll(m[2], ".", "/")
		seen[strings.TrimSuffix(spec, "/")] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for spec := range seen {
		out = append(out, spec)
	}
	sort.Strings(out)
	return out
}
