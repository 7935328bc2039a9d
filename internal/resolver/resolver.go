// File: internal/resolver/resolver.go
// Relationship derivation: turns per-file facts into the snapshot's edge
// list. Import specifiers resolve against the scanned file set only; what a
// bundler or interpreter would actually load is out of scope.
package resolver

import (
	"path"
	"regexp"
	"sort"

	"go.uber.org/zap"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
	"github.com/Amrlmlna/dyad-scan/internal/walker"
)

// Resolver derives relationships between scanned files and external
// providers.
type Resolver struct {
	logger *zap.Logger
}

// New creates a Resolver.
func New(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger.Named("resolver")}
}

// Resolve returns every relationship derivable from the scanned files, in
// deterministic order: per file, import edges, then call edges, then
// provider edges. Unresolvable imports are dropped after a debug log.
func (r *Resolver) Resolve(files []schemas.ScannedFile) []schemas.Relationship {
	index := make(map[string]string, len(files))
	byID := make(map[string]*schemas.ScannedFile, len(files))
	for i := range files {
		index[files[i].Path] = files[i].ID
		byID[files[i].ID] = &files[i]
	}

	var edges []schemas.Relationship
	occurrences := make(map[string]int)
	add := func(sourceID, targetID string, kind schemas.RelationshipKind, label string) {
		key := sourceID + "|" + targetID + "|" + string(kind)
		n := occurrences[key]
		occurrences[key] = n + 1
		edges = append(edges, schemas.Relationship{
			ID:       schemas.RelationshipID(sourceID, targetID, kind, n),
			SourceID: sourceID,
			TargetID: targetID,
			Kind:     kind,
			Label:    label,
		})
	}

	for i := range files {
		file := &files[i]

		// Import edges, and from each resolved import the call edges it
		// enables.
		for _, spec := range file.Imports {
			targetID, ok := r.resolveImport(index, file.Path, spec)
			if !ok {
				r.logger.Debug("Import did not resolve inside the scanned set",
					zap.String("source", file.Path), zap.String("specifier", spec))
				continue
			}
			add(file.ID, targetID, schemas.RelationshipImport, spec)

			target := byID[targetID]
			for _, name := range calledExports(file.Content, target.Exports) {
				add(file.ID, targetID, schemas.RelationshipFunctionCall, name)
			}
		}

		// Provider edges. Every tagged line produces one edge to the
		// provider's singleton node; repeats are deliberate, the edge count
		// is the usage count.
		for _, block := range file.CodeBlocks {
			if block.Kind != schemas.CodeBlockThirdParty {
				continue
			}
			add(file.ID, schemas.ExternalProviderID(block.Provider),
				schemas.RelationshipAPICall, block.Provider)
		}
	}
	return edges
}

// resolveImport maps a relative specifier to a scanned file id. Candidates
// are probed in fixed order: the exact path, the path with each supported
// extension appended, then each index file under the path.
func (r *Resolver) resolveImport(index map[string]string, fromPath, spec string) (string, bool) {
	base := path.Join(path.Dir(fromPath), spec)

	if id, ok := index[base]; ok {
		return id, true
	}
	for _, ext := range walker.SupportedExtensions {
		if id, ok := index[base+ext]; ok {
			return id, true
		}
	}
	for _, ext := range walker.SupportedExtensions {
		if id, ok := index[base+"/index"+ext]; ok {
			return id, true
		}
	}
	return "", false
}

// calledExports returns the target's exported names that the importing
// content invokes as a call, sorted. Each name yields at most one edge no
// matter how many call sites exist.
func calledExports(content string, exports []string) []string {
	var called []string
	for _, name := range exports {
		if callPattern(name).MatchString(content) {
			called = append(called, name)
		}
	}
	sort.Strings(called)
	return called
}

func callPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
}
