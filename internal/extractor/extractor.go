// File: internal/extractor/extractor.go
// The lexical extractor. It never parses; every fact comes from ordered
// regular-expression tables over raw content, and identical content always
// yields identical facts.
package extractor

import (
	"go.uber.org/zap"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

// Facts is everything the extractor learns about one file.
type Facts struct {
	Imports          []string
	Exports          []string
	HasDefaultExport bool
	Endpoints        []schemas.Endpoint
	Functions        []schemas.FunctionFact
	Classes          []schemas.ClassFact
	CodeBlocks       []schemas.CodeBlockFact
}

// Extractor runs the matcher pipeline over file content.
type Extractor struct {
	logger *zap.Logger
}

// New creates an Extractor.
func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger.Named("extractor")}
}

// Extract runs every matcher over content. The matchers are independent;
// a panic in any of them is recovered and yields empty facts for the file,
// never a failed scan.
func (e *Extractor) Extract(relPath, content string, role schemas.FileRole) (facts Facts) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("Extraction panicked, emitting empty facts",
				zap.String("path", relPath), zap.Any("panic", r))
			facts = Facts{}
		}
	}()

	facts.Imports = extractImports(content)
	facts.Exports, facts.HasDefaultExport = extractExports(content)
	facts.Endpoints = extractEndpoints(content, role)
	facts.Functions = extractFunctions(content)
	facts.Classes = extractClasses(content)
	facts.CodeBlocks = extractCodeBlocks(content)
	return facts
}
