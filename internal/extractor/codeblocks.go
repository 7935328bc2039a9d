// File: internal/extractor/codeblocks.go
// Line-level tagging of external providers and sensitive operations. The
// detectors run independently, so one line can legitimately carry a provider
// tag and an operation tag at once.
package extractor

import (
	"fmt"
	"strings"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
)

const maxTaggedLineLength = 300

// extractCodeBlocks scans content line by line. For each code line it tags at
// most one provider (first table entry wins) and every matching operation
// detector.
func extractCodeBlocks(content string) []schemas.CodeBlockFact {
	var facts []schemas.CodeBlockFact
	add := func(lineNo int, text string, kind schemas.CodeBlockKind, provider string, importance schemas.Importance) {
		facts = append(facts, schemas.CodeBlockFact{
			Kind:       kind,
			Provider:   provider,
			StartLine:  lineNo,
			EndLine:    lineNo,
			Text:       text,
			Importance: importance,
		})
	}

	for i, line := range strings.Split(content, "\n") {
		if isCommentOrBlank(line) {
			continue
		}
		lineNo := i + 1
		text := strings.TrimSpace(line)
		if len(text) > maxTaggedLineLength {
			text = text[:maxTaggedLineLength]
		}

		for _, rule := range ProviderRules {
			if matchAny(rule.Patterns, line) {
				add(lineNo, text, schemas.CodeBlockThirdParty, rule.Provider,
					providerImportance(rule.Provider, line))
				break
			}
		}
		if matchAny(dbOperationPatterns, line) {
			add(lineNo, text, schemas.CodeBlockDBQuery, "", schemas.ImportanceHigh)
		}
		if matchAny(authOperationPatterns, line) {
			add(lineNo, text, schemas.CodeBlockAuthCheck, "", schemas.ImportanceCritical)
		}
		if matchAny(fileOperationPatterns, line) {
			add(lineNo, text, schemas.CodeBlockFileOperation, "", schemas.ImportanceMedium)
		}
	}

	for i := range facts {
		facts[i].ID = fmt.Sprintf("cb-%d", i+1)
	}
	return facts
}
