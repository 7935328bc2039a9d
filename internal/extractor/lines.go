// File: internal/extractor/lines.go
// Line arithmetic shared by all matchers: offset-to-line conversion and the
// two block-end heuristics. End lines are estimates by contract; brace
// counting can overrun on minified or malformed source and that is accepted.
package extractor

import "strings"

// countLines returns the number of lines in content. An empty file has one
// (empty) line, matching how editors number it.
func countLines(content string) int {
	return strings.Count(content, "\n") + 1
}

// lineOfOffset converts a byte offset into a 1-based line number.
func lineOfOffset(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

// braceEndLine estimates the closing line of a block by scanning forward
// from the declaration offset to the first '{' and counting brace depth back
// to zero. A ';' before any '{' means the declaration has no block body and
// ends on the ';' line. A block that never closes runs to the last line.
func braceEndLine(content string, from int) int {
	startLine := lineOfOffset(content, from)

	open := -1
	for i := from; i < len(content); i++ {
		if content[i] == '{' {
			open = i
			break
		}
		if content[i] == ';' {
			return lineOfOffset(content, i)
		}
	}
	if open < 0 {
		return startLine
	}
	depth := 0
	for i := open; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return lineOfOffset(content, i)
			}
		}
	}
	return countLines(content)
}

// indentEndLine estimates the closing line of an indentation-delimited block
// (Python, Ruby) as the last line indented deeper than the declaration. The
// declaration line index is 0-based.
func indentEndLine(lines []string, startIdx int) int {
	if startIdx >= len(lines) {
		return len(lines)
	}
	base := indentWidth(lines[startIdx])
	end := startIdx
	for i := startIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentWidth(lines[i]) <= base {
			break
		}
		end = i
	}
	return end + 1
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// isCommentOrBlank reports whether a line carries no code worth tagging.
func isCommentOrBlank(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	for _, prefix := range []string{"//", "#", "/*", "*", "--"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// splitNames splits a comma-separated identifier list, honoring "a as b"
// aliases by keeping the visible (aliased) name.
func splitNames(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if idx := strings.Index(name, " as "); idx >= 0 {
			name = strings.TrimSpace(name[idx+4:])
		}
		name = strings.Trim(name, `'"`)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// splitParams splits a parameter list on top-level commas, dropping type
// annotations' nesting concerns by only honoring bracket depth.
func splitParams(params string) []string {
	params = strings.TrimSpace(params)
	if params == "" {
		return nil
	}
	var out []string
	depth := 0
	start := 0
	for i, r := range params {
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(params[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(params[start:]); last != "" {
		out = append(out, last)
	}
	return out
}
