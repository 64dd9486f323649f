// Package jsonrepair extracts and patches the imperfect JSON large
// language models emit for tool arguments and inference output: fenced or
// prose-wrapped objects, and a specific malformed-array shape in the
// "evidence" field. Built on the tidwall/gjson + sjson + pretty stack
// for this exact class of problem — extracting/patching LLM JSON without
// a full schema-aware parse.
package jsonrepair

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dungeonkeeper/dm-engine/internal/errs"
)

// ExtractJSON trims raw, strips a ```json fence if present, then scans for
// the first '{' and walks a brace counter that respects quoted strings
// (with backslash escaping) to find the matching brace. This is a
// structural extraction only — the candidate is not
// required to be well-formed JSON yet (the evidence-splice malformation
// SanitizeJSON repairs still leaves braces balanced, so the two utilities
// compose: extract, then sanitize, then parse).
func ExtractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if body, fenced := stripCodeFence(text); fenced {
		text = strings.TrimSpace(body)
	}

	candidate, err := scanBalancedObject(text)
	if err != nil {
		return "", err
	}
	return string(pretty.Ugly([]byte(candidate))), nil
}

func stripCodeFence(s string) (string, bool) {
	const fenceJSON = "```json"
	const fence = "```"

	switch {
	case strings.HasPrefix(s, fenceJSON):
		s = s[len(fenceJSON):]
	case strings.HasPrefix(s, fence):
		s = s[len(fence):]
	default:
		return s, false
	}
	if idx := strings.LastIndex(s, fence); idx >= 0 {
		s = s[:idx]
	}
	return s, true
}

// scanBalancedObject finds the first '{' in s and returns the substring up
// to its matching '}', tracking brace depth while ignoring braces that
// appear inside quoted strings.
func scanBalancedObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", errs.ParseError("no JSON object found in model output", nil)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// braces inside a string don't count toward depth.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errs.ParseError("unterminated JSON object in model output", nil)
}

// SanitizeJSON repairs one specific malformed "evidence" shape: the model
// sometimes emits evidence as a bare comma-separated
// run of quoted strings ("a","b","c") instead of one string. Spliced
// pieces join with "; ". A well-formed "evidence" (already a single
// string, or the key absent) passes through unchanged — the heuristic
// only fires on the exact malformed shape, and stops as soon as the next
// quoted token turns out to be a real "key": pair, so it never corrupts a
// valid trailing field.
func SanitizeJSON(raw string) (string, error) {
	keyIdx := strings.Index(raw, `"evidence"`)
	if keyIdx < 0 {
		return raw, nil
	}
	colon := strings.IndexByte(raw[keyIdx:], ':')
	if colon < 0 {
		return raw, nil
	}

	valueStart := skipSpace(raw, keyIdx+colon+1)
	if valueStart >= len(raw) || raw[valueStart] != '"' {
		return raw, nil
	}

	pieces, end, ok := collectQuotedRun(raw, valueStart)
	if !ok || len(pieces) <= 1 {
		return raw, nil
	}

	joined := strings.Join(pieces, "; ")
	patched := raw[:valueStart] + `"` + joined + `"` + raw[end:]

	if !gjson.Valid(patched) {
		return "", errs.ParseError("evidence splice produced invalid JSON", nil)
	}

	// The byte splice above is necessarily positional (the document wasn't
	// parseable before it); once patched is valid JSON, locate "evidence"'s
	// real gjson path and re-set it through sjson so the final write goes
	// through a JSON-aware setter rather than trusting the splice alone.
	if path, found := findEvidencePath(gjson.Parse(patched)); found {
		if rewritten, err := sjson.Set(patched, path, joined); err == nil {
			patched = rewritten
		}
	}
	return patched, nil
}

// findEvidencePath walks a parsed document looking for the dot-path of a
// string-valued "evidence" key, at any nesting depth.
func findEvidencePath(root gjson.Result) (string, bool) {
	var path string
	found := false

	var walk func(prefix string, result gjson.Result)
	walk = func(prefix string, result gjson.Result) {
		if found {
			return
		}
		if result.IsObject() {
			result.ForEach(func(key, value gjson.Result) bool {
				childPath := key.String()
				if prefix != "" {
					childPath = prefix + "." + childPath
				}
				if key.String() == "evidence" && value.Type == gjson.String {
					path, found = childPath, true
					return false
				}
				walk(childPath, value)
				return !found
			})
			return
		}
		if result.IsArray() {
			i := 0
			result.ForEach(func(_, value gjson.Result) bool {
				childPath := strings.TrimPrefix(prefixIndex(prefix, i), ".")
				i++
				walk(childPath, value)
				return !found
			})
		}
	}
	walk("", root)
	return path, found
}

func prefixIndex(prefix string, i int) string {
	if prefix == "" {
		return "." + itoa(i)
	}
	return prefix + "." + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := make([]byte, 0, 4)
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// collectQuotedRun reads the quoted string at start, then keeps consuming
// `,"next"` continuations as long as the token after each one isn't
// itself followed by a colon (which would mean it's the next object key,
// not another evidence fragment). Returns every piece collected and the
// offset just past the last one consumed.
func collectQuotedRun(raw string, start int) (pieces []string, end int, ok bool) {
	first, afterFirst, ok := parseQuotedString(raw, start)
	if !ok {
		return nil, 0, false
	}
	pieces = append(pieces, first)
	pos := afterFirst

	for {
		comma := skipSpace(raw, pos)
		if comma >= len(raw) || raw[comma] != ',' {
			break
		}
		nextStart := skipSpace(raw, comma+1)
		if nextStart >= len(raw) || raw[nextStart] != '"' {
			break
		}
		next, afterNext, ok2 := parseQuotedString(raw, nextStart)
		if !ok2 {
			break
		}
		afterColonCheck := skipSpace(raw, afterNext)
		if afterColonCheck < len(raw) && raw[afterColonCheck] == ':' {
			// This quoted token is a key, not an evidence fragment — stop
			// before consuming it.
			break
		}
		pieces = append(pieces, next)
		pos = afterNext
	}
	return pieces, pos, true
}

// parseQuotedString parses one JSON string literal starting at s[pos]
// (which must be '"'), honoring backslash escapes, and returns its raw
// (still-escaped) content plus the offset just past the closing quote.
func parseQuotedString(s string, pos int) (content string, end int, ok bool) {
	if pos >= len(s) || s[pos] != '"' {
		return "", 0, false
	}
	var b strings.Builder
	i := pos + 1
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == '"' {
			return b.String(), i + 1, true
		}
		b.WriteByte(c)
		i++
	}
	return "", 0, false
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}
