// SPDX-License-Identifier: MIT
package generator

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONObject is returned when text contains no balanced {...} object.
var ErrNoJSONObject = errors.New("no JSON object found in generated text")

var codeFence = regexp.MustCompile("```(?:json|JSON)?[ \t]*\n?")

// ExtractJSON strips markdown code fences from model output and returns the
// first brace-balanced object. Braces inside JSON strings are ignored.
func ExtractJSON(text string) (string, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(text, ""))

	for start := strings.IndexByte(cleaned, '{'); start >= 0; {
		if end := matchingBrace(cleaned, start); end > 0 {
			return cleaned[start : end+1], nil
		}
		next := strings.IndexByte(cleaned[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", ErrNoJSONObject
}

// matchingBrace returns the index of the brace closing the object that
// opens at start, or -1.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
