// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiter is the phrase that opens the second field of every record.
// Splitting consumes it; RestoreDelimiter puts it back.
const Delimiter = "If description"

const delimiterWord = "description"

// IsDelimiterPhrase reports whether s contains the delimiter phrase as OCR
// tends to render it: case-insensitive, the leading "I" and the "f" each
// optional, and any run of Unicode whitespace between "f" and "description".
func IsDelimiterPhrase(s string) bool {
	start, _ := FindDelimiter(s)
	return start >= 0
}

// FindDelimiter returns the byte offsets [start, end) of the leftmost
// delimiter phrase in s, or -1, -1 if there is none. Leading whitespace
// before "description" belongs to the match.
func FindDelimiter(s string) (start, end int) {
	for i := 0; i < len(s); i++ {
		if e := delimiterAt(s, i); e >= 0 {
			return i, e
		}
	}
	return -1, -1
}

// delimiterAt matches the phrase anchored at offset i and returns the end
// offset, or -1. "I" and "f" can be taken greedily: when s[i] is one of them,
// skipping it can never produce a match starting at i.
func delimiterAt(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == 'I' || s[j] == 'i') {
		j++
	}
	if j < len(s) && (s[j] == 'F' || s[j] == 'f') {
		j++
	}
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !unicode.IsSpace(r) {
			break
		}
		j += size
	}
	if len(s)-j < len(delimiterWord) || !strings.EqualFold(s[j:j+len(delimiterWord)], delimiterWord) {
		return -1
	}
	return j + len(delimiterWord)
}

// splitOnDelimiter cuts s at every delimiter phrase, dropping the phrase.
// With no phrase present it returns s unchanged as the only piece.
func splitOnDelimiter(s string) []string {
	var pieces []string
	for {
		start, end := FindDelimiter(s)
		if start < 0 {
			return append(pieces, s)
		}
		pieces = append(pieces, s[:start])
		s = s[end:]
	}
}
