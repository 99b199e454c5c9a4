// Package text provides rune-aware helpers for rendering product text.
package text

import "unicode/utf8"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Multi-byte characters such as CJK text and emoji count as one.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("日本語")     // returns 3
//	CountRunes("")          // returns 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate shortens text to at most limit runes, replacing the tail with
// "..." when something was cut. A limit below 4 cuts without the suffix.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if CountRunes(text) <= limit {
		return text
	}
	r := []rune(text)
	if limit < 4 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}
