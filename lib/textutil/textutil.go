package textutil

import (
	"regexp"
	"strings"
)

// everything outside latin/cyrillic letters, digits, whitespace, hyphens
// and periods gets stripped before a keyword is submitted
var forbiddenRunes = regexp.MustCompile(`[^a-zа-яё0-9.\s-]+`)
var whitespaceRuns = regexp.MustCompile(`\s{2,}`)

// NormalizeKeyword lower-cases a keyword, strips forbidden characters and
// collapses whitespace runs into a single space. Idempotent.
func NormalizeKeyword(keyword string) string {
	keyword = strings.ToLower(keyword)
	keyword = forbiddenRunes.ReplaceAllString(keyword, "")
	keyword = whitespaceRuns.ReplaceAllString(keyword, " ")
	return strings.TrimSpace(keyword)
}
