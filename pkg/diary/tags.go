package diary

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`#\w+`)

// ExtractTags scans content for "#token" substrings and returns the
// de-duplicated tokens, in order of first occurrence, joined with commas.
// It returns the empty string when content is empty or contains no tokens.
// Case is preserved as typed. The function is pure: the same content always
// yields the same result.
func ExtractTags(content string) string {
	if content == "" {
		return ""
	}

	matches := tagPattern.FindAllString(content, -1)
	if len(matches) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(matches))
	unique := make([]string, 0, len(matches))
	for _, tag := range matches {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		unique = append(unique, tag)
	}

	return strings.Join(unique, ",")
}
