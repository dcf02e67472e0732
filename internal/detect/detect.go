// Package detect classifies window text. Everything here is a pure function
// of its input so the matchers can be tested without any OS dependency.
package detect

import (
	"fmt"
	"regexp"
	"strings"
)

// triggerPatterns match the model names that mark a window for autoresponse.
// Hyphenated, spaced, and bare forms all match, case-insensitively.
var triggerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)claude[\s\-]?4`),
	regexp.MustCompile(`(?i)opus[\s\-]?4`),
}

// ContainsTrigger reports whether text mentions a trigger phrase.
func ContainsTrigger(text string) bool {
	for _, p := range triggerPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// menuKeywords corroborate that digits 1/2/3 belong to a selection prompt.
var menuKeywords = regexp.MustCompile(`(?i)select|choose|option|choice|pick|which.*model|available.*models`)

// sequencePattern accepts any text where 1, 2 and 3 appear in order.
var sequencePattern = regexp.MustCompile(`(?s)1.*2.*3`)

// structuredPatterns recognize explicitly formatted option lists, e.g.
// "1. foo\n2. bar\n3. baz" or "[1] foo [2] bar [3] baz".
var structuredPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)1\s*[\.)\-]\s*.*\n.*2\s*[\.)\-]\s*.*\n.*3\s*[\.)\-]`),
	regexp.MustCompile(`(?is)\[1\].*\[2\].*\[3\]`),
	regexp.MustCompile(`(?is)option 1.*option 2.*option 3`),
}

// IsOptionsMenu guesses whether text is a numbered 1/2/3 selection prompt.
// It requires lines containing 1, 2 and 3, corroborated by either a menu
// keyword or the digits appearing in sequence; explicitly formatted option
// lists match on their own. False negatives are tolerated — the caller polls
// and will retry.
func IsOptionsMenu(text string) bool {
	lines := strings.Split(text, "\n")
	has1 := anyLineContains(lines, "1")
	has2 := anyLineContains(lines, "2")
	has3 := anyLineContains(lines, "3")

	if has1 && has2 && has3 {
		if menuKeywords.MatchString(text) {
			return true
		}
		if sequencePattern.MatchString(text) {
			return true
		}
	}

	for _, p := range structuredPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func anyLineContains(lines []string, sub string) bool {
	for _, line := range lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

// Key identifies a window's displayed content for de-duplication: the same
// window re-displaying the same menu is not re-answered, but a changed title
// or changed content produces a new key and becomes eligible again.
func Key(index int, title string, contentLen int) string {
	return fmt.Sprintf("%s%d", KeyPrefix(index, title), contentLen)
}

// KeyPrefix identifies the window part of a content key, independent of the
// content. Keys sharing a prefix belong to the same listed window.
func KeyPrefix(index int, title string) string {
	return fmt.Sprintf("%d_%s_", index, title)
}
