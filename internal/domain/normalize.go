package domain

import (
	"strings"
)

// CollapseSpace trims s and replaces every run of Unicode whitespace with a
// single space. Case is kept.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeText prepares text for comparison: whitespace collapsed, then
// lowercased. Diacritics, hyphens and apostrophes are preserved.
func NormalizeText(text string) string {
	return strings.ToLower(CollapseSpace(text))
}

// DisplayName is how a learner's name is shown: as typed, with whitespace
// collapsed.
func DisplayName(name string) string {
	return CollapseSpace(name)
}

// NormalizeProfileName returns the storage identity of a learner's display
// name. "Anna" and "anna " resolve to the same profile.
func NormalizeProfileName(name string) string {
	return NormalizeText(name)
}
