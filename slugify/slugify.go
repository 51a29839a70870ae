package slugify

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Make converts an arbitrary title into a URL-safe slug: lowercase,
// spaces to hyphens, everything outside [a-z0-9-] stripped, hyphen runs
// collapsed, leading/trailing hyphens trimmed.
func Make(input string) string {
	lower := strings.ToLower(input)
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := invalidChars.ReplaceAllString(hyphenated, "")
	normalized := hyphenRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}
