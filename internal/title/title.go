// Package title derives canonical game titles from disc file names.
package title

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tagPattern matches a disc/part/track indicator together with its index and
// any bracket or separator characters glued to it. The index may be a 1-2
// digit number, a roman numeral, or a spelled-out number up to twelve.
var tagPattern = regexp.MustCompile(
	`(?i)[\s._-]*[(\[{]?\b(?:disc|disk|cd|d|part|p|track)` +
		`[\s._-]*(?:\d{1,2}|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|[ivx]{1,4})\b` +
		`[)\]}]?[\s._-]*`,
)

const edgeSeparators = " .-_"

// Canonical strips every disc/part/track tag from a base name (no extension)
// and trims leftover separators. Files whose names differ only in such tags
// reduce to the same canonical title. If stripping consumes the entire name,
// the original base name is returned so the file still forms a usable group.
func Canonical(base string) string {
	stripped := tagPattern.ReplaceAllString(base, " ")
	stripped = strings.Join(strings.Fields(stripped), " ")
	stripped = strings.Trim(stripped, edgeSeparators)
	if stripped == "" {
		return strings.TrimSpace(base)
	}
	return stripped
}

// Display renders a canonical title for logs and reports. Grouping always
// uses Canonical; Display is presentation only.
func Display(canonical string) string {
	trimmed := strings.TrimSpace(canonical)
	if trimmed == "" {
		return "Unknown Title"
	}
	return cases.Title(language.Und, cases.NoLower).String(trimmed)
}
