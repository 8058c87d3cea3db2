// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Email lowercases and trims an email address for storage and comparison.
// Email uniqueness is always checked against the normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace, collapses internal whitespace runs to a
// single space, and word-capitalizes the result:
//
//	"  ana   lópez " -> "Ana López"
func Name(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return titleCaser.String(strings.Join(fields, " "))
}

// Title normalizes a task title with the same rules as Name.
func Title(s string) string {
	return Name(s)
}

// Description trims surrounding whitespace. Markup stripping is handled
// separately by htmlsanitize.
func Description(s string) string {
	return strings.TrimSpace(s)
}
