package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var multiSpace = regexp.MustCompile(`\s+`)

// LookupKey lowercases, collapses whitespace, and trims the input so that
// free-text category variants compare equal ("  Self   PAY" == "self pay").
func LookupKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return multiSpace.ReplaceAllString(s, " ")
}

// TitleCase trims, collapses whitespace, and upper-cases the first letter of
// every word while lower-casing the rest ("heart DISEASE" -> "Heart Disease").
func TitleCase(s string) string {
	s = multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	return cases.Title(language.Und).String(s)
}

// Canonicalize maps a category value to its canonical spelling using lookup,
// which is keyed by LookupKey. An exact key match wins over the folded key.
// Values not in the table are title-cased. Empty input stays empty.
func Canonicalize(v string, lookup map[string]string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	if c, ok := lookup[v]; ok {
		return c
	}
	if c, ok := lookup[LookupKey(v)]; ok {
		return c
	}
	return TitleCase(v)
}
