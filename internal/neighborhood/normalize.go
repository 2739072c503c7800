package neighborhood

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize returns the join key for a neighborhood name: surrounding
// whitespace removed and lower-cased.
func Normalize(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}
