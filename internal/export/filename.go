package export

import (
	"strings"
	"unicode"
)

const fallbackFilename = "document"

// Filename derives a download name: letters, digits, space, hyphen and
// underscore survive; spaces become underscores.
func Filename(name, ext string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	clean := strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
	if clean == "" {
		clean = fallbackFilename
	}
	return clean + "." + strings.TrimPrefix(ext, ".")
}
