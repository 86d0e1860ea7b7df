package manifest

import (
	"strings"
	"unicode"
)

// Punctuation permitted to survive sanitization, beyond letters and digits.
const allowedPunct = ` -_&$!@#%^*()+=[]{}|\:;"'<>,.?/`

// Characters that would need quoting in a shell; a sanitized name still
// containing any of them is wrapped in parentheses.
const shellSpecial = `$!&*?[]{}|\;"'<>()`

// CleanTitle derives the on-disk base name for a post title. The rule must
// stay byte-for-byte stable across releases: the derived name doubles as a
// de-duplication key in the manifest, so changing it would re-scrape
// everything under new names.
func CleanTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(allowedPunct, r) {
			b.WriteRune(r)
		}
	}
	clean := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	clean = strings.ReplaceAll(clean, " ", "_")

	if strings.ContainsAny(clean, shellSpecial) {
		clean = "(" + clean + ")"
	}
	return clean
}
