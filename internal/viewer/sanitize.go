package viewer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	oscRe = regexp.MustCompile(`\x1b\][^\x07]*\x07`)
	csiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
)

// displayEntry makes a PATH entry safe to print. Entries are written by any
// program, so terminal escape sequences are dropped and other control
// characters are shown as '?'.
func displayEntry(e string) string {
	out := oscRe.ReplaceAllString(e, "")
	out = csiRe.ReplaceAllString(out, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, out)
}
