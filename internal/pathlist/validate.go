package pathlist

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validate checks that entry can be stored as a single PATH entry. It does
// not touch the file system.
func Validate(entry string) error {
	n := Normalize(entry)
	if n == "" {
		return fmt.Errorf("path must not be empty")
	}
	if !utf8.ValidString(n) {
		return fmt.Errorf("path contains invalid encoding")
	}
	if strings.Contains(n, Separator) {
		return fmt.Errorf("path must not contain %q", Separator)
	}
	for _, r := range n {
		if unicode.IsControl(r) {
			return fmt.Errorf("path contains control character U+%04X", r)
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			return fmt.Errorf("path contains invisible character U+%04X", r)
		}
	}
	return nil
}
