package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	cases := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		" yes":  true,
		"n\n":   false,
		"\n":    false,
		"":      false,
		"maybe": false,
	}
	for in, want := range cases {
		var out bytes.Buffer
		assert.Equal(t, want, Confirm(strings.NewReader(in), &out, "Restore?"), "Confirm(%q)", in)
		assert.Equal(t, "Restore? [y/N]: ", out.String())
	}
}
