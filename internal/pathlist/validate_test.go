package pathlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := []string{`C:\Tools`, `C:\Tools\`, `%USERPROFILE%\bin`, `D:\Program Files\Git\cmd`, `/usr/local/bin`}
	for _, e := range valid {
		assert.NoError(t, Validate(e), e)
	}

	invalid := map[string]string{
		"empty":      "",
		"blank":      " \t ",
		"separator":  `C:\a;C:\b`,
		"control":    "C:\\bad\x07dir",
		"zero width": "C:\\to\u200Bols",
		"encoding":   "C:\\\xff\xfe",
	}
	for name, e := range invalid {
		assert.Error(t, Validate(e), name)
	}
}
