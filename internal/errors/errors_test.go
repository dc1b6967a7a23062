package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageAndUnwrap(t *testing.T) {
	base := errors.New("access denied")
	err := Wrap(base, ErrUnexpected, "write PATH")
	assert.Equal(t, "[UNEXPECTED] write PATH: access denied", err.Error())
	assert.True(t, errors.Is(err, base))
	assert.True(t, errors.Is(err, New(ErrUnexpected, "other")))
	assert.False(t, errors.Is(err, New(ErrValidation, "other")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrUnexpected, "x"))
	assert.Nil(t, Unexpected(nil, "x"))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{New(ErrValidation, "bad"), ExitValidation},
		{New(ErrAlreadyPresent, "dup"), ExitAlreadyPresent},
		{New(ErrNotPresent, "gone"), ExitNotPresent},
		{New(ErrNotFound, "gone"), ExitNotPresent},
		{New(ErrElevationDenied, "no"), ExitElevationDenied},
		{New(ErrElevationUnavailable, "broken"), ExitElevationUnavailable},
		{&ExitError{Code: 42}, 42},
		{fmt.Errorf("wrapped: %w", &ExitError{Code: 3}), 3},
		{errors.New("boom"), ExitUnexpected},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestDetailIncludesStackForUnexpected(t *testing.T) {
	err := Unexpected(errors.New("registry exploded"), "add to PATH").WithDetail("scope", "Machine")
	out := Detail(err)
	assert.Contains(t, out, "[UNEXPECTED] add to PATH")
	assert.Contains(t, out, "scope: Machine")
	assert.Contains(t, out, "registry exploded")
	// pkg/errors stacks print function names
	assert.True(t, strings.Contains(out, "TestDetailIncludesStackForUnexpected"), out)
}

func TestGetErrorCodeForeign(t *testing.T) {
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("x")))
	assert.True(t, IsErrorCode(fmt.Errorf("ctx: %w", New(ErrRelayIO, "r")), ErrRelayIO))
}
