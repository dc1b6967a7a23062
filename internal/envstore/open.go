package envstore

import (
	"runtime"

	"github.com/VoxDroid/envpath/internal/errors"
)

// Backend kinds accepted by Open.
const (
	KindAuto       = "auto"
	KindRegistry   = "registry"
	KindPowerShell = "powershell"
	KindFile       = "file"
)

// Open returns the backend named by kind. "auto" selects the registry on
// Windows and the file emulation elsewhere. file is the document used by the
// file backend.
func Open(kind, file string) (Backend, error) {
	if kind == "" || kind == KindAuto {
		kind = KindFile
		if runtime.GOOS == "windows" {
			kind = KindRegistry
		}
	}
	switch kind {
	case KindRegistry:
		b, err := NewRegistryBackend()
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindPowerShell:
		return NewPowerShellBackend(), nil
	case KindFile:
		if file == "" {
			return nil, errors.New(errors.ErrValidation, "file backend requires store.file")
		}
		return NewFileBackend(file), nil
	}
	return nil, errors.Newf(errors.ErrValidation, "unknown store backend %q", kind)
}
