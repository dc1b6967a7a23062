//go:build !windows

package envstore

import (
	"context"

	"github.com/VoxDroid/envpath/internal/errors"
)

// RegistryBackend is only available on Windows.
type RegistryBackend struct{}

// NewRegistryBackend reports UNSUPPORTED off Windows.
func NewRegistryBackend() (*RegistryBackend, error) {
	return nil, errors.New(errors.ErrUnsupported, "the registry backend requires Windows")
}

// Get implements Backend.
func (RegistryBackend) Get(Scope) (string, error) {
	return "", errors.New(errors.ErrUnsupported, "the registry backend requires Windows")
}

// Set implements Backend.
func (RegistryBackend) Set(Scope, string) error {
	return errors.New(errors.ErrUnsupported, "the registry backend requires Windows")
}

// Watch implements Watcher.
func (RegistryBackend) Watch(context.Context) (<-chan struct{}, error) {
	return nil, errors.New(errors.ErrUnsupported, "the registry backend requires Windows")
}
