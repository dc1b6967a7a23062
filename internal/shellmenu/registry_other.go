//go:build !windows

package shellmenu

import "github.com/VoxDroid/envpath/internal/errors"

// DefaultRegistry reports UNSUPPORTED off Windows.
func DefaultRegistry() (Registry, error) {
	return nil, errors.New(errors.ErrUnsupported, "the context menu is only available on Windows")
}
