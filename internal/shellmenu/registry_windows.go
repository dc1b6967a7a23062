//go:build windows

package shellmenu

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

// MachineRegistry writes keys under HKEY_LOCAL_MACHINE.
type MachineRegistry struct{}

// DefaultRegistry returns the machine registry.
func DefaultRegistry() (Registry, error) { return MachineRegistry{}, nil }

func ensureKeyStringValue(subKey, valueName, value string) error {
	k, _, err := registry.CreateKey(registry.LOCAL_MACHINE, subKey, registry.SET_VALUE|registry.CREATE_SUB_KEY)
	if err != nil {
		return err
	}
	defer func() { _ = k.Close() }()
	return k.SetStringValue(valueName, value)
}

// SetKey implements Registry.
func (MachineRegistry) SetKey(k Key) error {
	if err := ensureKeyStringValue(k.Path, "", k.Label); err != nil {
		return err
	}
	if err := ensureKeyStringValue(k.Path, "Icon", k.Icon); err != nil {
		return err
	}
	return ensureKeyStringValue(k.CommandPath(), "", k.Command)
}

// DeleteKey implements Registry. The command subkey goes first since
// DeleteKey cannot remove a key that has children.
func (MachineRegistry) DeleteKey(path string) error {
	for _, p := range []string{path + `\command`, path} {
		err := registry.DeleteKey(registry.LOCAL_MACHINE, p)
		if err == nil || errors.Is(err, registry.ErrNotExist) {
			continue
		}
		return err
	}
	return nil
}
