package shellmenu

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/VoxDroid/envpath/internal/errors"
)

// Registry writes and deletes context-menu keys.
type Registry interface {
	// SetKey creates k with its label, icon and command subkey.
	SetKey(k Key) error
	// DeleteKey removes path and its command subkey. A missing key is not
	// an error.
	DeleteKey(path string) error
}

// Options controls Install and Uninstall.
type Options struct {
	// Executable is the binary the menu runs; os.Executable() when empty.
	Executable string
	DryRun     bool
	// Registry defaults to the machine registry.
	Registry Registry
}

func (o Options) registry() (Registry, error) {
	if o.Registry != nil {
		return o.Registry, nil
	}
	return DefaultRegistry()
}

func (o Options) executable() (string, error) {
	if o.Executable != "" {
		return o.Executable, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("determine current executable: %w", err)
	}
	return filepath.Abs(exe)
}

// PlanInstall describes what Install would do.
func PlanInstall(exe string) []string {
	keys := Keys(exe)
	actions := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		actions = append(actions, fmt.Sprintf("Create HKLM\\%s (%q -> %s)", k.Path, k.Label, k.Command))
	}
	return append(actions, "Record installed keys in the envpath data directory")
}

// Install writes the context-menu keys, or only plans them with DryRun.
func Install(opts Options) ([]string, error) {
	exe, err := opts.executable()
	if err != nil {
		return nil, err
	}
	actions := PlanInstall(exe)
	if opts.DryRun {
		return actions, nil
	}
	reg, err := opts.registry()
	if err != nil {
		return nil, err
	}
	m := metadata{Executable: exe, InstalledAt: time.Now()}
	for _, k := range Keys(exe) {
		m.Keys = append(m.Keys, k.Path)
		if err := reg.SetKey(k); err != nil {
			// record what was attempted so uninstall can clean it up
			_ = saveMetadata(m)
			return nil, errors.Wrapf(err, errors.ErrUnexpected, "write HKLM\\%s", k.Path)
		}
	}
	if err := saveMetadata(m); err != nil {
		return actions, errors.Wrap(err, errors.ErrUnexpected, "record installed keys")
	}
	return actions, nil
}

// PlanUninstall describes what Uninstall would do.
func PlanUninstall() []string {
	m, err := loadMetadata()
	if err != nil {
		actions := []string{"No install metadata found; removing the default envpath keys."}
		for _, p := range keyPaths() {
			actions = append(actions, fmt.Sprintf("Delete HKLM\\%s", p))
		}
		return actions
	}
	actions := make([]string, 0, len(m.Keys)+1)
	for _, p := range m.Keys {
		actions = append(actions, fmt.Sprintf("Delete HKLM\\%s", p))
	}
	return append(actions, "Remove install metadata")
}

// Uninstall removes the keys Install recorded, or the default key set when
// nothing was recorded.
func Uninstall(opts Options) ([]string, error) {
	actions := PlanUninstall()
	if opts.DryRun {
		return actions, nil
	}
	reg, err := opts.registry()
	if err != nil {
		return nil, err
	}
	paths := keyPaths()
	if m, err := loadMetadata(); err == nil {
		paths = m.Keys
	}
	for _, p := range paths {
		if err := reg.DeleteKey(p); err != nil {
			return nil, errors.Wrapf(err, errors.ErrUnexpected, "delete HKLM\\%s", p)
		}
	}
	if err := removeMetadata(); err != nil {
		return actions, errors.Wrap(err, errors.ErrUnexpected, "remove install metadata")
	}
	return actions, nil
}
