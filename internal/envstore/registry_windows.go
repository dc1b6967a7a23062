//go:build windows

package envstore

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	userEnvKey    = `Environment`
	machineEnvKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	pathValue     = "Path"
)

// RegistryBackend reads and writes the Path value under HKCU\Environment
// and the machine Session Manager environment key.
type RegistryBackend struct{}

// NewRegistryBackend returns the registry backend.
func NewRegistryBackend() (*RegistryBackend, error) {
	return &RegistryBackend{}, nil
}

func envKey(scope Scope) (registry.Key, string) {
	if scope == Machine {
		return registry.LOCAL_MACHINE, machineEnvKey
	}
	return registry.CURRENT_USER, userEnvKey
}

// Get implements Backend. The raw value is returned unexpanded.
func (RegistryBackend) Get(scope Scope) (string, error) {
	root, path := envKey(scope)
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("open %s environment key: %w", scope, err)
	}
	defer func() { _ = k.Close() }()
	v, _, err := k.GetStringValue(pathValue)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s PATH: %w", scope, err)
	}
	return v, nil
}

// Set implements Backend. The existing value type is kept; a new value is
// written as REG_EXPAND_SZ so %VAR% references keep expanding.
func (RegistryBackend) Set(scope Scope, value string) error {
	root, path := envKey(scope)
	k, _, err := registry.CreateKey(root, path, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open %s environment key: %w", scope, err)
	}
	defer func() { _ = k.Close() }()
	_, valType, err := k.GetStringValue(pathValue)
	if err == nil && valType == registry.SZ {
		err = k.SetStringValue(pathValue, value)
	} else {
		err = k.SetExpandStringValue(pathValue, value)
	}
	if err != nil {
		return fmt.Errorf("write %s PATH: %w", scope, err)
	}
	return nil
}

// Watch reports changes to either environment key.
func (RegistryBackend) Watch(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{}, 1)
	var wg sync.WaitGroup
	for _, scope := range Scopes() {
		root, path := envKey(scope)
		k, err := registry.OpenKey(root, path, registry.NOTIFY)
		if err != nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			watchKey(ctx, k, out)
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out, nil
}

func watchKey(ctx context.Context, k registry.Key, out chan<- struct{}) {
	// async notifications are bound to the registering thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer func() { _ = k.Close() }()

	ev, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return
	}
	defer func() { _ = windows.CloseHandle(ev) }()

	for ctx.Err() == nil {
		if err := windows.RegNotifyChangeKeyValue(windows.Handle(k), false, windows.REG_NOTIFY_CHANGE_LAST_SET, ev, true); err != nil {
			return
		}
		for {
			r, err := windows.WaitForSingleObject(ev, 250)
			if err != nil {
				return
			}
			if ctx.Err() != nil {
				return
			}
			if r == uint32(windows.WAIT_TIMEOUT) {
				continue
			}
			select {
			case out <- struct{}{}:
			default:
			}
			break
		}
	}
}
