//go:build windows

package singleton

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procIsIconic            = user32.NewProc("IsIconic")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
)

const swRestore = 9

// WindowActivator finds a top-level window by its exact title.
type WindowActivator struct{}

// Activate implements Activator.
func (WindowActivator) Activate(title string) (bool, error) {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return false, err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(t)))
	if hwnd == 0 {
		return false, nil
	}
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		_, _, _ = procShowWindow.Call(hwnd, swRestore)
	}
	// Windows may refuse focus changes from background processes; the
	// window is still restored.
	_, _, _ = procSetForegroundWindow.Call(hwnd)
	return true, nil
}

// DefaultActivator returns the platform activator.
func DefaultActivator() Activator { return WindowActivator{} }
