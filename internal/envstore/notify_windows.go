//go:build windows

package envstore

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeout = user32.NewProc("SendMessageTimeoutW")
)

const (
	hwndBroadcast   = 0xFFFF
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002
	broadcastWaitMs = 5000
)

// SettingChangeNotifier broadcasts WM_SETTINGCHANGE "Environment" so new
// shells and Explorer pick up the new PATH.
func SettingChangeNotifier() Notifier {
	return NotifierFunc(func(Scope) error {
		param, err := windows.UTF16PtrFromString("Environment")
		if err != nil {
			return err
		}
		var result uintptr
		r, _, callErr := procSendMessageTimeout.Call(
			uintptr(hwndBroadcast),
			uintptr(wmSettingChange),
			0,
			uintptr(unsafe.Pointer(param)),
			uintptr(smtoAbortIfHung),
			uintptr(broadcastWaitMs),
			uintptr(unsafe.Pointer(&result)),
		)
		if r == 0 {
			return fmt.Errorf("broadcast WM_SETTINGCHANGE: %v", callErr)
		}
		return nil
	})
}
