//go:build !windows

package envstore

// SettingChangeNotifier is a no-op off Windows.
func SettingChangeNotifier() Notifier {
	return NotifierFunc(func(Scope) error { return nil })
}
