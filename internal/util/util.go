//go:build !windows

package util

// IsRunFromGUI reports whether the process was launched outside a terminal.
// Always false on non-Windows platforms; desktop launchers there keep the
// process output visible through their own means (journald, nohup, ...).
func IsRunFromGUI() bool {
	return false
}
