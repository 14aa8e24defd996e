//go:build windows

package privilege

import "golang.org/x/sys/windows"

// isElevated reads the elevation flag of the current process token. An
// administrator account running without UAC elevation reports false.
func isElevated() (bool, error) {
	return windows.GetCurrentProcessToken().IsElevated(), nil
}
