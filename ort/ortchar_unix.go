//go:build !windows

package ort

import "strings"

// goStringToORTChar converts a Go string to the ORTCHAR_T encoding for Unix
// platforms (plain null-terminated bytes). The returned backing object must
// be kept alive by the caller until the native call returns.
//
// An embedded NUL would silently truncate the path on the native side, so
// such strings are rejected as unrepresentable.
func goStringToORTChar(s string) (uintptr, any, error) {
	if strings.ContainsRune(s, 0) {
		return 0, nil, ErrUnrepresentablePath
	}
	bytes, ptr := GoToCstring(s)
	return ptr, bytes, nil
}
