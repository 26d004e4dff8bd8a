//go:build windows

package ort

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// goStringToORTChar converts a Go string to the ORTCHAR_T encoding for
// Windows (null-terminated UTF-16). The returned backing object must be
// kept alive by the caller until the native call returns.
func goStringToORTChar(s string) (uintptr, any, error) {
	utf16, err := windows.UTF16FromString(s)
	if err != nil {
		return 0, nil, ErrUnrepresentablePath
	}
	// #nosec G103 -- required to pass a wchar_t* path across the FFI boundary.
	return uintptr(unsafe.Pointer(unsafe.SliceData(utf16))), utf16, nil
}
