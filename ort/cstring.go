package ort

import "unsafe"

// maxCStringLen bounds the scan for a null terminator when reading
// native-owned strings. Runtime diagnostics and tensor names are far below
// this; anything longer indicates corrupted memory.
const maxCStringLen = 1 << 20

// CstringToGo copies a native null-terminated string into a Go string.
// Returns "" for a null pointer.
func CstringToGo(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}

	// #nosec G103 -- reading a C string returned by the native runtime.
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), maxCStringLen)
	for i := 0; i < maxCStringLen; i++ {
		if bytes[i] == 0 {
			return string(bytes[:i])
		}
	}
	return ""
}

// GoToCstring converts a Go string into a null-terminated buffer suitable
// for the native ABI. The returned slice must be kept alive (for example
// with runtime.KeepAlive) for as long as the native call may read the
// pointer.
func GoToCstring(s string) ([]byte, uintptr) {
	b := append([]byte(s), 0)
	return b, uintptr(unsafe.Pointer(&b[0]))
}
