package ort

// checkStatus translates a raw native status handle into a structured
// outcome. A zero handle is success. A non-zero handle is drained for its
// error code and diagnostic message, released, and wrapped in a
// *StatusError naming the failing call.
//
// Callers must hold no assumptions about the status handle afterwards; it
// is always released here, exactly once.
func checkStatus(op string, status uintptr) error {
	if status == 0 {
		return nil
	}

	code := ErrorCodeFail
	if getErrorCodeFunc != nil {
		code = ErrorCode(getErrorCodeFunc(status))
	}

	message := "unknown error"
	if getErrorMessageFunc != nil {
		if msgPtr := getErrorMessageFunc(status); msgPtr != 0 {
			message = CstringToGo(msgPtr)
		}
	}

	if releaseStatusFunc != nil {
		releaseStatusFunc(status)
	}

	return &StatusError{Op: op, Code: code, Message: message}
}
