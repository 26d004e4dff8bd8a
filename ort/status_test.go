package ort

import (
	"errors"
	"testing"
)

func TestCheckStatusSuccess(t *testing.T) {
	resetEnvironmentState()
	t.Cleanup(resetEnvironmentState)

	if err := checkStatus("AnyCall", 0); err != nil {
		t.Errorf("expected nil for zero status, got %v", err)
	}
}

func TestCheckStatusFailure(t *testing.T) {
	fake := newFakeRuntime()
	fake.install(t)

	status := fake.makeStatus(int32(ErrorCodeInvalidArgument), "bad argument")
	err := checkStatus("SetIntraOpNumThreads", status)
	if err == nil {
		t.Fatal("expected error for non-zero status")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.Op != "SetIntraOpNumThreads" {
		t.Errorf("expected op %q, got %q", "SetIntraOpNumThreads", statusErr.Op)
	}
	if statusErr.Code != ErrorCodeInvalidArgument {
		t.Errorf("expected code %v, got %v", ErrorCodeInvalidArgument, statusErr.Code)
	}
	if statusErr.Message != "bad argument" {
		t.Errorf("expected message %q, got %q", "bad argument", statusErr.Message)
	}

	// The status handle is consumed exactly once.
	if fake.releasedStatuses != 1 {
		t.Errorf("expected 1 status release, got %d", fake.releasedStatuses)
	}
	if len(fake.statuses) != 0 {
		t.Errorf("expected no live statuses, got %d", len(fake.statuses))
	}
}

func TestCheckStatusWithoutRegisteredFuncs(t *testing.T) {
	resetEnvironmentState()
	t.Cleanup(resetEnvironmentState)

	err := checkStatus("CreateEnv", 0xdead)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.Code != ErrorCodeFail {
		t.Errorf("expected fallback code %v, got %v", ErrorCodeFail, statusErr.Code)
	}
	if statusErr.Message != "unknown error" {
		t.Errorf("expected fallback message, got %q", statusErr.Message)
	}
}

func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrorCodeOK, "ok"},
		{ErrorCodeInvalidArgument, "invalid argument"},
		{ErrorCodeNoSuchFile, "no such file"},
		{ErrorCode(99), "unknown error code"},
	}

	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
