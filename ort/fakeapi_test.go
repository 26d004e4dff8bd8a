package ort

import (
	"testing"
	"unsafe"
)

// resetEnvironmentState resets global state for testing.
func resetEnvironmentState() {
	mu.Lock()
	defer mu.Unlock()
	refCount = 0
	ortLib = 0
	ortAPI = nil
	ortEnv = 0
	envName = ""
	libPath = ""
	logLevel = LoggingLevelWarning
	resetAPIFuncs()
}

type fakeStatus struct {
	code    int32
	message []byte
}

// fakeTensorMeta describes one input or output tensor of the fake model.
type fakeTensorMeta struct {
	name        string
	elementType int32
	dims        []int64
	data        []byte   // raw element bytes for numeric outputs
	strings     []string // element values for string outputs
}

// fakeValue is one live native value created by the fake runtime.
type fakeValue struct {
	meta fakeTensorMeta
	data []byte // backing buffer aliased by GetTensorMutableData
}

// fakeRuntime replaces the registered native entry points with in-memory
// fakes and counts every release call per handle kind, so tests can assert
// that each acquired handle is freed exactly once on every path.
type fakeRuntime struct {
	inputs  []fakeTensorMeta
	outputs []fakeTensorMeta

	nextHandle    uintptr
	sessionHandle uintptr
	envHandle     uintptr
	allocHandle   uintptr

	statuses  map[uintptr]fakeStatus
	typeInfos map[uintptr]fakeTensorMeta // type info and tensor info views
	values    map[uintptr]*fakeValue
	cstrings  [][]byte // keeps fake-allocated C strings reachable

	// Failure injection: when set, the named call returns a fake status.
	failCall    string
	failCode    int32
	failMessage string

	createSessionCalls int
	allocatorFrees     int
	intraOpThreads     int32
	optimizationLevel  uint32

	releasedStatuses       int
	releasedEnvs           int
	releasedSessionOptions int
	releasedSessions       int
	releasedTypeInfos      int
	releasedShapeInfos     int
	releasedMemoryInfos    int
	releasedValues         int
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		nextHandle:    0x1000,
		sessionHandle: 0x51,
		envHandle:     0x52,
		allocHandle:   0x53,
		statuses:      make(map[uintptr]fakeStatus),
		typeInfos:     make(map[uintptr]fakeTensorMeta),
		values:        make(map[uintptr]*fakeValue),
	}
}

func (f *fakeRuntime) alloc() uintptr {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeRuntime) makeStatus(code int32, message string) uintptr {
	handle := f.alloc()
	f.statuses[handle] = fakeStatus{code: code, message: append([]byte(message), 0)}
	return handle
}

// status returns an injected failure status for the named call, or 0.
func (f *fakeRuntime) status(call string) uintptr {
	if f.failCall == call {
		return f.makeStatus(f.failCode, f.failMessage)
	}
	return 0
}

func (f *fakeRuntime) makeCstring(s string) uintptr {
	b, ptr := GoToCstring(s)
	f.cstrings = append(f.cstrings, b)
	return ptr
}

func (f *fakeRuntime) newValue(meta fakeTensorMeta) uintptr {
	handle := f.alloc()
	f.values[handle] = &fakeValue{meta: meta, data: meta.data}
	return handle
}

// install swaps all registered entry points for fakes and marks the shared
// environment live. Cleanup restores the pristine uninitialized state.
func (f *fakeRuntime) install(t *testing.T) {
	t.Helper()
	resetEnvironmentState()
	t.Cleanup(resetEnvironmentState)

	mu.Lock()
	defer mu.Unlock()
	refCount = 1
	libPath = "/fake/libonnxruntime.so"
	ortEnv = f.envHandle

	getErrorCodeFunc = func(status uintptr) int32 {
		return f.statuses[status].code
	}
	getErrorMessageFunc = func(status uintptr) uintptr {
		st, ok := f.statuses[status]
		if !ok || len(st.message) == 0 {
			return 0
		}
		return uintptr(unsafe.Pointer(&st.message[0]))
	}
	releaseStatusFunc = func(status uintptr) {
		f.releasedStatuses++
		delete(f.statuses, status)
	}

	releaseEnvFunc = func(uintptr) { f.releasedEnvs++ }

	createSessionOptionsFunc = func(out *uintptr) uintptr {
		if st := f.status("CreateSessionOptions"); st != 0 {
			return st
		}
		*out = f.alloc()
		return 0
	}
	setIntraOpNumThreadsFunc = func(_ uintptr, n int32) uintptr {
		f.intraOpThreads = n
		return 0
	}
	setSessionGraphOptimizationLevelFunc = func(_ uintptr, level uint32) uintptr {
		f.optimizationLevel = level
		return 0
	}
	releaseSessionOptionsFunc = func(uintptr) { f.releasedSessionOptions++ }

	createSessionFunc = func(_, _, _ uintptr, out *uintptr) uintptr {
		f.createSessionCalls++
		if st := f.status("CreateSession"); st != 0 {
			return st
		}
		*out = f.sessionHandle
		return 0
	}
	releaseSessionFunc = func(uintptr) { f.releasedSessions++ }

	getAllocatorWithDefaultOptionsFunc = func(out *uintptr) uintptr {
		if st := f.status("GetAllocatorWithDefaultOptions"); st != 0 {
			return st
		}
		*out = f.allocHandle
		return 0
	}
	allocatorFreeFunc = func(uintptr, uintptr) { f.allocatorFrees++ }

	sessionGetInputCountFunc = func(_ uintptr, out *uintptr) uintptr {
		if st := f.status("SessionGetInputCount"); st != 0 {
			return st
		}
		*out = uintptr(len(f.inputs))
		return 0
	}
	sessionGetOutputCountFunc = func(_ uintptr, out *uintptr) uintptr {
		*out = uintptr(len(f.outputs))
		return 0
	}
	sessionGetInputNameFunc = func(_, index, _ uintptr, out *uintptr) uintptr {
		*out = f.makeCstring(f.inputs[index].name)
		return 0
	}
	sessionGetOutputNameFunc = func(_, index, _ uintptr, out *uintptr) uintptr {
		*out = f.makeCstring(f.outputs[index].name)
		return 0
	}
	sessionGetInputTypeInfoFunc = func(_, index uintptr, out *uintptr) uintptr {
		handle := f.alloc()
		f.typeInfos[handle] = f.inputs[index]
		*out = handle
		return 0
	}
	sessionGetOutputTypeInfoFunc = func(_, index uintptr, out *uintptr) uintptr {
		handle := f.alloc()
		f.typeInfos[handle] = f.outputs[index]
		*out = handle
		return 0
	}

	castTypeInfoToTensorInfoFunc = func(typeInfo uintptr, out *uintptr) uintptr {
		view := f.alloc()
		f.typeInfos[view] = f.typeInfos[typeInfo]
		*out = view
		return 0
	}
	getTensorElementTypeFunc = func(info uintptr, out *int32) uintptr {
		if st := f.status("GetTensorElementType"); st != 0 {
			return st
		}
		*out = f.typeInfos[info].elementType
		return 0
	}
	getDimensionsCountFunc = func(info uintptr, out *uintptr) uintptr {
		*out = uintptr(len(f.typeInfos[info].dims))
		return 0
	}
	getDimensionsFunc = func(info uintptr, out *int64, count uintptr) uintptr {
		dims := f.typeInfos[info].dims
		dst := unsafe.Slice(out, int(count))
		copy(dst, dims)
		return 0
	}
	releaseTypeInfoFunc = func(uintptr) { f.releasedTypeInfos++ }

	createMemoryInfoFunc = func(_ uintptr, _, _, _ int32, out *uintptr) uintptr {
		if st := f.status("CreateMemoryInfo"); st != 0 {
			return st
		}
		*out = f.alloc()
		return 0
	}
	releaseMemoryInfoFunc = func(uintptr) { f.releasedMemoryInfos++ }
	createTensorWithDataAsOrtValueFunc = func(_, _, _ uintptr, _ *int64, _ uintptr, _ int32, out *uintptr) uintptr {
		if st := f.status("CreateTensorWithDataAsOrtValue"); st != 0 {
			return st
		}
		*out = f.alloc()
		return 0
	}
	releaseValueFunc = func(handle uintptr) {
		f.releasedValues++
		delete(f.values, handle)
	}

	runSessionFunc = func(_, _ uintptr, _, _ *uintptr, _ uintptr, _ *uintptr, numOutputs uintptr, outputs *uintptr) uintptr {
		if st := f.status("Run"); st != 0 {
			return st
		}
		dst := unsafe.Slice(outputs, int(numOutputs))
		for i := range dst {
			dst[i] = f.newValue(f.outputs[i])
		}
		return 0
	}

	getTensorTypeAndShapeFunc = func(value uintptr, out *uintptr) uintptr {
		if st := f.status("GetTensorTypeAndShape"); st != 0 {
			return st
		}
		handle := f.alloc()
		f.typeInfos[handle] = f.values[value].meta
		*out = handle
		return 0
	}
	releaseTensorTypeAndShapeInfoFunc = func(uintptr) { f.releasedShapeInfos++ }
	getTensorMutableDataFunc = func(value uintptr, out *uintptr) uintptr {
		if st := f.status("GetTensorMutableData"); st != 0 {
			return st
		}
		v := f.values[value]
		if len(v.data) == 0 {
			*out = 0
			return 0
		}
		*out = uintptr(unsafe.Pointer(&v.data[0]))
		return 0
	}
	getStringTensorDataLengthFunc = func(value uintptr, out *uintptr) uintptr {
		total := 0
		for _, s := range f.values[value].meta.strings {
			total += len(s)
		}
		*out = uintptr(total)
		return 0
	}
	getStringTensorContentFunc = func(value, buf, bufLen uintptr, offsets *uintptr, count uintptr) uintptr {
		if st := f.status("GetStringTensorContent"); st != 0 {
			return st
		}
		elems := f.values[value].meta.strings
		dst := unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(bufLen))
		offs := unsafe.Slice(offsets, int(count))
		pos := 0
		for i, s := range elems {
			offs[i] = uintptr(pos)
			pos += copy(dst[pos:], s)
		}
		return 0
	}
}

// liveSession builds a session against the fake runtime using a temporary
// model file on disk.
func (f *fakeRuntime) liveSession(t *testing.T) *Session {
	t.Helper()
	session, err := (&Environment{name: "test"}).NewSessionBuilder(writeTempModel(t)).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return session
}

func float32Bytes(values []float32) []byte {
	if len(values) == 0 {
		return nil
	}
	// #nosec G103 -- test fixture reinterpretation.
	src := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*4)
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

func int64Bytes(values []int64) []byte {
	if len(values) == 0 {
		return nil
	}
	// #nosec G103 -- test fixture reinterpretation.
	src := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*8)
	out := make([]byte, len(src))
	copy(out, src)
	return out
}
