package ort

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
)

// SessionOptions is a placeholder for advanced native session options
// (execution providers, profiling, memory arenas). Passing one to a builder
// is declared but not yet supported: Build fails loudly instead of silently
// ignoring the request.
type SessionOptions struct {
	handle uintptr
}

// SessionBuilder accumulates session configuration through chained,
// non-failing setters. All validation and native work happens in Build.
type SessionBuilder struct {
	env        *Environment
	modelPath  string
	numThreads int16
	optLevel   GraphOptimizationLevel
	options    *SessionOptions
	useCUDA    bool
}

// NewSessionBuilder starts a builder for a model file using this
// environment. Defaults: one intra-op thread, basic graph optimizations.
func (e *Environment) NewSessionBuilder(modelPath string) *SessionBuilder {
	return &SessionBuilder{
		env:        e,
		modelPath:  modelPath,
		numThreads: 1,
		optLevel:   GraphOptimizationLevelEnableBasic,
	}
}

// WithIntraOpThreads sets the intra-op thread count. The int16 parameter
// restricts the input to the positive 16-bit range before it is widened to
// the ABI's int32; Build rejects non-positive values.
func (b *SessionBuilder) WithIntraOpThreads(n int16) *SessionBuilder {
	b.numThreads = n
	return b
}

// WithOptimizationLevel sets the graph optimization level.
func (b *SessionBuilder) WithOptimizationLevel(level GraphOptimizationLevel) *SessionBuilder {
	b.optLevel = level
	return b
}

// WithSessionOptions attaches advanced session options. Not yet supported:
// Build returns a configuration error when options are set.
func (b *SessionBuilder) WithSessionOptions(options *SessionOptions) *SessionBuilder {
	b.options = options
	return b
}

// WithCUDA requests CUDA execution. Not yet supported: Build returns a
// configuration error when enabled.
func (b *SessionBuilder) WithCUDA(enable bool) *SessionBuilder {
	b.useCUDA = enable
	return b
}

// Session owns a native session handle and the runtime's default allocator
// handle. Both are non-null for the session's entire lifetime and are
// relinquished together by Destroy.
type Session struct {
	session   uintptr
	allocator uintptr
	destroyed bool
}

// Build validates the accumulated configuration and creates the native
// session. Session options allocated along the way are released on every
// exit path; the returned Session holds a reference on the shared
// environment until destroyed.
func (b *SessionBuilder) Build() (*Session, error) {
	if b.options != nil {
		return nil, &Error{
			Kind: KindConfiguration,
			Op:   "Build",
			Err:  fmt.Errorf("advanced session options: %w", ErrNotSupported),
		}
	}
	if b.useCUDA {
		return nil, &Error{
			Kind: KindConfiguration,
			Op:   "Build",
			Err:  fmt.Errorf("CUDA execution: %w", ErrNotSupported),
		}
	}
	if b.numThreads < 1 {
		return nil, &Error{
			Kind: KindConfiguration,
			Op:   "Build",
			Err:  fmt.Errorf("intra-op thread count must be positive, got %d", b.numThreads),
		}
	}

	mu.Lock()
	if refCount == 0 || createSessionOptionsFunc == nil {
		mu.Unlock()
		return nil, &Error{
			Kind: KindEnvironment,
			Op:   "Build",
			Err:  fmt.Errorf("environment is not initialized"),
		}
	}
	// The session in progress keeps the environment alive.
	acquireEnvRefLocked()
	mu.Unlock()

	success := false
	defer func() {
		if !success {
			mu.Lock()
			_ = releaseEnvRefLocked()
			mu.Unlock()
		}
	}()

	var optsHandle uintptr
	if err := checkStatus("CreateSessionOptions", createSessionOptionsFunc(&optsHandle)); err != nil {
		return nil, &Error{Kind: KindSessionOptions, Op: "CreateSessionOptions", Err: err}
	}
	if optsHandle == 0 {
		contractViolation("CreateSessionOptions", "success status with null options handle")
	}
	optsGuard := newSessionOptionsGuard(optsHandle)
	defer optsGuard.release()

	// The ABI treats these setters as infallible for values already
	// validated above; statuses are still drained so nothing leaks.
	_ = checkStatus("SetIntraOpNumThreads", setIntraOpNumThreadsFunc(optsHandle, int32(b.numThreads)))
	_ = checkStatus("SetSessionGraphOptimizationLevel", setSessionGraphOptimizationLevelFunc(optsHandle, uint32(b.optLevel)))

	if _, err := os.Stat(b.modelPath); err != nil {
		cause := err
		if errors.Is(err, fs.ErrNotExist) {
			cause = ErrFileNotFound
		}
		return nil, &Error{Kind: KindPath, Op: "Build", Path: b.modelPath, Err: cause}
	}

	pathPtr, pathHold, err := goStringToORTChar(b.modelPath)
	if err != nil {
		return nil, &Error{Kind: KindPath, Op: "Build", Path: b.modelPath, Err: err}
	}

	// Native session creation is serialized with environment lifecycle.
	var sessionHandle uintptr
	mu.Lock()
	status := createSessionFunc(ortEnv, pathPtr, optsHandle, &sessionHandle)
	mu.Unlock()
	runtime.KeepAlive(pathHold)
	if err := checkStatus("CreateSession", status); err != nil {
		return nil, &Error{Kind: KindSession, Op: "CreateSession", Err: err}
	}
	if sessionHandle == 0 {
		contractViolation("CreateSession", "success status with null session handle")
	}

	var allocatorHandle uintptr
	if err := checkStatus("GetAllocatorWithDefaultOptions", getAllocatorWithDefaultOptionsFunc(&allocatorHandle)); err != nil {
		releaseSessionFunc(sessionHandle)
		return nil, &Error{Kind: KindAllocator, Op: "GetAllocatorWithDefaultOptions", Err: err}
	}
	if allocatorHandle == 0 {
		contractViolation("GetAllocatorWithDefaultOptions", "success status with null allocator handle")
	}

	success = true
	return &Session{session: sessionHandle, allocator: allocatorHandle}, nil
}

// Destroy releases the native session and drops the session's reference on
// the shared environment. The default allocator handle is runtime-owned and
// has no release function; dropping the reference is its release. Destroy
// is idempotent.
func (s *Session) Destroy() error {
	if s == nil || s.destroyed {
		return nil
	}
	s.destroyed = true

	if s.session != 0 && releaseSessionFunc != nil {
		releaseSessionFunc(s.session)
	}
	s.session = 0
	s.allocator = 0

	mu.Lock()
	defer mu.Unlock()
	return releaseEnvRefLocked()
}

// InputOutputInfo describes one declared model input or output.
type InputOutputInfo struct {
	Name        string
	ElementType TensorElementDataType
	Dims        Dims
}

// InputCount returns the number of inputs the model declares.
func (s *Session) InputCount() (int, error) {
	return s.ioCount("SessionGetInputCount", sessionGetInputCountFunc)
}

// OutputCount returns the number of outputs the model declares.
func (s *Session) OutputCount() (int, error) {
	return s.ioCount("SessionGetOutputCount", sessionGetOutputCountFunc)
}

func (s *Session) ioCount(op string, countFn func(uintptr, *uintptr) uintptr) (int, error) {
	if err := s.live(); err != nil {
		return 0, err
	}

	var count uintptr
	if err := checkStatus(op, countFn(s.session, &count)); err != nil {
		return 0, &Error{Kind: KindAllocator, Op: op, Err: err}
	}
	if count == 0 {
		contractViolation(op, "model declares zero tensors")
	}
	return int(count), nil
}

// Input describes the model input at the given index.
func (s *Session) Input(index int) (InputOutputInfo, error) {
	return s.ioInfo(index, "SessionGetInputName", sessionGetInputNameFunc,
		"SessionGetInputTypeInfo", sessionGetInputTypeInfoFunc)
}

// Output describes the model output at the given index.
func (s *Session) Output(index int) (InputOutputInfo, error) {
	return s.ioInfo(index, "SessionGetOutputName", sessionGetOutputNameFunc,
		"SessionGetOutputTypeInfo", sessionGetOutputTypeInfoFunc)
}

func (s *Session) ioInfo(index int,
	nameOp string, nameFn func(uintptr, uintptr, uintptr, *uintptr) uintptr,
	typeOp string, typeFn func(uintptr, uintptr, *uintptr) uintptr,
) (InputOutputInfo, error) {
	var info InputOutputInfo
	if err := s.live(); err != nil {
		return info, err
	}
	if index < 0 {
		return info, &Error{Kind: KindMetadata, Op: nameOp, Err: fmt.Errorf("negative index %d", index)}
	}

	name, err := s.ioName(index, nameOp, nameFn)
	if err != nil {
		return info, err
	}

	var typeInfoHandle uintptr
	if err := checkStatus(typeOp, typeFn(s.session, uintptr(index), &typeInfoHandle)); err != nil {
		return info, &Error{Kind: KindMetadata, Op: typeOp, Err: err}
	}
	if typeInfoHandle == 0 {
		contractViolation(typeOp, "success status with null type info handle")
	}
	guard := newTypeInfoGuard(typeInfoHandle)
	defer guard.release()

	elementType, dims, err := readTensorTypeAndDims(typeInfoHandle)
	if err != nil {
		return info, err
	}

	return InputOutputInfo{Name: name, ElementType: elementType, Dims: dims}, nil
}

// ioName fetches a tensor name through the default allocator and copies it
// into a Go string immediately; the native buffer is returned to the
// allocator before this function returns, so no foreign-owned memory is
// retained.
func (s *Session) ioName(index int, op string, nameFn func(uintptr, uintptr, uintptr, *uintptr) uintptr) (string, error) {
	var namePtr uintptr
	if err := checkStatus(op, nameFn(s.session, uintptr(index), s.allocator, &namePtr)); err != nil {
		return "", &Error{Kind: KindMetadata, Op: op, Err: err}
	}
	if namePtr == 0 {
		contractViolation(op, "success status with null name buffer")
	}

	name := CstringToGo(namePtr)
	if allocatorFreeFunc != nil {
		allocatorFreeFunc(s.allocator, namePtr)
	}
	return name, nil
}

// readTensorTypeAndDims extracts the element type and declared dimensions
// from a type-info handle. The tensor-shape view obtained by the cast is
// owned by the type info and must not be released independently.
func readTensorTypeAndDims(typeInfoHandle uintptr) (TensorElementDataType, Dims, error) {
	var tensorInfo uintptr
	if err := checkStatus("CastTypeInfoToTensorInfo", castTypeInfoToTensorInfoFunc(typeInfoHandle, &tensorInfo)); err != nil {
		return 0, nil, &Error{Kind: KindMetadata, Op: "CastTypeInfoToTensorInfo", Err: err}
	}
	if tensorInfo == 0 {
		contractViolation("CastTypeInfoToTensorInfo", "success status with null tensor info")
	}

	var code int32
	if err := checkStatus("GetTensorElementType", getTensorElementTypeFunc(tensorInfo, &code)); err != nil {
		return 0, nil, &Error{Kind: KindMetadata, Op: "GetTensorElementType", Err: err}
	}
	elementType, err := decodeElementType(code)
	if err != nil {
		return 0, nil, err
	}

	var dimCount uintptr
	if err := checkStatus("GetDimensionsCount", getDimensionsCountFunc(tensorInfo, &dimCount)); err != nil {
		return 0, nil, &Error{Kind: KindMetadata, Op: "GetDimensionsCount", Err: err}
	}
	if dimCount == 0 {
		contractViolation("GetDimensionsCount", "tensor declares zero dimensions")
	}

	raw := make([]int64, dimCount)
	if err := checkStatus("GetDimensions", getDimensionsFunc(tensorInfo, &raw[0], dimCount)); err != nil {
		return 0, nil, &Error{Kind: KindMetadata, Op: "GetDimensions", Err: err}
	}

	dims := make(Dims, dimCount)
	for i, d := range raw {
		if d < 0 {
			dims[i] = Dim{Dynamic: true}
		} else {
			dims[i] = Dim{Size: d}
		}
	}

	return elementType, dims, nil
}

// decodeElementType maps a raw native element-type code onto the enum.
// Codes outside the known set are rejected instead of being reinterpreted.
func decodeElementType(code int32) (TensorElementDataType, error) {
	t := TensorElementDataType(code)
	switch t {
	case TensorElementDataTypeFloat,
		TensorElementDataTypeUint8,
		TensorElementDataTypeInt8,
		TensorElementDataTypeUint16,
		TensorElementDataTypeInt16,
		TensorElementDataTypeInt32,
		TensorElementDataTypeInt64,
		TensorElementDataTypeString,
		TensorElementDataTypeBool,
		TensorElementDataTypeFloat16,
		TensorElementDataTypeDouble,
		TensorElementDataTypeUint32,
		TensorElementDataTypeUint64,
		TensorElementDataTypeComplex64,
		TensorElementDataTypeComplex128,
		TensorElementDataTypeBFloat16:
		return t, nil
	}
	return TensorElementDataTypeUndefined, &Error{
		Kind: KindMetadata,
		Op:   "GetTensorElementType",
		Err:  fmt.Errorf("unrecognized element type code %d", code),
	}
}

// ReadInputs describes every declared model input, failing fast on the
// first introspection error.
func (s *Session) ReadInputs() ([]InputOutputInfo, error) {
	count, err := s.InputCount()
	if err != nil {
		return nil, err
	}

	inputs := make([]InputOutputInfo, 0, count)
	for i := 0; i < count; i++ {
		info, err := s.Input(i)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, info)
	}
	return inputs, nil
}

// ReadOutputs describes every declared model output, failing fast on the
// first introspection error.
func (s *Session) ReadOutputs() ([]InputOutputInfo, error) {
	count, err := s.OutputCount()
	if err != nil {
		return nil, err
	}

	outputs := make([]InputOutputInfo, 0, count)
	for i := 0; i < count; i++ {
		info, err := s.Output(i)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, info)
	}
	return outputs, nil
}

func (s *Session) live() error {
	if s == nil || s.destroyed || s.session == 0 {
		return &Error{Kind: KindSession, Op: "Session", Err: fmt.Errorf("session is destroyed")}
	}
	return nil
}
