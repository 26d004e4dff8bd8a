package ort

import (
	"fmt"
	"runtime"
	"sync"
)

// Process-wide native engine state. The native initialization and teardown
// calls are not documented as safe under concurrent invocation, so every
// mutation of this block happens under mu.
var (
	mu       sync.Mutex
	refCount int
	ortLib   uintptr
	ortAPI   *OrtApi
	ortEnv   uintptr
	envName  string
	libPath  string
	logLevel LoggingLevel = LoggingLevelWarning
)

// Environment is a reference onto the shared native engine environment.
// The first acquisition loads the shared library and creates the native
// context; later acquisitions share it. Each reference must be released
// exactly once; the native context is torn down when the last reference
// drops.
type Environment struct {
	name     string
	released bool
}

// SetSharedLibraryPath sets the path to the ONNX Runtime shared library.
// It must be called before the first environment acquisition and cannot be
// changed while the environment is live.
func SetSharedLibraryPath(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if refCount > 0 && libPath != path {
		return fmt.Errorf("cannot change library path after environment is initialized")
	}
	libPath = path
	return nil
}

// SetLogLevel sets the native logging level used when the environment is
// created. It cannot be changed while the environment is live.
func SetLogLevel(level LoggingLevel) error {
	mu.Lock()
	defer mu.Unlock()

	if refCount > 0 && logLevel != level {
		return fmt.Errorf("cannot change log level after environment is initialized")
	}
	logLevel = level
	return nil
}

// IsInitialized reports whether the shared environment is currently live.
func IsInitialized() bool {
	mu.Lock()
	defer mu.Unlock()
	return refCount > 0
}

// GetVersionString returns the native runtime's version string, or a
// placeholder when no environment has been initialized.
func GetVersionString() string {
	mu.Lock()
	fn := getVersionStringFunc
	mu.Unlock()

	if fn == nil {
		return "0.0.0-dev"
	}
	return CstringToGo(fn())
}

// AcquireEnvironment returns a reference to the named shared environment,
// creating the native context on first acquisition. The name tags native
// log output; when the environment already exists the existing name is kept
// and the requested one is ignored.
func AcquireEnvironment(name string) (*Environment, error) {
	mu.Lock()
	defer mu.Unlock()

	if refCount > 0 {
		refCount++
		return &Environment{name: envName}, nil
	}

	if libPath == "" {
		return nil, &Error{
			Kind: KindEnvironment,
			Op:   "AcquireEnvironment",
			Err:  fmt.Errorf("library path not set, call SetSharedLibraryPath first"),
		}
	}

	lib, err := loadLibrary(libPath)
	if err != nil || lib == 0 {
		return nil, &Error{
			Kind: KindEnvironment,
			Op:   "AcquireEnvironment",
			Path: libPath,
			Err:  fmt.Errorf("failed to load shared library: %w", err),
		}
	}

	api, err := resolveAPI(lib)
	if err != nil {
		_ = closeLibrary(lib)
		resetAPIFuncs()
		return nil, &Error{Kind: KindEnvironment, Op: "AcquireEnvironment", Err: err}
	}

	nameBytes, namePtr := GoToCstring(name)
	var env uintptr
	status := createEnvFunc(int32(logLevel), namePtr, &env)
	runtime.KeepAlive(nameBytes)
	if err := checkStatus("CreateEnv", status); err != nil {
		_ = closeLibrary(lib)
		resetAPIFuncs()
		return nil, &Error{Kind: KindEnvironment, Op: "CreateEnv", Err: err}
	}
	if env == 0 {
		contractViolation("CreateEnv", "success status with null environment handle")
	}

	ortLib = lib
	ortAPI = api
	ortEnv = env
	envName = name
	refCount = 1

	return &Environment{name: name}, nil
}

// Release drops this reference. The native context is destroyed and the
// shared library unloaded when the last reference is released. Releasing
// the same reference twice is an error; the shared state is untouched.
func (e *Environment) Release() error {
	mu.Lock()
	defer mu.Unlock()

	if e.released {
		return fmt.Errorf("environment reference already released")
	}
	e.released = true

	return releaseEnvRefLocked()
}

// Name returns the tag the environment was created with.
func (e *Environment) Name() string {
	return e.name
}

// acquireEnvRefLocked bumps the refcount on behalf of an internal owner
// (a live Session). Caller must hold mu and the environment must be live.
func acquireEnvRefLocked() {
	if refCount == 0 {
		contractViolation("acquireEnvRef", "no live environment to reference")
	}
	refCount++
}

// releaseEnvRefLocked drops one reference and tears the native context down
// at zero. Caller must hold mu.
func releaseEnvRefLocked() error {
	if refCount == 0 {
		return fmt.Errorf("environment is not initialized")
	}

	refCount--
	if refCount > 0 {
		return nil
	}

	if releaseEnvFunc != nil && ortEnv != 0 {
		releaseEnvFunc(ortEnv)
	}
	ortEnv = 0
	ortAPI = nil
	envName = ""

	lib := ortLib
	ortLib = 0
	resetAPIFuncs()

	if lib != 0 {
		if err := closeLibrary(lib); err != nil {
			return fmt.Errorf("failed to unload shared library: %w", err)
		}
	}
	return nil
}
