package ort

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Registered native entry points. These are populated once per environment
// initialization under mu and reset to nil on teardown. Tests substitute
// fakes here without loading a shared library.
var (
	getVersionStringFunc func() uintptr

	getErrorCodeFunc    func(uintptr) int32
	getErrorMessageFunc func(uintptr) uintptr
	releaseStatusFunc   func(uintptr)

	createEnvFunc  func(int32, uintptr, *uintptr) uintptr
	releaseEnvFunc func(uintptr)

	createSessionOptionsFunc             func(*uintptr) uintptr
	setIntraOpNumThreadsFunc             func(uintptr, int32) uintptr
	setSessionGraphOptimizationLevelFunc func(uintptr, uint32) uintptr
	releaseSessionOptionsFunc            func(uintptr)

	createSessionFunc  func(uintptr, uintptr, uintptr, *uintptr) uintptr
	runSessionFunc     func(uintptr, uintptr, *uintptr, *uintptr, uintptr, *uintptr, uintptr, *uintptr) uintptr
	releaseSessionFunc func(uintptr)

	getAllocatorWithDefaultOptionsFunc func(*uintptr) uintptr
	allocatorFreeFunc                  func(uintptr, uintptr)

	sessionGetInputCountFunc     func(uintptr, *uintptr) uintptr
	sessionGetOutputCountFunc    func(uintptr, *uintptr) uintptr
	sessionGetInputNameFunc      func(uintptr, uintptr, uintptr, *uintptr) uintptr
	sessionGetOutputNameFunc     func(uintptr, uintptr, uintptr, *uintptr) uintptr
	sessionGetInputTypeInfoFunc  func(uintptr, uintptr, *uintptr) uintptr
	sessionGetOutputTypeInfoFunc func(uintptr, uintptr, *uintptr) uintptr

	castTypeInfoToTensorInfoFunc func(uintptr, *uintptr) uintptr
	getTensorElementTypeFunc     func(uintptr, *int32) uintptr
	getDimensionsCountFunc       func(uintptr, *uintptr) uintptr
	getDimensionsFunc            func(uintptr, *int64, uintptr) uintptr
	releaseTypeInfoFunc          func(uintptr)

	createMemoryInfoFunc               func(uintptr, int32, int32, int32, *uintptr) uintptr
	releaseMemoryInfoFunc              func(uintptr)
	createTensorWithDataAsOrtValueFunc func(uintptr, uintptr, uintptr, *int64, uintptr, int32, *uintptr) uintptr
	releaseValueFunc                   func(uintptr)

	getTensorTypeAndShapeFunc         func(uintptr, *uintptr) uintptr
	releaseTensorTypeAndShapeInfoFunc func(uintptr)
	getTensorMutableDataFunc          func(uintptr, *uintptr) uintptr
	getStringTensorDataLengthFunc     func(uintptr, *uintptr) uintptr
	getStringTensorContentFunc        func(uintptr, uintptr, uintptr, *uintptr, uintptr) uintptr
)

// resolveAPI loads the versioned function table from an opened shared
// library handle and registers the entry points this package uses.
func resolveAPI(libHandle uintptr) (*OrtApi, error) {
	getAPIBaseAddr, err := getSymbol(libHandle, "OrtGetApiBase")
	if err != nil || getAPIBaseAddr == 0 {
		return nil, fmt.Errorf("failed to resolve OrtGetApiBase: %w", err)
	}

	var getAPIBase func() *OrtApiBase
	purego.RegisterFunc(&getAPIBase, getAPIBaseAddr)

	apiBase := getAPIBase()
	if apiBase == nil {
		return nil, fmt.Errorf("OrtGetApiBase returned nil")
	}

	var getAPI func(uint32) unsafe.Pointer
	purego.RegisterFunc(&getAPI, apiBase.GetApi)

	apiPtr := getAPI(ortAPIVersion)
	if apiPtr == nil {
		return nil, fmt.Errorf("native runtime does not provide API version %d", ortAPIVersion)
	}

	purego.RegisterFunc(&getVersionStringFunc, apiBase.GetVersionString)

	api := (*OrtApi)(apiPtr)
	registerAPIFuncs(api)
	return api, nil
}

func registerAPIFuncs(api *OrtApi) {
	purego.RegisterFunc(&getErrorCodeFunc, api.GetErrorCode)
	purego.RegisterFunc(&getErrorMessageFunc, api.GetErrorMessage)
	purego.RegisterFunc(&releaseStatusFunc, api.ReleaseStatus)

	purego.RegisterFunc(&createEnvFunc, api.CreateEnv)
	purego.RegisterFunc(&releaseEnvFunc, api.ReleaseEnv)

	purego.RegisterFunc(&createSessionOptionsFunc, api.CreateSessionOptions)
	purego.RegisterFunc(&setIntraOpNumThreadsFunc, api.SetIntraOpNumThreads)
	purego.RegisterFunc(&setSessionGraphOptimizationLevelFunc, api.SetSessionGraphOptimizationLevel)
	purego.RegisterFunc(&releaseSessionOptionsFunc, api.ReleaseSessionOptions)

	purego.RegisterFunc(&createSessionFunc, api.CreateSession)
	purego.RegisterFunc(&runSessionFunc, api.Run)
	purego.RegisterFunc(&releaseSessionFunc, api.ReleaseSession)

	purego.RegisterFunc(&getAllocatorWithDefaultOptionsFunc, api.GetAllocatorWithDefaultOptions)
	purego.RegisterFunc(&allocatorFreeFunc, api.AllocatorFree)

	purego.RegisterFunc(&sessionGetInputCountFunc, api.SessionGetInputCount)
	purego.RegisterFunc(&sessionGetOutputCountFunc, api.SessionGetOutputCount)
	purego.RegisterFunc(&sessionGetInputNameFunc, api.SessionGetInputName)
	purego.RegisterFunc(&sessionGetOutputNameFunc, api.SessionGetOutputName)
	purego.RegisterFunc(&sessionGetInputTypeInfoFunc, api.SessionGetInputTypeInfo)
	purego.RegisterFunc(&sessionGetOutputTypeInfoFunc, api.SessionGetOutputTypeInfo)

	purego.RegisterFunc(&castTypeInfoToTensorInfoFunc, api.CastTypeInfoToTensorInfo)
	purego.RegisterFunc(&getTensorElementTypeFunc, api.GetTensorElementType)
	purego.RegisterFunc(&getDimensionsCountFunc, api.GetDimensionsCount)
	purego.RegisterFunc(&getDimensionsFunc, api.GetDimensions)
	purego.RegisterFunc(&releaseTypeInfoFunc, api.ReleaseTypeInfo)

	purego.RegisterFunc(&createMemoryInfoFunc, api.CreateMemoryInfo)
	purego.RegisterFunc(&releaseMemoryInfoFunc, api.ReleaseMemoryInfo)
	purego.RegisterFunc(&createTensorWithDataAsOrtValueFunc, api.CreateTensorWithDataAsOrtValue)
	purego.RegisterFunc(&releaseValueFunc, api.ReleaseValue)

	purego.RegisterFunc(&getTensorTypeAndShapeFunc, api.GetTensorTypeAndShape)
	purego.RegisterFunc(&releaseTensorTypeAndShapeInfoFunc, api.ReleaseTensorTypeAndShapeInfo)
	purego.RegisterFunc(&getTensorMutableDataFunc, api.GetTensorMutableData)
	purego.RegisterFunc(&getStringTensorDataLengthFunc, api.GetStringTensorDataLength)
	purego.RegisterFunc(&getStringTensorContentFunc, api.GetStringTensorContent)
}

// resetAPIFuncs clears every registered entry point. Called on environment
// teardown so stale pointers into an unloaded library cannot be invoked.
func resetAPIFuncs() {
	getVersionStringFunc = nil
	getErrorCodeFunc = nil
	getErrorMessageFunc = nil
	releaseStatusFunc = nil
	createEnvFunc = nil
	releaseEnvFunc = nil
	createSessionOptionsFunc = nil
	setIntraOpNumThreadsFunc = nil
	setSessionGraphOptimizationLevelFunc = nil
	releaseSessionOptionsFunc = nil
	createSessionFunc = nil
	runSessionFunc = nil
	releaseSessionFunc = nil
	getAllocatorWithDefaultOptionsFunc = nil
	allocatorFreeFunc = nil
	sessionGetInputCountFunc = nil
	sessionGetOutputCountFunc = nil
	sessionGetInputNameFunc = nil
	sessionGetOutputNameFunc = nil
	sessionGetInputTypeInfoFunc = nil
	sessionGetOutputTypeInfoFunc = nil
	castTypeInfoToTensorInfoFunc = nil
	getTensorElementTypeFunc = nil
	getDimensionsCountFunc = nil
	getDimensionsFunc = nil
	releaseTypeInfoFunc = nil
	createMemoryInfoFunc = nil
	releaseMemoryInfoFunc = nil
	createTensorWithDataAsOrtValueFunc = nil
	releaseValueFunc = nil
	getTensorTypeAndShapeFunc = nil
	releaseTensorTypeAndShapeInfoFunc = nil
	getTensorMutableDataFunc = nil
	getStringTensorDataLengthFunc = nil
	getStringTensorContentFunc = nil
}
