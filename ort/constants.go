package ort

const (
	// ortAPIVersion is the API version requested from OrtGetApiBase. The
	// native function table is append-only, so any runtime at least this
	// new can serve the prefix this package reads.
	ortAPIVersion = 22
)

// LoggingLevel represents the logging verbosity level of the native runtime.
type LoggingLevel int32

const (
	LoggingLevelVerbose LoggingLevel = iota
	LoggingLevelInfo
	LoggingLevelWarning
	LoggingLevelError
	LoggingLevelFatal
)

// ErrorCode represents ONNX Runtime native error codes.
type ErrorCode int32

const (
	ErrorCodeOK ErrorCode = iota
	ErrorCodeFail
	ErrorCodeInvalidArgument
	ErrorCodeNoSuchFile
	ErrorCodeNoModel
	ErrorCodeEngineError
	ErrorCodeRuntimeException
	ErrorCodeInvalidProtobuf
	ErrorCodeModelLoaded
	ErrorCodeNotImplemented
	ErrorCodeInvalidGraph
	ErrorCodeEPFail
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeOK:
		return "ok"
	case ErrorCodeFail:
		return "fail"
	case ErrorCodeInvalidArgument:
		return "invalid argument"
	case ErrorCodeNoSuchFile:
		return "no such file"
	case ErrorCodeNoModel:
		return "no model"
	case ErrorCodeEngineError:
		return "engine error"
	case ErrorCodeRuntimeException:
		return "runtime exception"
	case ErrorCodeInvalidProtobuf:
		return "invalid protobuf"
	case ErrorCodeModelLoaded:
		return "model already loaded"
	case ErrorCodeNotImplemented:
		return "not implemented"
	case ErrorCodeInvalidGraph:
		return "invalid graph"
	case ErrorCodeEPFail:
		return "execution provider failure"
	default:
		return "unknown error code"
	}
}

// TensorElementDataType represents the data type of tensor elements. The
// numeric values match ONNXTensorElementDataType in the native ABI.
type TensorElementDataType int32

const (
	TensorElementDataTypeUndefined TensorElementDataType = iota
	TensorElementDataTypeFloat
	TensorElementDataTypeUint8
	TensorElementDataTypeInt8
	TensorElementDataTypeUint16
	TensorElementDataTypeInt16
	TensorElementDataTypeInt32
	TensorElementDataTypeInt64
	TensorElementDataTypeString
	TensorElementDataTypeBool
	TensorElementDataTypeFloat16
	TensorElementDataTypeDouble
	TensorElementDataTypeUint32
	TensorElementDataTypeUint64
	TensorElementDataTypeComplex64
	TensorElementDataTypeComplex128
	TensorElementDataTypeBFloat16
)

func (t TensorElementDataType) String() string {
	switch t {
	case TensorElementDataTypeUndefined:
		return "undefined"
	case TensorElementDataTypeFloat:
		return "float32"
	case TensorElementDataTypeUint8:
		return "uint8"
	case TensorElementDataTypeInt8:
		return "int8"
	case TensorElementDataTypeUint16:
		return "uint16"
	case TensorElementDataTypeInt16:
		return "int16"
	case TensorElementDataTypeInt32:
		return "int32"
	case TensorElementDataTypeInt64:
		return "int64"
	case TensorElementDataTypeString:
		return "string"
	case TensorElementDataTypeBool:
		return "bool"
	case TensorElementDataTypeFloat16:
		return "float16"
	case TensorElementDataTypeDouble:
		return "float64"
	case TensorElementDataTypeUint32:
		return "uint32"
	case TensorElementDataTypeUint64:
		return "uint64"
	case TensorElementDataTypeComplex64:
		return "complex64"
	case TensorElementDataTypeComplex128:
		return "complex128"
	case TensorElementDataTypeBFloat16:
		return "bfloat16"
	default:
		return "unrecognized"
	}
}

// AllocatorType represents the type of a native memory allocator.
type AllocatorType int32

const (
	AllocatorTypeInvalid AllocatorType = -1
	AllocatorTypeDevice  AllocatorType = 0
	AllocatorTypeArena   AllocatorType = 1
)

// MemType represents memory types for allocated memory.
type MemType int32

const (
	MemTypeCPUInput  MemType = -2
	MemTypeCPUOutput MemType = -1
	MemTypeCPU       MemType = MemTypeCPUOutput
	MemTypeDefault   MemType = 0
)

// GraphOptimizationLevel represents the level of graph optimizations applied
// when a session is built. Values are the native ordinals, ordered from
// disable-all to enable-all.
type GraphOptimizationLevel uint32

const (
	GraphOptimizationLevelDisableAll     GraphOptimizationLevel = 0
	GraphOptimizationLevelEnableBasic    GraphOptimizationLevel = 1
	GraphOptimizationLevelEnableExtended GraphOptimizationLevel = 2
	GraphOptimizationLevelEnableAll      GraphOptimizationLevel = 99
)
