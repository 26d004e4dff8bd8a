package ort

import (
	"fmt"
	"unsafe"
)

// TensorData constrains the element types an output tensor can be
// extracted as. All but string permit a zero-copy view over native memory;
// string requires host-side reconstruction.
type TensorData interface {
	float32 | float64 | int8 | uint8 | int16 | uint16 | int32 | uint32 |
		int64 | uint64 | bool | string
}

// elementTypeOf returns the native element type associated with T.
func elementTypeOf[T TensorData]() TensorElementDataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return TensorElementDataTypeFloat
	case float64:
		return TensorElementDataTypeDouble
	case int8:
		return TensorElementDataTypeInt8
	case uint8:
		return TensorElementDataTypeUint8
	case int16:
		return TensorElementDataTypeInt16
	case uint16:
		return TensorElementDataTypeUint16
	case int32:
		return TensorElementDataTypeInt32
	case uint32:
		return TensorElementDataTypeUint32
	case int64:
		return TensorElementDataTypeInt64
	case uint64:
		return TensorElementDataTypeUint64
	case bool:
		return TensorElementDataTypeBool
	case string:
		return TensorElementDataTypeString
	default:
		return TensorElementDataTypeUndefined
	}
}

// DynamicOutput wraps one raw inference output together with its declared
// element type and shape. Different outputs of one model can have different
// types, so callers query ElementType and extract the matching typed view
// with Extract.
//
// The output owns its native value handle through a release-once guard;
// views produced by Extract stay valid until Destroy.
type DynamicOutput struct {
	value        *valueGuard
	elementType  TensorElementDataType
	shape        Shape
	elementCount int
}

// newDynamicOutput takes ownership of a native value handle produced by
// inference and introspects its element type and concrete shape. On error
// the handle is released before returning.
func newDynamicOutput(valueHandle uintptr) (*DynamicOutput, error) {
	guard := newValueGuard(valueHandle)
	success := false
	defer func() {
		if !success {
			guard.release()
		}
	}()

	var shapeInfoHandle uintptr
	if err := checkStatus("GetTensorTypeAndShape", getTensorTypeAndShapeFunc(valueHandle, &shapeInfoHandle)); err != nil {
		return nil, &Error{Kind: KindMetadata, Op: "GetTensorTypeAndShape", Err: err}
	}
	if shapeInfoHandle == 0 {
		contractViolation("GetTensorTypeAndShape", "success status with null shape info handle")
	}
	shapeGuard := newShapeInfoGuard(shapeInfoHandle)
	defer shapeGuard.release()

	var code int32
	if err := checkStatus("GetTensorElementType", getTensorElementTypeFunc(shapeInfoHandle, &code)); err != nil {
		return nil, &Error{Kind: KindMetadata, Op: "GetTensorElementType", Err: err}
	}
	elementType, err := decodeElementType(code)
	if err != nil {
		return nil, err
	}

	var dimCount uintptr
	if err := checkStatus("GetDimensionsCount", getDimensionsCountFunc(shapeInfoHandle, &dimCount)); err != nil {
		return nil, &Error{Kind: KindMetadata, Op: "GetDimensionsCount", Err: err}
	}

	shape := make(Shape, dimCount)
	if dimCount > 0 {
		if err := checkStatus("GetDimensions", getDimensionsFunc(shapeInfoHandle, &shape[0], dimCount)); err != nil {
			return nil, &Error{Kind: KindMetadata, Op: "GetDimensions", Err: err}
		}
	}

	// Inference outputs have concrete extents; a dynamic marker here means
	// the runtime broke its own contract.
	count, err := shapeElementCount(shape)
	if err != nil {
		return nil, &Error{Kind: KindMetadata, Op: "GetDimensions", Err: err}
	}

	success = true
	return &DynamicOutput{
		value:        guard,
		elementType:  elementType,
		shape:        shape,
		elementCount: count,
	}, nil
}

// ElementType returns the output's declared element type.
func (o *DynamicOutput) ElementType() TensorElementDataType {
	return o.elementType
}

// Shape returns a copy of the output's concrete shape.
func (o *DynamicOutput) Shape() Shape {
	return cloneShape(o.shape)
}

// ElementCount returns the product of the shape's dimensions.
func (o *DynamicOutput) ElementCount() int {
	return o.elementCount
}

// Destroy releases the native value handle. Views previously extracted
// from this output must not be read afterwards. Idempotent.
func (o *DynamicOutput) Destroy() error {
	if o == nil || o.value == nil {
		return nil
	}
	o.value.release()
	return nil
}

// typedTensorData is a tagged union over one extracted output: either a
// zero-copy view aliasing the native buffer, or an owned host-side
// reconstruction for element types without a fixed stride.
type typedTensorData[T TensorData] struct {
	view  []T
	owned []T
}

func (d typedTensorData[T]) slice() []T {
	if d.owned != nil {
		return d.owned
	}
	// Re-slicing a view is a pure re-slice of the same native memory.
	return d.view
}

// TensorView is the caller-facing typed view over one output. It cannot be
// detached from the DynamicOutput it was extracted from: the owner
// reference keeps the native value handle reachable for as long as the
// view is, so the "view" variant never dangles while a TensorView is live.
type TensorView[T TensorData] struct {
	owner *DynamicOutput
	data  typedTensorData[T]
	shape Shape
}

// Data returns the elements in row-major order. For numeric element types
// this aliases native memory owned by the originating DynamicOutput and
// must not be read after that output is destroyed; for string element
// types it is host-owned.
func (v *TensorView[T]) Data() []T {
	return v.data.slice()
}

// Shape returns a copy of the view's shape.
func (v *TensorView[T]) Shape() Shape {
	return cloneShape(v.shape)
}

// Extract builds a typed view of the output if T matches the declared
// element type, or a *TypeMismatchError carrying both types if not. The
// call never consumes or mutates the output: extraction may be retried
// with a different candidate type, and repeating it with the same type
// yields equivalent data.
func Extract[T TensorData](o *DynamicOutput) (*TensorView[T], error) {
	requested := elementTypeOf[T]()
	if o.elementType != requested {
		return nil, &TypeMismatchError{Actual: o.elementType, Requested: requested}
	}
	if o.value == nil || o.value.handle == 0 {
		return nil, &Error{Kind: KindInference, Op: "Extract", Err: fmt.Errorf("output value is destroyed")}
	}

	data, err := extractTypedData[T](o)
	if err != nil {
		return nil, err
	}

	return &TensorView[T]{owner: o, data: data, shape: cloneShape(o.shape)}, nil
}

func extractTypedData[T TensorData](o *DynamicOutput) (typedTensorData[T], error) {
	if elementTypeOf[T]() == TensorElementDataTypeString {
		strings, err := readStringTensor(o.value.handle, o.elementCount)
		if err != nil {
			return typedTensorData[T]{}, err
		}
		// T is string on this branch.
		return typedTensorData[T]{owned: any(strings).([]T)}, nil
	}

	if o.elementCount == 0 {
		return typedTensorData[T]{view: []T{}}, nil
	}

	var dataPtr uintptr
	if err := checkStatus("GetTensorMutableData", getTensorMutableDataFunc(o.value.handle, &dataPtr)); err != nil {
		return typedTensorData[T]{}, &Error{Kind: KindInference, Op: "GetTensorMutableData", Err: err}
	}
	if dataPtr == 0 {
		contractViolation("GetTensorMutableData", "success status with null data pointer")
	}

	// #nosec G103 -- zero-copy view over the native buffer; validity is
	// bound to the owning DynamicOutput's value handle.
	view := unsafe.Slice((*T)(unsafe.Pointer(dataPtr)), o.elementCount)
	return typedTensorData[T]{view: view}, nil
}

// readStringTensor materializes a host-owned copy of a string tensor. The
// native representation is a flat byte buffer plus per-element offsets, not
// a fixed-stride array, so this copy is deliberate rather than an
// optimization miss.
func readStringTensor(valueHandle uintptr, elementCount int) ([]string, error) {
	if elementCount == 0 {
		return []string{}, nil
	}

	var totalLen uintptr
	if err := checkStatus("GetStringTensorDataLength", getStringTensorDataLengthFunc(valueHandle, &totalLen)); err != nil {
		return nil, &Error{Kind: KindInference, Op: "GetStringTensorDataLength", Err: err}
	}

	buffer := make([]byte, totalLen+1) // +1 keeps the base pointer valid for an all-empty tensor
	offsets := make([]uintptr, elementCount)
	// #nosec G103 -- out-buffers for the native copy call.
	status := getStringTensorContentFunc(
		valueHandle,
		uintptr(unsafe.Pointer(&buffer[0])),
		totalLen,
		&offsets[0],
		uintptr(elementCount),
	)
	if err := checkStatus("GetStringTensorContent", status); err != nil {
		return nil, &Error{Kind: KindInference, Op: "GetStringTensorContent", Err: err}
	}

	strings := make([]string, elementCount)
	for i := range strings {
		start := offsets[i]
		end := totalLen
		if i+1 < elementCount {
			end = offsets[i+1]
		}
		if start > end || end > totalLen {
			return nil, &Error{
				Kind: KindInference,
				Op:   "GetStringTensorContent",
				Err:  fmt.Errorf("inconsistent string offsets: element %d spans [%d,%d) of %d", i, start, end, totalLen),
			}
		}
		strings[i] = string(buffer[start:end])
	}
	return strings, nil
}
