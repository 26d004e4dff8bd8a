package ort

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Value is an input value passed to inference. Implemented by Tensor.
type Value interface {
	Destroy() error
	valueHandle() uintptr
}

// Tensor is an input tensor whose data is owned by the host. The native
// value created over it aliases the Go backing array, which stays pinned
// until Destroy.
type Tensor[T TensorData] struct {
	shape  Shape
	data   []T
	handle uintptr
	pinner *runtime.Pinner
}

func (t *Tensor[T]) valueHandle() uintptr {
	if t == nil {
		return 0
	}
	return t.handle
}

// NewTensor creates a tensor with the given shape over the caller's data.
// The data length must equal the product of the shape's dimensions.
// String tensors are not supported on the input path.
func NewTensor[T TensorData](shape Shape, data []T) (*Tensor[T], error) {
	elementType := elementTypeOf[T]()
	if elementType == TensorElementDataTypeString {
		return nil, &Error{
			Kind: KindConfiguration,
			Op:   "NewTensor",
			Err:  fmt.Errorf("string input tensors: %w", ErrNotSupported),
		}
	}

	shapeCopy := cloneShape(shape)
	elementCount, err := shapeElementCount(shapeCopy)
	if err != nil {
		return nil, &Error{Kind: KindConfiguration, Op: "NewTensor", Err: err}
	}
	if len(data) != elementCount {
		return nil, &Error{
			Kind: KindConfiguration,
			Op:   "NewTensor",
			Err:  fmt.Errorf("data length mismatch: got %d elements, expected %d for shape %v", len(data), elementCount, shapeCopy),
		}
	}

	return newTensorFromData(shapeCopy, data, elementType)
}

// NewEmptyTensor creates a zero-filled tensor with the given shape.
func NewEmptyTensor[T TensorData](shape Shape) (*Tensor[T], error) {
	shapeCopy := cloneShape(shape)
	elementCount, err := shapeElementCount(shapeCopy)
	if err != nil {
		return nil, &Error{Kind: KindConfiguration, Op: "NewEmptyTensor", Err: err}
	}
	return NewTensor(shapeCopy, make([]T, elementCount))
}

func newTensorFromData[T TensorData](shape Shape, data []T, elementType TensorElementDataType) (*Tensor[T], error) {
	var zero T
	dataBytes := uintptr(len(data)) * unsafe.Sizeof(zero)

	mu.Lock()
	initialized := createMemoryInfoFunc != nil && createTensorWithDataAsOrtValueFunc != nil
	mu.Unlock()
	if !initialized {
		return nil, &Error{
			Kind: KindEnvironment,
			Op:   "NewTensor",
			Err:  fmt.Errorf("environment is not initialized"),
		}
	}

	nameBytes, namePtr := GoToCstring("Cpu")
	var memInfoHandle uintptr
	status := createMemoryInfoFunc(namePtr, int32(AllocatorTypeArena), 0, int32(MemTypeCPU), &memInfoHandle)
	runtime.KeepAlive(nameBytes)
	if err := checkStatus("CreateMemoryInfo", status); err != nil {
		return nil, &Error{Kind: KindAllocator, Op: "CreateMemoryInfo", Err: err}
	}
	if memInfoHandle == 0 {
		contractViolation("CreateMemoryInfo", "success status with null memory info handle")
	}
	memGuard := newMemoryInfoGuard(memInfoHandle)
	defer memGuard.release()

	var dataPtr uintptr
	var pinner *runtime.Pinner
	if len(data) > 0 {
		pinner = &runtime.Pinner{}
		pinner.Pin(unsafe.SliceData(data))
		// #nosec G103 -- the backing array is pinned for the value's lifetime.
		dataPtr = uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	}

	var valueHandle uintptr
	status = createTensorWithDataAsOrtValueFunc(
		memInfoHandle, dataPtr, dataBytes,
		shapePtr(shape), uintptr(len(shape)),
		int32(elementType), &valueHandle,
	)
	// Shape dimensions are read synchronously during the call.
	runtime.KeepAlive(shape)
	if err := checkStatus("CreateTensorWithDataAsOrtValue", status); err != nil {
		if pinner != nil {
			pinner.Unpin()
		}
		return nil, &Error{Kind: KindInference, Op: "CreateTensorWithDataAsOrtValue", Err: err}
	}
	if valueHandle == 0 {
		contractViolation("CreateTensorWithDataAsOrtValue", "success status with null value handle")
	}

	tensor := &Tensor[T]{
		shape:  shape,
		data:   data,
		handle: valueHandle,
		pinner: pinner,
	}

	// Safety net against leaking the native value if Destroy is skipped.
	runtime.SetFinalizer(tensor, func(t *Tensor[T]) {
		_ = t.Destroy()
	})

	return tensor, nil
}

// Data returns the tensor data. After Destroy it returns nil.
func (t *Tensor[T]) Data() []T {
	if t == nil {
		return nil
	}
	return t.data
}

// Shape returns the tensor shape.
func (t *Tensor[T]) Shape() Shape {
	if t == nil {
		return nil
	}
	return t.shape
}

// Destroy releases the native value and unpins the backing array.
// Idempotent; safe on a nil receiver.
func (t *Tensor[T]) Destroy() error {
	if t == nil {
		return nil
	}

	handle := t.handle
	pinner := t.pinner
	t.handle = 0
	t.data = nil
	t.shape = nil
	t.pinner = nil
	runtime.SetFinalizer(t, nil)

	if handle != 0 && releaseValueFunc != nil {
		releaseValueFunc(handle)
	}
	if pinner != nil {
		pinner.Unpin()
	}

	return nil
}
