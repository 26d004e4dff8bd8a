package ort

import (
	"fmt"
	"strings"
	"unsafe"
)

// Shape is an ordered sequence of concrete, non-negative dimension sizes.
type Shape []int64

// NewShape creates a new shape from dimensions.
func NewShape(dims ...int64) Shape {
	return Shape(dims)
}

// Dim is one declared tensor dimension: either a concrete non-negative size
// or a dynamic extent unknown until inference time. The native ABI encodes
// dynamic dimensions as negative sizes; this type keeps the distinction
// explicit instead of leaking the sentinel.
type Dim struct {
	Size    int64
	Dynamic bool
}

func (d Dim) String() string {
	if d.Dynamic {
		return "dyn"
	}
	return fmt.Sprintf("%d", d.Size)
}

// Dims is the declared dimension sequence of a model input or output.
type Dims []Dim

func (d Dims) String() string {
	parts := make([]string, len(d))
	for i, dim := range d {
		parts[i] = dim.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// HasDynamic reports whether any dimension is dynamic.
func (d Dims) HasDynamic() bool {
	for _, dim := range d {
		if dim.Dynamic {
			return true
		}
	}
	return false
}

func cloneShape(shape Shape) Shape {
	if len(shape) == 0 {
		// Keep scalar tensors as non-nil empty shape (rank 0), not nil.
		return Shape{}
	}

	shapeCopy := make(Shape, len(shape))
	copy(shapeCopy, shape)
	return shapeCopy
}

func shapeElementCount(shape Shape) (int, error) {
	maxInt := int(^uint(0) >> 1)

	count := 1
	for i, dim := range shape {
		if dim < 0 {
			return 0, fmt.Errorf("invalid shape dimension at index %d: %d (must be >= 0)", i, dim)
		}

		if dim == 0 {
			count = 0
			continue
		}

		if count == 0 {
			continue
		}

		if dim > int64(maxInt) {
			return 0, fmt.Errorf("shape dimension at index %d is too large: %d", i, dim)
		}

		dimInt := int(dim)
		if count > maxInt/dimInt {
			return 0, fmt.Errorf("shape %v exceeds maximum supported element count", shape)
		}

		count *= dimInt
	}

	return count, nil
}

// ShapeElementCount returns the total element count for a shape.
// Dimensions must be non-negative; zero dimensions produce a count of zero.
func ShapeElementCount(shape Shape) (int, error) {
	return shapeElementCount(shape)
}

func shapePtr(shape Shape) *int64 {
	if len(shape) == 0 {
		return nil
	}
	return unsafe.SliceData(shape)
}
