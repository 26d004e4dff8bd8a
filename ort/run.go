package ort

import (
	"errors"
	"fmt"
	"runtime"
)

// Run executes inference. Inputs are matched to inputNames by position;
// one native value is requested per output name and the runtime allocates
// the output buffers. Each returned DynamicOutput owns its value handle
// and must be destroyed by the caller once extracted views are no longer
// needed.
func (s *Session) Run(inputNames []string, inputs []Value, outputNames []string) ([]*DynamicOutput, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	if len(inputNames) != len(inputs) {
		return nil, &Error{
			Kind: KindInference,
			Op:   "Run",
			Err:  fmt.Errorf("got %d input names for %d input values", len(inputNames), len(inputs)),
		}
	}
	if len(inputNames) == 0 || len(outputNames) == 0 {
		return nil, &Error{
			Kind: KindInference,
			Op:   "Run",
			Err:  fmt.Errorf("inference requires at least one input and one output"),
		}
	}

	inputNamePtrs, inputNameHold := cstringArray(inputNames)
	outputNamePtrs, outputNameHold := cstringArray(outputNames)

	inputHandles := make([]uintptr, len(inputs))
	for i, value := range inputs {
		if value == nil {
			return nil, &Error{Kind: KindInference, Op: "Run", Err: fmt.Errorf("input %q is nil", inputNames[i])}
		}
		handle := value.valueHandle()
		if handle == 0 {
			return nil, &Error{Kind: KindInference, Op: "Run", Err: fmt.Errorf("input %q is destroyed", inputNames[i])}
		}
		inputHandles[i] = handle
	}

	outputHandles := make([]uintptr, len(outputNames))
	status := runSessionFunc(
		s.session,
		0, // default run options
		&inputNamePtrs[0],
		&inputHandles[0],
		uintptr(len(inputHandles)),
		&outputNamePtrs[0],
		uintptr(len(outputHandles)),
		&outputHandles[0],
	)
	runtime.KeepAlive(inputNameHold)
	runtime.KeepAlive(outputNameHold)
	runtime.KeepAlive(inputs)
	if err := checkStatus("Run", status); err != nil {
		return nil, &Error{Kind: KindInference, Op: "Run", Err: err}
	}

	outputs := make([]*DynamicOutput, 0, len(outputHandles))
	for i, handle := range outputHandles {
		if handle == 0 {
			contractViolation("Run", fmt.Sprintf("success status with null output handle for %q", outputNames[i]))
		}
		output, err := newDynamicOutput(handle)
		if err != nil {
			// Release everything acquired so far; the failed handle was
			// already released by newDynamicOutput.
			var destroyErr error
			for _, ok := range outputs {
				destroyErr = errors.Join(destroyErr, ok.Destroy())
			}
			for _, rest := range outputHandles[i+1:] {
				if rest != 0 && releaseValueFunc != nil {
					releaseValueFunc(rest)
				}
			}
			return nil, errors.Join(err, destroyErr)
		}
		outputs = append(outputs, output)
	}

	return outputs, nil
}

// cstringArray converts names into an array of null-terminated buffers.
// The returned hold slice must be kept alive across the native call.
func cstringArray(names []string) ([]uintptr, [][]byte) {
	ptrs := make([]uintptr, len(names))
	hold := make([][]byte, len(names))
	for i, name := range names {
		hold[i], ptrs[i] = GoToCstring(name)
	}
	return ptrs, hold
}
