package ort

import (
	"errors"
	"strings"
	"testing"
)

func TestRunValidation(t *testing.T) {
	fake := classifierFixture()
	fake.install(t)
	session := fake.liveSession(t)
	defer func() { _ = session.Destroy() }()

	input, err := NewTensor(NewShape(1, 3, 224, 224), make([]float32, 150528))
	if err != nil {
		t.Fatalf("NewTensor() failed: %v", err)
	}
	defer func() { _ = input.Destroy() }()

	tests := []struct {
		name        string
		inputNames  []string
		inputs      []Value
		outputNames []string
		wantSubstr  string
	}{
		{
			name:        "name count mismatch",
			inputNames:  []string{"a", "b"},
			inputs:      []Value{input},
			outputNames: []string{"out"},
			wantSubstr:  "input names",
		},
		{
			name:        "no inputs",
			inputNames:  []string{},
			inputs:      []Value{},
			outputNames: []string{"out"},
			wantSubstr:  "at least one input",
		},
		{
			name:        "no outputs",
			inputNames:  []string{"data"},
			inputs:      []Value{input},
			outputNames: []string{},
			wantSubstr:  "at least one input",
		},
		{
			name:        "nil input",
			inputNames:  []string{"data"},
			inputs:      []Value{nil},
			outputNames: []string{"out"},
			wantSubstr:  "is nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := session.Run(tt.inputNames, tt.inputs, tt.outputNames)
			ortErr := expectKind(t, err, KindInference)
			if !strings.Contains(ortErr.Error(), tt.wantSubstr) {
				t.Errorf("error %q does not mention %q", ortErr.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestRunRejectsDestroyedInput(t *testing.T) {
	fake := classifierFixture()
	fake.install(t)
	session := fake.liveSession(t)
	defer func() { _ = session.Destroy() }()

	input, err := NewTensor(NewShape(1), []float32{1})
	if err != nil {
		t.Fatalf("NewTensor() failed: %v", err)
	}
	if err := input.Destroy(); err != nil {
		t.Fatalf("Destroy() failed: %v", err)
	}

	_, err = session.Run([]string{"data"}, []Value{input}, []string{"out"})
	ortErr := expectKind(t, err, KindInference)
	if !strings.Contains(ortErr.Error(), "destroyed") {
		t.Errorf("error %q does not mention the destroyed input", ortErr.Error())
	}
}

func TestRunNativeFailure(t *testing.T) {
	fake := classifierFixture()
	fake.failCall = "Run"
	fake.failCode = int32(ErrorCodeRuntimeException)
	fake.failMessage = "kernel exploded"
	fake.install(t)

	session := fake.liveSession(t)
	defer func() { _ = session.Destroy() }()

	input, err := NewTensor(NewShape(1, 3, 224, 224), make([]float32, 150528))
	if err != nil {
		t.Fatalf("NewTensor() failed: %v", err)
	}
	defer func() { _ = input.Destroy() }()

	_, err = session.Run([]string{"data"}, []Value{input}, []string{"logits"})
	ortErr := expectKind(t, err, KindInference)

	var statusErr *StatusError
	if !errors.As(ortErr, &statusErr) {
		t.Fatalf("expected wrapped *StatusError, got %v", err)
	}
	if statusErr.Code != ErrorCodeRuntimeException {
		t.Errorf("expected runtime exception code, got %v", statusErr.Code)
	}
}

func TestRunMultipleOutputs(t *testing.T) {
	fake := classifierFixture()
	fake.outputs = []fakeTensorMeta{
		{
			name:        "scores",
			elementType: int32(TensorElementDataTypeFloat),
			dims:        []int64{2},
			data:        float32Bytes([]float32{0.9, 0.1}),
		},
		{
			name:        "classes",
			elementType: int32(TensorElementDataTypeInt64),
			dims:        []int64{2},
			data:        int64Bytes([]int64{3, 11}),
		},
	}
	fake.install(t)

	outputs := runFixture(t, fake)
	if len(outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(outputs))
	}
	defer func() {
		for _, output := range outputs {
			_ = output.Destroy()
		}
	}()

	if outputs[0].ElementType() != TensorElementDataTypeFloat {
		t.Errorf("expected float scores, got %v", outputs[0].ElementType())
	}
	if outputs[1].ElementType() != TensorElementDataTypeInt64 {
		t.Errorf("expected int64 classes, got %v", outputs[1].ElementType())
	}

	scores, err := Extract[float32](outputs[0])
	if err != nil {
		t.Fatalf("Extract[float32]() failed: %v", err)
	}
	classes, err := Extract[int64](outputs[1])
	if err != nil {
		t.Fatalf("Extract[int64]() failed: %v", err)
	}
	if scores.Data()[0] != 0.9 || classes.Data()[1] != 11 {
		t.Errorf("unexpected output data: scores=%v classes=%v", scores.Data(), classes.Data())
	}
}
