package ort

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// runFixture executes one inference against the fake runtime and returns
// its outputs.
func runFixture(t *testing.T, fake *fakeRuntime) []*DynamicOutput {
	t.Helper()
	session := fake.liveSession(t)
	t.Cleanup(func() { _ = session.Destroy() })

	input, err := NewTensor(NewShape(1, 3, 224, 224), make([]float32, 150528))
	if err != nil {
		t.Fatalf("NewTensor() failed: %v", err)
	}
	t.Cleanup(func() { _ = input.Destroy() })

	outputs, err := session.Run([]string{"data"}, []Value{input}, outputNames(fake))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return outputs
}

func outputNames(fake *fakeRuntime) []string {
	names := make([]string, len(fake.outputs))
	for i, meta := range fake.outputs {
		names[i] = meta.name
	}
	return names
}

func TestExtractMatchingType(t *testing.T) {
	logits := []float32{1.5, -0.25, 3.75}
	fake := classifierFixture()
	fake.outputs = []fakeTensorMeta{{
		name:        "logits",
		elementType: int32(TensorElementDataTypeFloat),
		dims:        []int64{1, 3},
		data:        float32Bytes(logits),
	}}
	fake.install(t)

	outputs := runFixture(t, fake)
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}
	output := outputs[0]
	defer func() { _ = output.Destroy() }()

	if output.ElementType() != TensorElementDataTypeFloat {
		t.Errorf("expected float element type, got %v", output.ElementType())
	}
	if diff := cmp.Diff(NewShape(1, 3), output.Shape()); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if output.ElementCount() != 3 {
		t.Errorf("expected 3 elements, got %d", output.ElementCount())
	}

	view, err := Extract[float32](output)
	if err != nil {
		t.Fatalf("Extract[float32]() failed: %v", err)
	}
	if diff := cmp.Diff(logits, view.Data()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(NewShape(1, 3), view.Shape()); diff != "" {
		t.Errorf("view shape mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTypeMismatchIsRecoverable(t *testing.T) {
	fake := classifierFixture()
	fake.outputs = []fakeTensorMeta{{
		name:        "label",
		elementType: int32(TensorElementDataTypeInt64),
		dims:        []int64{2},
		data:        int64Bytes([]int64{7, 9}),
	}}
	fake.install(t)

	outputs := runFixture(t, fake)
	output := outputs[0]
	defer func() { _ = output.Destroy() }()

	_, err := Extract[float32](output)
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *TypeMismatchError, got %T: %v", err, err)
	}
	if mismatch.Actual != TensorElementDataTypeInt64 {
		t.Errorf("expected actual type int64, got %v", mismatch.Actual)
	}
	if mismatch.Requested != TensorElementDataTypeFloat {
		t.Errorf("expected requested type float32, got %v", mismatch.Requested)
	}

	// A mismatch does not consume the output; retrying with the declared
	// type succeeds, and a repeat extraction sees the same data.
	first, err := Extract[int64](output)
	if err != nil {
		t.Fatalf("retry with matching type failed: %v", err)
	}
	second, err := Extract[int64](output)
	if err != nil {
		t.Fatalf("repeated extraction failed: %v", err)
	}
	if diff := cmp.Diff(first.Data(), second.Data()); diff != "" {
		t.Errorf("repeated extractions disagree (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{7, 9}, first.Data()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractStringTensor(t *testing.T) {
	want := []string{"positive", "", "négatif"}
	fake := classifierFixture()
	fake.outputs = []fakeTensorMeta{{
		name:        "labels",
		elementType: int32(TensorElementDataTypeString),
		dims:        []int64{3},
		strings:     want,
	}}
	fake.install(t)

	outputs := runFixture(t, fake)
	output := outputs[0]

	view, err := Extract[string](output)
	if err != nil {
		t.Fatalf("Extract[string]() failed: %v", err)
	}
	if diff := cmp.Diff(want, view.Data()); diff != "" {
		t.Errorf("string data mismatch (-want +got):\n%s", diff)
	}

	// String data is host-owned and survives destroying the output.
	if err := output.Destroy(); err != nil {
		t.Fatalf("Destroy() failed: %v", err)
	}
	if diff := cmp.Diff(want, view.Data()); diff != "" {
		t.Errorf("host-owned string data changed after destroy (-want +got):\n%s", diff)
	}
}

func TestExtractAfterDestroyFails(t *testing.T) {
	fake := classifierFixture()
	fake.install(t)

	outputs := runFixture(t, fake)
	output := outputs[0]
	if err := output.Destroy(); err != nil {
		t.Fatalf("Destroy() failed: %v", err)
	}

	_, err := Extract[float32](output)
	expectKind(t, err, KindInference)
}

func TestDynamicOutputDestroyIdempotent(t *testing.T) {
	fake := classifierFixture()
	fake.install(t)

	outputs := runFixture(t, fake)
	output := outputs[0]

	before := fake.releasedValues
	if err := output.Destroy(); err != nil {
		t.Fatalf("Destroy() failed: %v", err)
	}
	if err := output.Destroy(); err != nil {
		t.Fatalf("second Destroy() failed: %v", err)
	}
	if got := fake.releasedValues - before; got != 1 {
		t.Errorf("expected exactly one value release, got %d", got)
	}
}

func TestNewDynamicOutputReleasesShapeInfo(t *testing.T) {
	fake := classifierFixture()
	fake.install(t)

	outputs := runFixture(t, fake)
	defer func() { _ = outputs[0].Destroy() }()

	if fake.releasedShapeInfos != 1 {
		t.Errorf("expected shape info released once per output, got %d", fake.releasedShapeInfos)
	}
}

func TestNewDynamicOutputFailureReleasesValue(t *testing.T) {
	fake := classifierFixture()
	fake.failCall = "GetTensorTypeAndShape"
	fake.failCode = int32(ErrorCodeFail)
	fake.failMessage = "broken value"
	fake.install(t)

	session := fake.liveSession(t)
	defer func() { _ = session.Destroy() }()

	input, err := NewTensor(NewShape(1, 3, 224, 224), make([]float32, 150528))
	if err != nil {
		t.Fatalf("NewTensor() failed: %v", err)
	}
	defer func() { _ = input.Destroy() }()

	_, err = session.Run([]string{"data"}, []Value{input}, []string{"logits"})
	expectKind(t, err, KindMetadata)

	// The undescribable output handle was released rather than leaked.
	if fake.releasedValues != 1 {
		t.Errorf("expected 1 value release on introspection failure, got %d", fake.releasedValues)
	}
	if len(fake.values) != 0 {
		t.Errorf("expected no live values after failed run, got %d", len(fake.values))
	}
}
