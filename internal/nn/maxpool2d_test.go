package nn

import (
	"testing"

	"github.com/stride-ml/stride/internal/autodiff"
	"github.com/stride-ml/stride/internal/backend/cpu"
	"github.com/stride-ml/stride/internal/tensor"
)

// TestMaxPool2D_Creation tests MaxPool2D layer creation.
func TestMaxPool2D_Creation(t *testing.T) {
	backend := cpu.New()

	pool := NewMaxPool2D(2, 2, backend)

	if pool.KernelSize() != 2 {
		t.Errorf("Expected kernel_size=2, got %d", pool.KernelSize())
	}
	if pool.Stride() != 2 {
		t.Errorf("Expected stride=2, got %d", pool.Stride())
	}
	if len(pool.Parameters()) != 0 {
		t.Errorf("Expected 0 parameters (MaxPool2D has no learnable params), got %d", len(pool.Parameters()))
	}
}

// TestMaxPool2D_ForwardShape tests forward pass output shape.
func TestMaxPool2D_ForwardShape(t *testing.T) {
	backend := cpu.New()

	pool := NewMaxPool2D(2, 2, backend)

	input := tensor.Zeros[float32](tensor.Shape{2, 3, 28, 28}, backend)
	output := pool.Forward(input)

	// out_h = (28 - 2) / 2 + 1 = 14
	expectedShape := tensor.Shape{2, 3, 14, 14}
	if !output.Shape().Equal(expectedShape) {
		t.Errorf("Output shape: expected %v, got %v", expectedShape, output.Shape())
	}
}

// TestMaxPool2D_ForwardValues tests forward pass with known values.
func TestMaxPool2D_ForwardValues(t *testing.T) {
	backend := cpu.New()

	pool := NewMaxPool2D(2, 2, backend)

	// Input: [1, 1, 4, 4] with sequential values 1-16.
	input := seqInput(t, tensor.Shape{1, 1, 4, 4}, backend)
	output := pool.Forward(input)

	// [[1,2,3,4],      -> [[6,8],
	//  [5,6,7,8],         [14,16]]
	//  [9,10,11,12],
	//  [13,14,15,16]]
	expected := []float32{6, 8, 14, 16}
	outputData := output.Raw().AsFloat32()
	for i, exp := range expected {
		if outputData[i] != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, outputData[i])
		}
	}
}

// TestMaxPool2D_WithDifferentStride tests overlapping pooling.
func TestMaxPool2D_WithDifferentStride(t *testing.T) {
	backend := cpu.New()

	pool := NewMaxPool2D(3, 2, backend)

	input := tensor.Ones[float32](tensor.Shape{1, 1, 7, 7}, backend)
	output := pool.Forward(input)

	// (7 - 3) / 2 + 1 = 3
	expectedShape := tensor.Shape{1, 1, 3, 3}
	if !output.Shape().Equal(expectedShape) {
		t.Errorf("Output shape: expected %v, got %v", expectedShape, output.Shape())
	}

	for i, val := range output.Raw().AsFloat32() {
		if val != 1.0 {
			t.Errorf("Output[%d]: expected 1.0, got %.1f", i, val)
		}
	}
}

// TestMaxPool2D_UnbatchedForward tests the rank-3 (no batch axis) path.
func TestMaxPool2D_UnbatchedForward(t *testing.T) {
	backend := cpu.New()

	pool := NewMaxPool2D(2, 2, backend)

	input := seqInput(t, tensor.Shape{1, 4, 4}, backend)
	output := pool.Forward(input)

	expectedShape := tensor.Shape{1, 2, 2}
	if !output.Shape().Equal(expectedShape) {
		t.Fatalf("Output shape: expected %v, got %v", expectedShape, output.Shape())
	}

	expected := []float32{6, 8, 14, 16}
	outputData := output.Raw().AsFloat32()
	for i, exp := range expected {
		if outputData[i] != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, outputData[i])
		}
	}
}

// TestMaxPool2D_ComputeOutputSize tests output size computation.
func TestMaxPool2D_ComputeOutputSize(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		kernelSize, stride   int
		inputH, inputW       int
		expectedH, expectedW int
	}{
		{2, 2, 28, 28, 14, 14},
		{2, 2, 32, 32, 16, 16},
		{3, 2, 28, 28, 13, 13},
		{2, 1, 5, 5, 4, 4},
	}

	for _, tt := range tests {
		pool := NewMaxPool2D(tt.kernelSize, tt.stride, backend)
		outSize := pool.ComputeOutputSize(tt.inputH, tt.inputW)

		if outSize[0] != tt.expectedH || outSize[1] != tt.expectedW {
			t.Errorf("ComputeOutputSize(kernel=%d, stride=%d, input=%dx%d): expected [%d,%d], got %v",
				tt.kernelSize, tt.stride, tt.inputH, tt.inputW,
				tt.expectedH, tt.expectedW, outSize)
		}
	}
}

// TestMaxPool2D_IntegrationWithAutodiff tests MaxPool2D with autodiff
// backend.
func TestMaxPool2D_IntegrationWithAutodiff(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	pool := NewMaxPool2D(2, 2, backend)

	input := tensor.Randn[float32](tensor.Shape{1, 2, 4, 4}, backend)
	output := pool.Forward(input)

	expectedShape := tensor.Shape{1, 2, 2, 2}
	if !output.Shape().Equal(expectedShape) {
		t.Errorf("Output shape: expected %v, got %v", expectedShape, output.Shape())
	}

	grads := autodiff.Backward(output, backend)

	inputGrad, ok := grads[input.Raw()]
	if !ok {
		t.Fatal("No gradient for input!")
	}
	if !inputGrad.Shape().Equal(input.Shape()) {
		t.Errorf("Input gradient shape: expected %v, got %v", input.Shape(), inputGrad.Shape())
	}

	// 4 max positions per channel, 2 channels.
	nonZero := 0
	for _, g := range inputGrad.AsFloat32() {
		if g != 0.0 {
			nonZero++
		}
	}
	if nonZero != 8 {
		t.Errorf("Expected 8 non-zero gradients, got %d", nonZero)
	}
}
