package ops

import (
	"fmt"

	"github.com/stride-ml/stride/internal/tensor"
	"github.com/stride-ml/stride/internal/window"
)

// MaxPoolNDOp records a windowed max reduction for autodiff.
//
// Saved tensors are {input, output}: the output values encode which
// input element each window selected, so backward can route gradients
// without storing argmax indices at forward time.
//
// Backward: every output gradient flows to the input position that won
// its window; all other positions in the window receive zero. Windows
// that overlap accumulate.
type MaxPoolNDOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	desc   *window.PoolDescriptor
}

// NewMaxPoolNDOp creates a new MaxPoolND operation. The descriptor is
// the one the forward kernel consumed; it is retained as the op's
// attribute bundle for backward.
func NewMaxPoolNDOp(input, output *tensor.RawTensor, desc *window.PoolDescriptor) *MaxPoolNDOp {
	return &MaxPoolNDOp{
		input:  input,
		output: output,
		desc:   desc,
	}
}

// Inputs returns the input tensors.
func (op *MaxPoolNDOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *MaxPoolNDOp) Output() *tensor.RawTensor {
	return op.output
}

// Descriptor returns the pooling descriptor recorded with the op.
func (op *MaxPoolNDOp) Descriptor() *window.PoolDescriptor {
	return op.desc
}

// Backward delegates gradient routing to the backend's kernel.
func (op *MaxPoolNDOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inputGrad, err := backend.MaxPoolNDBackward(op.input, op.output, outputGrad, op.desc)
	if err != nil {
		// The forward kernel accepted this exact descriptor; a backward
		// failure means the backend lost consistency.
		panic(fmt.Sprintf("maxpool backward: %v", err))
	}
	return []*tensor.RawTensor{inputGrad}
}
