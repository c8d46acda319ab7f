// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation saves, during the forward pass, exactly the tensors
// its backward pass needs, and computes input gradients from the output
// gradient using the backend's kernels.
package ops

import "github.com/stride-ml/stride/internal/tensor"

// Operation represents a differentiable operation in the computation
// graph. Operations are recorded in forward order and replayed in
// reverse by the tape.
type Operation interface {
	// Backward computes gradients for the inputs given the output
	// gradient. The returned slice corresponds to Inputs() order.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
