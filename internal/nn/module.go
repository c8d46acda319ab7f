// Package nn implements neural network modules built on the windowed
// reduction core.
//
// This package provides the operator surface for pooling:
//   - Module interface: base interface for all NN components
//   - Parameter: trainable parameters with gradient tracking
//   - MaxPool3D: volumetric max pooling over [N,C,D,H,W]
//   - MaxPool2D: planar max pooling over [N,C,H,W]
//   - MaxPoolND: functional entry point shared by the layers
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/stride-ml/stride/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: compute output from input
//   - Parameters: return all trainable parameters
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters
	// (pooling layers, activation functions).
	Parameters() []*Parameter[B]
}
