package tensor

import "github.com/stride-ml/stride/internal/window"

// Backend defines the interface that all compute backends must
// implement. Backends own the numeric kernels; shape and padding
// inference happens before a backend is ever invoked, so kernels may
// assume descriptors are consistent.
//
// Implementations:
//   - backend/cpu: pure Go kernels
//   - backend/webgpu: WGSL compute kernels via go-webgpu
//
// Decorator backends:
//   - autodiff: records operations on a gradient tape, forwards the
//     numeric work to the wrapped backend
type Backend interface {
	// Element-wise binary operations over same-shape operands.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Windowed reductions. The input is laid out [N, C, spatial...];
	// the descriptor carries the resolved window, stride, dilation and
	// pad amounts for the spatial axes. Both calls are deterministic
	// and pure given identical inputs and descriptor; failures are
	// backend errors and propagate unchanged to the caller.
	MaxPoolND(input *RawTensor, desc *window.PoolDescriptor) (*RawTensor, error)
	MaxPoolNDBackward(input, output, grad *RawTensor, desc *window.PoolDescriptor) (*RawTensor, error)

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "WebGPU").
	Device() Device // Device type.
}
