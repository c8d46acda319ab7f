// Package autodiff provides reverse-mode automatic differentiation by
// wrapping any Backend implementation with operation recording.
package autodiff

import (
	"k8s.io/klog/v2"

	"github.com/stride-ml/stride/internal/autodiff/ops"
	"github.com/stride-ml/stride/internal/tensor"
	"github.com/stride-ml/stride/internal/window"
)

// AutodiffBackend wraps a Backend to record operations on a gradient
// tape. It implements the Backend interface itself, so it composes with
// any code written against Backend.
//
// Copy-on-write note: recorded operations keep references to their
// input and output tensors for the backward pass. Those tensors are
// marked non-unique before recording so later in-place writes fork the
// buffer instead of corrupting the saved values.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: inner,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape.
func (a *AutodiffBackend[B]) Tape() *GradientTape {
	return a.tape
}

// Inner returns the wrapped backend.
func (a *AutodiffBackend[B]) Inner() B {
	return a.inner
}

// Name returns the backend name.
func (a *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + a.inner.Name() + ")"
}

// Device returns the device of the wrapped backend.
func (a *AutodiffBackend[B]) Device() tensor.Device {
	return a.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (a *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := a.inner.Add(x, y)
	if a.tape.IsRecording() {
		x.ForceNonUnique()
		y.ForceNonUnique()
		result.ForceNonUnique()
		a.tape.Record(ops.NewAddOp(x, y, result))
	}
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (a *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := a.inner.Sub(x, y)
	if a.tape.IsRecording() {
		x.ForceNonUnique()
		y.ForceNonUnique()
		result.ForceNonUnique()
		a.tape.Record(ops.NewSubOp(x, y, result))
	}
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (a *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := a.inner.Mul(x, y)
	if a.tape.IsRecording() {
		x.ForceNonUnique()
		y.ForceNonUnique()
		result.ForceNonUnique()
		a.tape.Record(ops.NewMulOp(x, y, result))
	}
	return result
}

// Div performs element-wise division and records the operation.
func (a *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := a.inner.Div(x, y)
	if a.tape.IsRecording() {
		x.ForceNonUnique()
		y.ForceNonUnique()
		result.ForceNonUnique()
		a.tape.Record(ops.NewDivOp(x, y, result))
	}
	return result
}

// Reshape changes the tensor shape and records the operation.
func (a *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := a.inner.Reshape(t, newShape)
	if a.tape.IsRecording() {
		t.ForceNonUnique()
		result.ForceNonUnique()
		a.tape.Record(ops.NewReshapeOp(t, result))
	}
	return result
}

// MaxPoolND performs N-dimensional max pooling and records the
// operation.
//
// Recording is atomic with respect to kernel failure: if the inner
// backend returns an error, the tape is left exactly as it was and the
// error is passed through unchanged.
func (a *AutodiffBackend[B]) MaxPoolND(input *tensor.RawTensor, desc *window.PoolDescriptor) (*tensor.RawTensor, error) {
	result, err := a.inner.MaxPoolND(input, desc)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("maxpool dispatch: backend=%s in=%v out=%v window=%v stride=%v",
		a.inner.Name(), input.Shape(), result.Shape(), desc.Spec.Size, desc.Spec.Stride)
	if a.tape.IsRecording() {
		input.ForceNonUnique()
		result.ForceNonUnique()
		a.tape.Record(ops.NewMaxPoolNDOp(input, result, desc))
	}
	return result, nil
}

// MaxPoolNDBackward delegates to the wrapped backend. The gradient
// kernel is not itself differentiable, so nothing is recorded.
func (a *AutodiffBackend[B]) MaxPoolNDBackward(input, output, grad *tensor.RawTensor, desc *window.PoolDescriptor) (*tensor.RawTensor, error) {
	return a.inner.MaxPoolNDBackward(input, output, grad, desc)
}
