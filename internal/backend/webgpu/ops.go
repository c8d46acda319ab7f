//go:build windows

package webgpu

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/stride-ml/stride/internal/tensor"
	"github.com/stride-ml/stride/internal/window"
)

// Add performs element-wise addition on GPU.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "add", addShader)
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	return result
}

// Sub performs element-wise subtraction on GPU.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "sub", subShader)
	if err != nil {
		panic("webgpu: Sub: " + err.Error())
	}
	return result
}

// Mul performs element-wise multiplication on GPU.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "mul", mulShader)
	if err != nil {
		panic("webgpu: Mul: " + err.Error())
	}
	return result
}

// Div performs element-wise division on GPU.
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "div", divShader)
	if err != nil {
		panic("webgpu: Div: " + err.Error())
	}
	return result
}

// Reshape returns a tensor with new shape.
func (b *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic("webgpu: reshape: invalid shape: " + err.Error())
	}
	if t.NumElements() != newShape.NumElements() {
		panic("webgpu: reshape: incompatible number of elements")
	}

	result, err := tensor.NewRaw(newShape, t.DType(), tensor.WebGPU)
	if err != nil {
		panic("webgpu: reshape: " + err.Error())
	}
	copy(result.Data(), t.Data())
	return result
}

// MaxPoolND performs windowed max pooling over the spatial axes of an
// [N, C, spatial...] tensor on GPU.
//
// The WGSL kernel handles up to three spatial axes; descriptors of
// lower rank are dispatched with leading size-1 axes.
func (b *Backend) MaxPoolND(input *tensor.RawTensor, desc *window.PoolDescriptor) (*tensor.RawTensor, error) {
	inShape := input.Shape()
	rank := desc.Spec.Rank()
	if len(inShape) != rank+2 {
		return nil, errors.Errorf("webgpu: maxpool expects rank %d input [N,C,spatial...], got %v", rank+2, inShape)
	}
	if !inShape.Spatial().Equal(desc.InSize) {
		return nil, errors.Errorf("webgpu: maxpool descriptor computed for %v, input has %v", desc.InSize, inShape.Spatial())
	}
	if rank > 3 {
		return nil, errors.Errorf("webgpu: maxpool supports at most 3 spatial axes, got %d", rank)
	}

	outShape := make(tensor.Shape, 0, len(inShape))
	outShape = append(outShape, inShape[0], inShape[1])
	outShape = append(outShape, desc.OutSize...)

	planes := inShape[0] * inShape[1]
	klog.V(2).Infof("webgpu: maxpool in=%v out=%v window=%v", inShape, outShape, desc.Spec.Size)

	result, err := b.runMaxPool(input, outShape, planes, padDescriptorTo3(desc))
	if err != nil {
		return nil, errors.Wrap(err, "webgpu: maxpool")
	}
	return result, nil
}

// MaxPoolNDBackward computes the max pooling input gradient.
// Not yet implemented for the WebGPU backend; train on CPU or wrap the
// CPU backend for the backward pass.
func (b *Backend) MaxPoolNDBackward(_, _, _ *tensor.RawTensor, _ *window.PoolDescriptor) (*tensor.RawTensor, error) {
	return nil, errors.New("webgpu: MaxPoolNDBackward not implemented")
}

// padDescriptorTo3 returns a descriptor with exactly three spatial
// axes, adding leading size-1 axes with window 1, stride 1, dilation 1
// and no padding. The window math is unaffected: a size-1 axis has a
// single window position at offset 0.
func padDescriptorTo3(desc *window.PoolDescriptor) *window.PoolDescriptor {
	rank := desc.Spec.Rank()
	if rank == 3 {
		return desc
	}

	pad := 3 - rank
	ones := func(v int) window.Dims {
		d := make(window.Dims, 3)
		for i := 0; i < pad; i++ {
			d[i] = v
		}
		return d
	}
	lift := func(dst window.Dims, src window.Dims) window.Dims {
		copy(dst[pad:], src)
		return dst
	}

	return &window.PoolDescriptor{
		InSize: lift(ones(1), desc.InSize),
		Spec: window.Spec{
			Size:     lift(ones(1), desc.Spec.Size),
			Stride:   lift(ones(1), desc.Spec.Stride),
			Dilation: lift(ones(1), desc.Spec.Dilation),
		},
		Padding:   desc.Padding,
		OutSize:   lift(ones(1), desc.OutSize),
		PadBefore: lift(ones(0), desc.PadBefore),
		PadAfter:  lift(ones(0), desc.PadAfter),
	}
}
