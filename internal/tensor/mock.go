package tensor

import (
	"fmt"
	"math"

	"github.com/stride-ml/stride/internal/window"
	"github.com/x448/float16"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing. It implements every
// operation naively, converting through float64, so optimized backends
// can be verified against it.
//
// Setting PoolErr makes the windowed-reduction kernels fail with that
// error; dispatcher tests use this to exercise backend-failure paths.
type MockBackend struct {
	PoolErr error
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// Reshape returns a view with a new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("mock: reshape %v to %v changes element count", t.Shape(), newShape))
	}
	return t.withShape(newShape)
}

// MaxPoolND performs a naive windowed max reduction over the spatial
// axes of an [N, C, spatial...] tensor. Out-of-bounds (padding)
// positions never contribute to a window's maximum.
func (m *MockBackend) MaxPoolND(input *RawTensor, desc *window.PoolDescriptor) (*RawTensor, error) {
	if m.PoolErr != nil {
		return nil, m.PoolErr
	}

	inShape := input.Shape()
	outShape := make(Shape, 0, len(inShape))
	outShape = append(outShape, inShape[0], inShape[1])
	outShape = append(outShape, desc.OutSize...)

	output, err := NewRaw(outShape, input.DType(), m.Device())
	if err != nil {
		return nil, err
	}

	inData := m.toFloat64Slice(input)
	outData := make([]float64, output.NumElements())

	inStrides := Shape(desc.InSize).ComputeStrides()
	rank := len(desc.OutSize)
	outSpatial := Shape(desc.OutSize).NumElements()
	inSpatial := Shape(desc.InSize).NumElements()
	winTotal := Shape(desc.Spec.Size).NumElements()

	planes := inShape[0] * inShape[1]
	for p := 0; p < planes; p++ {
		inPlane := inData[p*inSpatial : (p+1)*inSpatial]
		outPlane := outData[p*outSpatial : (p+1)*outSpatial]

		for o := 0; o < outSpatial; o++ {
			outCoord := unravel(o, desc.OutSize)
			maxVal := math.Inf(-1)

			for k := 0; k < winTotal; k++ {
				winCoord := unravel(k, desc.Spec.Size)
				flat := 0
				valid := true
				for i := 0; i < rank; i++ {
					pos := outCoord[i]*desc.Spec.Stride[i] - desc.PadBefore[i] + winCoord[i]*desc.Spec.Dilation[i]
					if pos < 0 || pos >= desc.InSize[i] {
						valid = false
						break
					}
					flat += pos * inStrides[i]
				}
				if valid && inPlane[flat] > maxVal {
					maxVal = inPlane[flat]
				}
			}
			outPlane[o] = maxVal
		}
	}

	m.fromFloat64Slice(outData, output)
	return output, nil
}

// MaxPoolNDBackward routes each output gradient to the first input
// position inside its window whose value equals the saved output value.
func (m *MockBackend) MaxPoolNDBackward(input, output, grad *RawTensor, desc *window.PoolDescriptor) (*RawTensor, error) {
	if m.PoolErr != nil {
		return nil, m.PoolErr
	}

	inputGrad, err := NewRaw(input.Shape(), input.DType(), m.Device())
	if err != nil {
		return nil, err
	}

	inData := m.toFloat64Slice(input)
	outData := m.toFloat64Slice(output)
	gradData := m.toFloat64Slice(grad)
	resultData := make([]float64, input.NumElements())

	inStrides := Shape(desc.InSize).ComputeStrides()
	rank := len(desc.OutSize)
	outSpatial := Shape(desc.OutSize).NumElements()
	inSpatial := Shape(desc.InSize).NumElements()
	winTotal := Shape(desc.Spec.Size).NumElements()

	planes := input.Shape()[0] * input.Shape()[1]
	for p := 0; p < planes; p++ {
		inPlane := inData[p*inSpatial : (p+1)*inSpatial]

		for o := 0; o < outSpatial; o++ {
			outCoord := unravel(o, desc.OutSize)
			target := outData[p*outSpatial+o]

			for k := 0; k < winTotal; k++ {
				winCoord := unravel(k, desc.Spec.Size)
				flat := 0
				valid := true
				for i := 0; i < rank; i++ {
					pos := outCoord[i]*desc.Spec.Stride[i] - desc.PadBefore[i] + winCoord[i]*desc.Spec.Dilation[i]
					if pos < 0 || pos >= desc.InSize[i] {
						valid = false
						break
					}
					flat += pos * inStrides[i]
				}
				if valid && inPlane[flat] == target {
					resultData[p*inSpatial+flat] += gradData[p*outSpatial+o]
					break
				}
			}
		}
	}

	m.fromFloat64Slice(resultData, inputGrad)
	return inputGrad, nil
}

// unravel decomposes a flat index into per-axis coordinates for dims.
func unravel(flat int, dims window.Dims) []int {
	coord := make([]int, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		coord[i] = flat % dims[i]
		flat /= dims[i]
	}
	return coord
}

// elementWise performs element-wise operations over same-shape operands.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("mock: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}

	result, err := NewRaw(a.Shape(), a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, a.NumElements())
	for i := range resultData {
		resultData[i] = op(aData[i], bData[i])
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// toFloat64Slice converts tensor data to float64 for generic processing.
func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	out := make([]float64, t.NumElements())
	switch t.DType() {
	case Float16:
		for i, v := range t.AsFloat16() {
			out[i] = float64(v.Float32())
		}
	case Float32:
		for i, v := range t.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, t.AsFloat64())
	case Int32:
		for i, v := range t.AsInt32() {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range t.AsInt64() {
			out[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %v", t.DType()))
	}
	return out
}

// fromFloat64Slice writes float64 data back into a tensor's buffer.
func (m *MockBackend) fromFloat64Slice(data []float64, t *RawTensor) {
	switch t.DType() {
	case Float16:
		dst := t.AsFloat16()
		for i, v := range data {
			dst[i] = float16.Fromfloat32(float32(v))
		}
	case Float32:
		dst := t.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), data)
	case Int32:
		dst := t.AsInt32()
		for i, v := range data {
			dst[i] = int32(v)
		}
	case Int64:
		dst := t.AsInt64()
		for i, v := range data {
			dst[i] = int64(v)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %v", t.DType()))
	}
}
