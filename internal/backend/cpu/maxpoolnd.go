package cpu

import (
	"math"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/stride-ml/stride/internal/parallel"
	"github.com/stride-ml/stride/internal/tensor"
	"github.com/stride-ml/stride/internal/window"
)

// MaxPoolND performs a windowed max reduction over the spatial axes of
// an [N, C, spatial...] tensor, following the resolved descriptor.
//
// Padding is implicit: window taps that fall outside the input never
// contribute to a maximum, so pad regions behave as negative infinity.
//
// Example (2x2 window, stride 2, one spatial plane):
//
//	Input: [[1,2,3,4],    Output: [[6,8],
//	        [5,6,7,8],             [14,16]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPoolND(input *tensor.RawTensor, desc *window.PoolDescriptor) (*tensor.RawTensor, error) {
	if err := checkPoolLayout(input, desc); err != nil {
		return nil, err
	}

	inShape := input.Shape()
	outShape := make(tensor.Shape, 0, len(inShape))
	outShape = append(outShape, inShape[0], inShape[1])
	outShape = append(outShape, desc.OutSize...)

	output, err := tensor.NewRaw(outShape, input.DType(), cpu.device)
	if err != nil {
		return nil, errors.Wrap(err, "cpu: maxpool")
	}

	planes := inShape[0] * inShape[1]
	plan := newPoolPlan(desc)

	switch input.DType() {
	case tensor.Float32:
		poolForward(input.AsFloat32(), output.AsFloat32(), planes, plan)
	case tensor.Float64:
		poolForward(input.AsFloat64(), output.AsFloat64(), planes, plan)
	case tensor.Float16:
		in32 := toFloat32(input.AsFloat16())
		out32 := make([]float32, output.NumElements())
		poolForward(in32, out32, planes, plan)
		fromFloat32(output.AsFloat16(), out32)
	default:
		return nil, errors.Errorf("cpu: maxpool unsupported dtype %s", input.DType())
	}
	return output, nil
}

// checkPoolLayout verifies the input tensor matches the descriptor's
// spatial layout. Shape inference runs before dispatch, so a mismatch
// here means the caller bypassed it.
func checkPoolLayout(input *tensor.RawTensor, desc *window.PoolDescriptor) error {
	inShape := input.Shape()
	if len(inShape) != len(desc.OutSize)+2 {
		return errors.Errorf("cpu: maxpool input rank %d, descriptor wants %d ([N, C, spatial...])",
			len(inShape), len(desc.OutSize)+2)
	}
	if !window.Dims(inShape[2:]).Equal(desc.InSize) {
		return errors.Errorf("cpu: maxpool input spatial dims %v do not match descriptor %v",
			inShape[2:], desc.InSize)
	}
	return nil
}

// poolPlan precomputes the per-call iteration constants shared by the
// forward and backward kernels.
type poolPlan struct {
	rank       int
	inSize     window.Dims
	outSize    window.Dims
	stride     window.Dims
	padBefore  window.Dims
	inStrides  []int
	inSpatial  int
	outSpatial int
	// tapOffsets holds, per window tap, the dilated per-axis offsets
	// from the window origin.
	tapOffsets [][]int
}

func newPoolPlan(desc *window.PoolDescriptor) *poolPlan {
	rank := len(desc.OutSize)
	plan := &poolPlan{
		rank:       rank,
		inSize:     desc.InSize,
		outSize:    desc.OutSize,
		stride:     desc.Spec.Stride,
		padBefore:  desc.PadBefore,
		inStrides:  tensor.Shape(desc.InSize).ComputeStrides(),
		inSpatial:  tensor.Shape(desc.InSize).NumElements(),
		outSpatial: tensor.Shape(desc.OutSize).NumElements(),
	}

	taps := tensor.Shape(desc.Spec.Size).NumElements()
	plan.tapOffsets = make([][]int, taps)
	coord := make([]int, rank)
	for k := 0; k < taps; k++ {
		offs := make([]int, rank)
		for i := 0; i < rank; i++ {
			offs[i] = coord[i] * desc.Spec.Dilation[i]
		}
		plan.tapOffsets[k] = offs
		for i := rank - 1; i >= 0; i-- {
			coord[i]++
			if coord[i] < desc.Spec.Size[i] {
				break
			}
			coord[i] = 0
		}
	}
	return plan
}

// poolForward runs the max reduction for one real float type. Planes
// are independent, so they fan out across workers.
func poolForward[T float32 | float64](in, out []T, planes int, plan *poolPlan) {
	negInf := T(math.Inf(-1))

	parallel.For(planes, func(p int) {
		inPlane := in[p*plan.inSpatial : (p+1)*plan.inSpatial]
		outPlane := out[p*plan.outSpatial : (p+1)*plan.outSpatial]

		coord := make([]int, plan.rank)
		for o := 0; o < plan.outSpatial; o++ {
			maxVal := negInf
			for _, offs := range plan.tapOffsets {
				flat := 0
				valid := true
				for i := 0; i < plan.rank; i++ {
					pos := coord[i]*plan.stride[i] - plan.padBefore[i] + offs[i]
					if pos < 0 || pos >= plan.inSize[i] {
						valid = false
						break
					}
					flat += pos * plan.inStrides[i]
				}
				if valid && inPlane[flat] > maxVal {
					maxVal = inPlane[flat]
				}
			}
			outPlane[o] = maxVal

			for i := plan.rank - 1; i >= 0; i-- {
				coord[i]++
				if coord[i] < plan.outSize[i] {
					break
				}
				coord[i] = 0
			}
		}
	}, parallel.DefaultConfig())
}

// toFloat32 widens half-precision data for computation.
func toFloat32(in []float16.Float16) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = v.Float32()
	}
	return out
}

// fromFloat32 narrows computed values back to half precision.
func fromFloat32(dst []float16.Float16, src []float32) {
	for i, v := range src {
		dst[i] = float16.Fromfloat32(v)
	}
}
