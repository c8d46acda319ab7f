package cpu

import (
	"github.com/pkg/errors"

	"github.com/stride-ml/stride/internal/parallel"
	"github.com/stride-ml/stride/internal/tensor"
	"github.com/stride-ml/stride/internal/window"
)

// MaxPoolNDBackward computes the input gradient of MaxPoolND.
//
// The saved forward output encodes which input element each window
// selected: for every output position, the gradient is routed to the
// first window tap whose input value equals the output value, and all
// other taps receive zero. Ties therefore break toward the earliest
// position in window iteration order, deterministically.
func (cpu *CPUBackend) MaxPoolNDBackward(input, output, grad *tensor.RawTensor, desc *window.PoolDescriptor) (*tensor.RawTensor, error) {
	if err := checkPoolLayout(input, desc); err != nil {
		return nil, err
	}
	if !output.Shape().Equal(grad.Shape()) {
		return nil, errors.Errorf("cpu: maxpool backward output shape %v does not match gradient shape %v",
			output.Shape(), grad.Shape())
	}

	inputGrad, err := tensor.NewRaw(input.Shape(), input.DType(), cpu.device)
	if err != nil {
		return nil, errors.Wrap(err, "cpu: maxpool backward")
	}

	planes := input.Shape()[0] * input.Shape()[1]
	plan := newPoolPlan(desc)

	switch input.DType() {
	case tensor.Float32:
		poolBackward(input.AsFloat32(), output.AsFloat32(), grad.AsFloat32(), inputGrad.AsFloat32(), planes, plan)
	case tensor.Float64:
		poolBackward(input.AsFloat64(), output.AsFloat64(), grad.AsFloat64(), inputGrad.AsFloat64(), planes, plan)
	case tensor.Float16:
		in32 := toFloat32(input.AsFloat16())
		out32 := toFloat32(output.AsFloat16())
		grad32 := toFloat32(grad.AsFloat16())
		result32 := make([]float32, input.NumElements())
		poolBackward(in32, out32, grad32, result32, planes, plan)
		fromFloat32(inputGrad.AsFloat16(), result32)
	default:
		return nil, errors.Errorf("cpu: maxpool backward unsupported dtype %s", input.DType())
	}
	return inputGrad, nil
}

// poolBackward routes gradients to argmax positions for one float type.
// inputGrad must be zero-initialized; gradients accumulate when windows
// overlap.
func poolBackward[T float32 | float64](in, out, grad, inputGrad []T, planes int, plan *poolPlan) {
	// Planes write to disjoint slices of inputGrad, so they are safe to
	// fan out.
	parallel.For(planes, func(p int) {
		inPlane := in[p*plan.inSpatial : (p+1)*plan.inSpatial]
		gradPlane := inputGrad[p*plan.inSpatial : (p+1)*plan.inSpatial]

		coord := make([]int, plan.rank)
		for o := 0; o < plan.outSpatial; o++ {
			target := out[p*plan.outSpatial+o]
			g := grad[p*plan.outSpatial+o]

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
				if valid && inPlane[flat] == target {
					gradPlane[flat] += g
					break
				}
			}

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
