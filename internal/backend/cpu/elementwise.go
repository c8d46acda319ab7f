package cpu

import (
	"fmt"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/floats"

	"github.com/stride-ml/stride/internal/tensor"
)

// binaryKind enumerates the element-wise binary operations.
type binaryKind int

const (
	opAdd binaryKind = iota
	opSub
	opMul
	opDiv
)

// Add performs element-wise addition over same-shape operands.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(a, b, opAdd)
}

// Sub performs element-wise subtraction over same-shape operands.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(a, b, opSub)
}

// Mul performs element-wise multiplication over same-shape operands.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(a, b, opMul)
}

// Div performs element-wise division over same-shape operands.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(a, b, opDiv)
}

func (cpu *CPUBackend) binary(a, b *tensor.RawTensor, kind binaryKind) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("cpu: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}

	result, err := tensor.NewRaw(a.Shape(), a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cpu: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		binaryFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), kind)
	case tensor.Float64:
		binaryFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), kind)
	case tensor.Float16:
		binaryFloat16(result.AsFloat16(), a.AsFloat16(), b.AsFloat16(), kind)
	case tensor.Int32:
		binaryInt(result.AsInt32(), a.AsInt32(), b.AsInt32(), kind)
	case tensor.Int64:
		binaryInt(result.AsInt64(), a.AsInt64(), b.AsInt64(), kind)
	default:
		panic(fmt.Sprintf("cpu: unsupported dtype %v", a.DType()))
	}
	return result
}

func binaryFloat32(dst, a, b []float32, kind binaryKind) {
	switch kind {
	case opAdd:
		for i := range dst {
			dst[i] = a[i] + b[i]
		}
	case opSub:
		for i := range dst {
			dst[i] = a[i] - b[i]
		}
	case opMul:
		for i := range dst {
			dst[i] = a[i] * b[i]
		}
	case opDiv:
		for i := range dst {
			dst[i] = a[i] / b[i]
		}
	}
}

// binaryFloat64 delegates to gonum's vectorized float64 routines.
func binaryFloat64(dst, a, b []float64, kind binaryKind) {
	switch kind {
	case opAdd:
		floats.AddTo(dst, a, b)
	case opSub:
		floats.SubTo(dst, a, b)
	case opMul:
		floats.MulTo(dst, a, b)
	case opDiv:
		floats.DivTo(dst, a, b)
	}
}

// binaryFloat16 computes through float32 conversion.
func binaryFloat16(dst, a, b []float16.Float16, kind binaryKind) {
	for i := range dst {
		x := a[i].Float32()
		y := b[i].Float32()
		var v float32
		switch kind {
		case opAdd:
			v = x + y
		case opSub:
			v = x - y
		case opMul:
			v = x * y
		case opDiv:
			v = x / y
		}
		dst[i] = float16.Fromfloat32(v)
	}
}

func binaryInt[T int32 | int64](dst, a, b []T, kind binaryKind) {
	switch kind {
	case opAdd:
		for i := range dst {
			dst[i] = a[i] + b[i]
		}
	case opSub:
		for i := range dst {
			dst[i] = a[i] - b[i]
		}
	case opMul:
		for i := range dst {
			dst[i] = a[i] * b[i]
		}
	case opDiv:
		for i := range dst {
			dst[i] = a[i] / b[i]
		}
	}
}
