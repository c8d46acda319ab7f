package tensor

import (
	"math"
	"math/rand"

	"github.com/x448/float16"
)

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	// Buffer is already zero-initialized.
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var one T
	switch any(one).(type) {
	case float16.Float16:
		one = any(float16.Fromfloat32(1)).(T)
	case float32:
		one = any(float32(1)).(T)
	case float64:
		one = any(float64(1)).(T)
	case int32:
		one = any(int32(1)).(T)
	case int64:
		one = any(int64(1)).(T)
	}
	return Full[T, B](shape, one, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Arange creates a 1D tensor with values [start, end) stepping by 1.
// Only supported for float32 and float64.
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	var n int
	switch s := any(start).(type) {
	case float32:
		n = int(any(end).(float32) - s)
	case float64:
		n = int(any(end).(float64) - s)
	default:
		panic("Arange only supports float32 and float64")
	}
	if n < 0 {
		n = 0
	}

	t := Zeros[T, B](Shape{n}, b)
	data := t.Data()
	switch d := any(data).(type) {
	case []float32:
		for i := range d {
			d[i] = any(start).(float32) + float32(i)
		}
	case []float64:
		for i := range d {
			d[i] = any(start).(float64) + float64(i)
		}
	}
	return t
}

// Randn creates a tensor with values drawn from a standard normal
// distribution via the Box-Muller transform. Float types only.
// Uses math/rand intentionally: reproducibility matters more than
// cryptographic strength here.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	switch d := any(data).(type) {
	case []float32:
		for i := 0; i < len(d); i += 2 {
			u1 := rand.Float64() //nolint:gosec // G404: statistical use
			u2 := rand.Float64() //nolint:gosec // G404: statistical use
			z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
			z1 := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
			d[i] = float32(z0)
			if i+1 < len(d) {
				d[i+1] = float32(z1)
			}
		}
	case []float64:
		for i := 0; i < len(d); i += 2 {
			u1 := rand.Float64() //nolint:gosec // G404: statistical use
			u2 := rand.Float64() //nolint:gosec // G404: statistical use
			z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
			z1 := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
			d[i] = z0
			if i+1 < len(d) {
				d[i+1] = z1
			}
		}
	default:
		panic("Randn only supports float32 and float64")
	}
	return t
}
