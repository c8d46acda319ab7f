// Package window implements the shared shape machinery for sliding-window
// tensor operators (pooling and convolution-like ops).
//
// The package is pure integer math with no tensor or backend dependency:
//   - Resolve normalizes scalar-or-vector window parameters to one value
//     per spatial axis.
//   - Spec holds the per-axis window size, stride and dilation.
//   - ComputePoolInfo derives output sizes and per-axis pad amounts for
//     valid, same and explicit padding, producing a PoolDescriptor that
//     backends consume.
//
// All validation happens here, eagerly, so callers never reach a backend
// kernel with inconsistent parameters.
package window

// Dims holds one integer per spatial axis.
type Dims []int

// Equal reports whether two Dims hold the same values.
func (d Dims) Equal(other Dims) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the Dims.
func (d Dims) Clone() Dims {
	clone := make(Dims, len(d))
	copy(clone, d)
	return clone
}

// Resolve normalizes a scalar-or-vector parameter to one value per axis.
//
// A single value broadcasts to every axis. A vector must have exactly
// rank entries. name identifies the parameter in error messages.
//
// Examples (rank 3):
//
//	Resolve([]int{2}, 3, "window")    → [2, 2, 2]
//	Resolve([]int{1, 2, 3}, 3, "stride") → [1, 2, 3]
//	Resolve([]int{1, 2}, 3, "stride")    → ShapeError
func Resolve(vals []int, rank int, name string) (Dims, error) {
	if rank <= 0 {
		return nil, Errorf("window: rank must be positive, got %d", rank)
	}
	switch len(vals) {
	case 0:
		return nil, Errorf("window: %s must not be empty", name)
	case 1:
		out := make(Dims, rank)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	case rank:
		return Dims(vals).Clone(), nil
	default:
		return nil, Errorf("window: %s must be a scalar or have %d entries, got %v", name, rank, vals)
	}
}

// Spec describes the sliding window of one operator call: the window
// size, stride and dilation for each spatial axis. All three vectors
// have the same length (the spatial rank).
type Spec struct {
	Size     Dims
	Stride   Dims
	Dilation Dims
}

// NewSpec resolves scalar-or-vector window parameters against the given
// spatial rank and validates the resulting spec.
//
// stride == nil defaults to the window size (non-overlapping pooling);
// dilation == nil defaults to 1 on every axis.
func NewSpec(rank int, size, stride, dilation []int) (Spec, error) {
	resolvedSize, err := Resolve(size, rank, "window size")
	if err != nil {
		return Spec{}, err
	}

	if stride == nil {
		stride = resolvedSize
	}
	resolvedStride, err := Resolve(stride, rank, "stride")
	if err != nil {
		return Spec{}, err
	}

	if dilation == nil {
		dilation = []int{1}
	}
	resolvedDilation, err := Resolve(dilation, rank, "dilation")
	if err != nil {
		return Spec{}, err
	}

	spec := Spec{
		Size:     resolvedSize,
		Stride:   resolvedStride,
		Dilation: resolvedDilation,
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Rank returns the spatial rank of the spec.
func (s Spec) Rank() int {
	return len(s.Size)
}

// EffectiveSize returns the extent the window covers on axis i once
// dilation is applied: (size-1)*dilation + 1.
func (s Spec) EffectiveSize(i int) int {
	return (s.Size[i]-1)*s.Dilation[i] + 1
}

// Validate checks that all window parameters are positive and that, on
// every axis, at most one of stride and dilation deviates from 1.
//
// The stride/dilation check runs once over all axes so the error can
// report both full vectors, whichever axis violates it.
func (s Spec) Validate() error {
	rank := len(s.Size)
	if rank == 0 {
		return Errorf("window: empty window spec")
	}
	if len(s.Stride) != rank || len(s.Dilation) != rank {
		return Errorf("window: size, stride and dilation must share rank: size=%v stride=%v dilation=%v",
			s.Size, s.Stride, s.Dilation)
	}
	for i := 0; i < rank; i++ {
		if s.Size[i] <= 0 {
			return Errorf("window: window size must be positive, got %v", s.Size)
		}
		if s.Stride[i] <= 0 {
			return Errorf("window: stride must be positive, got %v", s.Stride)
		}
		if s.Dilation[i] <= 0 {
			return Errorf("window: dilation must be positive, got %v", s.Dilation)
		}
	}
	for i := 0; i < rank; i++ {
		if s.Stride[i] > 1 && s.Dilation[i] > 1 {
			return Errorf("window: stride and dilation cannot both exceed 1: stride=%v dilation=%v",
				s.Stride, s.Dilation)
		}
	}
	return nil
}
