package nn

import (
	"github.com/stride-ml/stride/internal/tensor"
	"github.com/stride-ml/stride/internal/window"
)

// PoolConfig holds the optional parameters of a pooling call.
//
// The zero value gives standard non-overlapping pooling: stride equal
// to the window, dilation 1, no padding.
type PoolConfig struct {
	// Stride per spatial axis. A single value broadcasts to every axis.
	// Defaults to the window size.
	Stride []int

	// Dilation per spatial axis. A single value broadcasts to every
	// axis. Defaults to 1. Stride and dilation cannot both exceed 1 on
	// the same call.
	Dilation []int

	// Padding policy: window.Valid() (the zero value), window.Same(),
	// or window.Explicit(p) optionally combined with a rounding mode.
	Padding window.Padding
}

// MaxPoolND applies max pooling over the trailing spatialRank axes of
// the input.
//
// The input must have spatialRank+2 axes ([batch, channels, spatial...])
// or spatialRank+1 axes (no batch axis); an unbatched input is lifted
// with a size-1 batch axis for the kernel call and lowered again before
// returning, so the output rank always matches the input rank.
//
// The window (and stride/dilation in cfg) may be given as a single
// value that broadcasts to every spatial axis, or as one value per
// axis. All shape and parameter validation happens before the backend
// is invoked; backend kernel failures are returned unchanged.
func MaxPoolND[T tensor.DType, B tensor.Backend](input *tensor.Tensor[T, B], spatialRank int, kernel []int, cfg PoolConfig) (*tensor.Tensor[T, B], error) {
	spec, err := window.NewSpec(spatialRank, kernel, cfg.Stride, cfg.Dilation)
	if err != nil {
		return nil, err
	}

	backend := input.Backend()

	raw, lifted, err := tensor.LiftRank(input.Raw(), spatialRank+2)
	if err != nil {
		return nil, err
	}
	desc, err := window.ComputePoolInfo(raw.Shape().Spatial(), spec, cfg.Padding)
	if err != nil {
		return nil, err
	}

	if lifted {
		// Route the lift through the backend so a recording backend
		// links the unbatched tensor to the pooled output on its tape.
		raw = backend.Reshape(input.Raw(), raw.Shape())
	}

	out, err := backend.MaxPoolND(raw, desc)
	if err != nil {
		return nil, err
	}

	if lifted {
		out = backend.Reshape(out, out.Shape()[1:].Clone())
	}
	return tensor.New[T](out, backend), nil
}
