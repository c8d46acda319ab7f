// Copyright 2025 Stride ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package window exposes the shared shape machinery for sliding-window
// operators: scalar-or-vector parameter resolution, window specs, and
// padding/output-size inference.
//
// Example:
//
//	spec, err := window.NewSpec(3, []int{2}, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	desc, err := window.ComputePoolInfo(window.Dims{16, 16, 16}, spec, window.Same())
package window

import (
	"github.com/stride-ml/stride/internal/window"
)

// Dims holds one integer per spatial axis.
type Dims = window.Dims

// Resolve normalizes a scalar-or-vector parameter to one value per
// axis. A single value broadcasts to every axis; a vector must have
// exactly rank entries.
func Resolve(vals []int, rank int, name string) (Dims, error) {
	return window.Resolve(vals, rank, name)
}

// Spec describes the sliding window of one operator call.
type Spec = window.Spec

// NewSpec resolves scalar-or-vector window parameters against the
// given spatial rank and validates the resulting spec. stride == nil
// defaults to the window size, dilation == nil to 1.
func NewSpec(rank int, size, stride, dilation []int) (Spec, error) {
	return window.NewSpec(rank, size, stride, dilation)
}

// Padding is a tagged variant over the padding policies.
type Padding = window.Padding

// PaddingMode selects how output sizes and pad amounts are derived.
type PaddingMode = window.PaddingMode

// Padding modes.
const (
	ModeValid    PaddingMode = window.ModeValid
	ModeSame     PaddingMode = window.ModeSame
	ModeExplicit PaddingMode = window.ModeExplicit
)

// RoundingMode resolves fractional output sizes under explicit padding.
type RoundingMode = window.RoundingMode

// Rounding modes.
const (
	RoundNone    RoundingMode = window.RoundNone
	RoundFloor   RoundingMode = window.RoundFloor
	RoundNearest RoundingMode = window.RoundNearest
	RoundCeil    RoundingMode = window.RoundCeil
)

// Valid returns the no-padding policy.
func Valid() Padding {
	return window.Valid()
}

// Same returns the size-preserving policy.
func Same() Padding {
	return window.Same()
}

// Explicit returns a symmetric explicit-padding policy.
func Explicit(pad int) Padding {
	return window.Explicit(pad)
}

// PoolDescriptor is the fully resolved plan for one windowed-reduction
// call.
type PoolDescriptor = window.PoolDescriptor

// ComputePoolInfo derives output sizes and pad amounts for a windowed
// reduction over the given input spatial sizes.
func ComputePoolInfo(inSize Dims, spec Spec, pad Padding) (*PoolDescriptor, error) {
	return window.ComputePoolInfo(inSize, spec, pad)
}

// ShapeError is the typed error returned for invalid shapes and window
// parameters.
type ShapeError = window.ShapeError

// IsShapeError reports whether err is a ShapeError.
func IsShapeError(err error) bool {
	return window.IsShapeError(err)
}
