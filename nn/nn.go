// Copyright 2025 Stride ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network operator surface: pooling
// layers and the functional pooling entry point.
package nn

import (
	"github.com/stride-ml/stride/internal/nn"
	"github.com/stride-ml/stride/internal/tensor"
)

// Module interface defines the common interface for all neural network
// modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// PoolConfig holds the optional parameters of a pooling call: stride,
// dilation and padding. The zero value gives standard non-overlapping
// pooling.
type PoolConfig = nn.PoolConfig

// MaxPoolND applies max pooling over the trailing spatialRank axes of
// the input. See the layer types for the common 2D and 3D cases.
func MaxPoolND[T tensor.DType, B tensor.Backend](input *tensor.Tensor[T, B], spatialRank int, kernel []int, cfg PoolConfig) (*tensor.Tensor[T, B], error) {
	return nn.MaxPoolND(input, spatialRank, kernel, cfg)
}

// Layers

// MaxPool3D represents a volumetric max pooling layer.
type MaxPool3D[B tensor.Backend] = nn.MaxPool3D[B]

// NewMaxPool3D creates a new volumetric max pooling layer.
//
// Example:
//
//	backend := cpu.New()
//	pool := nn.NewMaxPool3D([]int{2}, nn.PoolConfig{}, backend)
func NewMaxPool3D[B tensor.Backend](kernel []int, cfg PoolConfig, backend B) *MaxPool3D[B] {
	return nn.NewMaxPool3D(kernel, cfg, backend)
}

// MaxPool2D represents a 2D max pooling layer.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

// NewMaxPool2D creates a new 2D max pooling layer.
//
// Example:
//
//	backend := cpu.New()
//	pool := nn.NewMaxPool2D(2, 2, backend) // 2x2 kernel, stride 2
func NewMaxPool2D[B tensor.Backend](kernelSize, stride int, backend B) *MaxPool2D[B] {
	return nn.NewMaxPool2D(kernelSize, stride, backend)
}
