// Copyright 2025 Stride ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU backend for tensor operations.
//
// The CPU backend implements every operation in pure Go: element-wise
// arithmetic for all supported dtypes, windowed max pooling over one to
// three spatial axes with stride, dilation and padding, and the
// matching gradient kernel.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Randn[float32](tensor.Shape{8, 4, 16, 16, 16}, backend)
//	pool := nn.NewMaxPool3D([]int{2}, nn.PoolConfig{}, backend)
//	y := pool.Forward(x) // [8, 4, 8, 8, 8]
package cpu
