//go:build windows

// Copyright 2025 Stride ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated tensor
// operations.
//
// WebGPU is a cross-platform graphics and compute API. The backend runs
// the forward pooling kernel and element-wise arithmetic on the GPU;
// the pooling gradient kernel is CPU-only for now.
//
// Example:
//
//	import (
//	    "github.com/stride-ml/stride/backend/webgpu"
//	    "github.com/stride-ml/stride/tensor"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    x := tensor.Randn[float32](tensor.Shape{8, 4, 16, 16, 16}, gpu)
//	    _ = x
//	}
package webgpu

import (
	internalwebgpu "github.com/stride-ml/stride/internal/backend/webgpu"
	"github.com/stride-ml/stride/tensor"
)

// Backend represents the WebGPU backend implementation for
// GPU-accelerated tensor operations.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend
// ready for tensor operations. Call Release() when done to free GPU
// resources.
//
// Returns an error if WebGPU initialization fails (e.g. no compatible
// GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    backend = autodiff.New(gpu)
//	} else {
//	    backend = autodiff.New(cpu.New())
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
