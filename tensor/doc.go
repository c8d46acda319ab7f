// Copyright 2025 Stride ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the Stride
// framework.
//
// # Overview
//
// Tensors are the fundamental data structure in Stride. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - Refcounted buffers with copy-on-write semantics
//   - Device abstraction (CPU, WebGPU)
//   - Rank normalization for operators with a canonical layout
//
// # Basic Usage
//
//	import (
//	    "github.com/stride-ml/stride/tensor"
//	    "github.com/stride-ml/stride/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    _ = z
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType
// constraint:
//   - float16.Float16, float32, float64 (floating-point)
//   - int32, int64 (signed integers)
package tensor
