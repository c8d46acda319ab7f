// Copyright 2025 Stride ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/stride-ml/stride/internal/tensor"

// Backend defines the interface that all compute backends must
// implement. Backends handle the actual computation for tensor
// operations.
//
// Implementations:
//   - backend/cpu: pure Go kernels
//   - backend/webgpu: cross-platform GPU compute via WebGPU
//
// Decorator backends for additional functionality:
//   - autodiff: automatic differentiation (wraps any backend)
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend = tensor.Backend

// MockBackend is a naive reference backend for tests. Optimized
// backends are verified against it; setting PoolErr injects kernel
// failures for dispatch tests.
type MockBackend = tensor.MockBackend

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return tensor.NewMockBackend()
}
