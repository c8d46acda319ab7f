package nn

import (
	"fmt"

	"github.com/stride-ml/stride/internal/tensor"
	"github.com/stride-ml/stride/internal/window"
)

// MaxPool3D is a volumetric (3D) max pooling layer.
//
// Max pooling reduces spatial dimensions by taking the maximum value in
// each window. MaxPool3D has no learnable parameters.
//
// Input shape:  [batch, channels, depth, height, width], or
// [channels, depth, height, width] for a single unbatched sample.
// Output shape matches the input rank, with spatial sizes derived from
// the window, stride, dilation and padding.
//
// Example:
//
//	// 2x2x2 pooling with stride 2 (halves every spatial axis)
//	pool := nn.NewMaxPool3D([]int{2}, nn.PoolConfig{}, backend)
//
//	input := tensor.Randn[float32](tensor.Shape{8, 4, 16, 16, 16}, backend)
//	output := pool.Forward(input) // [8, 4, 8, 8, 8]
type MaxPool3D[B tensor.Backend] struct {
	kernel  []int
	cfg     PoolConfig
	backend B
}

// NewMaxPool3D creates a volumetric max pooling layer.
//
// kernel is the window size: a single value broadcasts to all three
// spatial axes, or give one value per axis. cfg carries stride,
// dilation and padding; its zero value means non-overlapping pooling
// with no padding.
//
// Window parameters are validated here; invalid ones panic, matching
// the constructor contract of the other layers.
func NewMaxPool3D[B tensor.Backend](kernel []int, cfg PoolConfig, backend B) *MaxPool3D[B] {
	if _, err := window.NewSpec(3, kernel, cfg.Stride, cfg.Dilation); err != nil {
		panic(fmt.Sprintf("maxpool3d: %v", err))
	}

	return &MaxPool3D[B]{
		kernel:  kernel,
		cfg:     cfg,
		backend: backend,
	}
}

// Forward performs the forward pass.
//
// Input: [batch, channels, depth, height, width] or
// [channels, depth, height, width].
func (m *MaxPool3D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out, err := MaxPoolND(input, 3, m.kernel, m.cfg)
	if err != nil {
		panic(fmt.Sprintf("maxpool3d: %v", err))
	}
	return out
}

// Parameters returns all trainable parameters (empty for MaxPool3D).
func (m *MaxPool3D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (m *MaxPool3D[B]) String() string {
	return fmt.Sprintf("MaxPool3D(kernel=%v, stride=%v, dilation=%v, padding=%s)",
		m.kernel, m.cfg.Stride, m.cfg.Dilation, m.cfg.Padding.Mode)
}
