package autodiff_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stride-ml/stride/internal/autodiff"
	"github.com/stride-ml/stride/internal/backend/cpu"
	"github.com/stride-ml/stride/internal/tensor"
	"github.com/stride-ml/stride/internal/window"
)

func mustDescriptor(t *testing.T, inSpatial, size, stride []int, pad window.Padding) *window.PoolDescriptor {
	t.Helper()
	spec, err := window.NewSpec(len(inSpatial), size, stride, nil)
	require.NoError(t, err)
	desc, err := window.ComputePoolInfo(window.Dims(inSpatial), spec, pad)
	require.NoError(t, err)
	return desc
}

func TestAutodiffBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	assert.Equal(t, "Autodiff(CPU)", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
}

func TestTape_Recording(t *testing.T) {
	tape := autodiff.NewGradientTape()

	assert.False(t, tape.IsRecording())

	tape.StartRecording()
	assert.True(t, tape.IsRecording())

	tape.StopRecording()
	assert.False(t, tape.IsRecording())
}

func TestTape_NotRecordingSkipsOps(t *testing.T) {
	backend := autodiff.New(cpu.New())

	a, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	_ = a.Add(b)
	assert.Equal(t, 0, backend.Tape().NumOps())
}

func TestTape_Clear(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	a, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	_ = a.Add(a)
	require.Equal(t, 1, backend.Tape().NumOps())

	backend.Tape().Clear()
	assert.Equal(t, 0, backend.Tape().NumOps())
	assert.True(t, backend.Tape().IsRecording(), "Clear must not change recording state")
}

func TestBackward_Add(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{4, 5, 6}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	z := x.Add(y)
	grads := autodiff.Backward(z, backend)

	assert.Equal(t, []float32{1, 1, 1}, grads[x.Raw()].AsFloat32())
	assert.Equal(t, []float32{1, 1, 1}, grads[y.Raw()].AsFloat32())
}

func TestBackward_MulAccumulates(t *testing.T) {
	// y = x*x, dy/dx = 2x via accumulation over both uses of x.
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{2, 3, 4}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	y := x.Mul(x)
	grads := autodiff.Backward(y, backend)

	assert.Equal(t, []float32{4, 6, 8}, grads[x.Raw()].AsFloat32())
}

func TestBackward_Sub(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{5, 7}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	z := x.Sub(y)
	grads := autodiff.Backward(z, backend)

	assert.Equal(t, []float32{1, 1}, grads[x.Raw()].AsFloat32())
	assert.Equal(t, []float32{-1, -1}, grads[y.Raw()].AsFloat32())
}

func TestBackward_Div(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{6}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{2}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	z := x.Div(y)
	grads := autodiff.Backward(z, backend)

	// d(x/y)/dx = 1/y, d(x/y)/dy = -x/y².
	assert.InDelta(t, 0.5, grads[x.Raw()].AsFloat32()[0], 1e-6)
	assert.InDelta(t, -1.5, grads[y.Raw()].AsFloat32()[0], 1e-6)
}

func TestBackward_Reshape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	y := x.Reshape(tensor.Shape{3, 2})
	grads := autodiff.Backward(y, backend)

	assert.Equal(t, tensor.Shape{2, 3}, grads[x.Raw()].Shape())
}

func TestBackward_MaxPool(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{1, 3, 2, 5}, tensor.Shape{1, 1, 4}, backend)
	require.NoError(t, err)

	desc := mustDescriptor(t, []int{4}, []int{2}, []int{2}, window.Valid())

	raw, err := backend.MaxPoolND(x.Raw(), desc)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 5}, raw.AsFloat32())
	require.Equal(t, 1, backend.Tape().NumOps())

	out := tensor.New[float32](raw, backend)
	grads := autodiff.Backward(out, backend)

	assert.Equal(t, []float32{0, 1, 0, 1}, grads[x.Raw()].AsFloat32())
}

func TestBackward_MaxPoolTieRoutesToFirstTap(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{7, 7}, tensor.Shape{1, 1, 2}, backend)
	require.NoError(t, err)

	desc := mustDescriptor(t, []int{2}, []int{2}, []int{2}, window.Valid())

	raw, err := backend.MaxPoolND(x.Raw(), desc)
	require.NoError(t, err)

	out := tensor.New[float32](raw, backend)
	grads := autodiff.Backward(out, backend)

	assert.Equal(t, []float32{1, 0}, grads[x.Raw()].AsFloat32())
}

func TestMaxPool_FailureLeavesTapeUntouched(t *testing.T) {
	mock := tensor.NewMockBackend()
	backend := autodiff.New(mock)
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	_ = x.Add(x)
	before := backend.Tape().NumOps()

	in, err := tensor.FromSlice([]float32{1, 3, 2, 5}, tensor.Shape{1, 1, 4}, backend)
	require.NoError(t, err)
	desc := mustDescriptor(t, []int{4}, []int{2}, []int{2}, window.Valid())

	kernelErr := errors.New("kernel launch failed")
	mock.PoolErr = kernelErr

	result, err := backend.MaxPoolND(in.Raw(), desc)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, kernelErr, "backend errors must pass through unchanged")
	assert.Equal(t, before, backend.Tape().NumOps())

	// Same call succeeds and records once the kernel recovers.
	mock.PoolErr = nil
	result, err = backend.MaxPoolND(in.Raw(), desc)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, before+1, backend.Tape().NumOps())
}

func TestBackward_DoesNotRecordGradientKernels(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{2, 3}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y := x.Mul(x)
	require.Equal(t, 1, backend.Tape().NumOps())

	_ = autodiff.Backward(y, backend)

	assert.Equal(t, 1, backend.Tape().NumOps())
	assert.True(t, backend.Tape().IsRecording())
}

func TestTape_ConcurrentRecord(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	a, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	const goroutines = 16
	const opsPerGoroutine = 25

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				_ = a.Add(b)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*opsPerGoroutine, backend.Tape().NumOps())
}

func TestChainedGradient(t *testing.T) {
	// z = (x + y) * x with x=3, y=2: dz/dx = 2x + y = 8, dz/dy = x = 3.
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float32{3}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{2}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	z := x.Add(y).Mul(x)
	grads := autodiff.Backward(z, backend)

	assert.InDelta(t, 8.0, grads[x.Raw()].AsFloat32()[0], 1e-6)
	assert.InDelta(t, 3.0, grads[y.Raw()].AsFloat32()[0], 1e-6)
}
