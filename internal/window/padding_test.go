package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, rank int, size, stride, dilation []int) Spec {
	t.Helper()
	spec, err := NewSpec(rank, size, stride, dilation)
	require.NoError(t, err)
	return spec
}

// TestComputePoolInfo_Valid tests valid-mode output sizes and zero padding.
func TestComputePoolInfo_Valid(t *testing.T) {
	tests := []struct {
		name    string
		in      Dims
		size    []int
		stride  []int
		wantOut Dims
	}{
		// out = (in - w)/stride + 1
		{"8/2/1", Dims{8}, []int{2}, []int{1}, Dims{7}},
		{"10/3/2", Dims{10}, []int{3}, []int{2}, Dims{4}},
		{"volumetric", Dims{8, 8, 8}, []int{2}, []int{2}, Dims{4, 4, 4}},
		{"mixed axes", Dims{9, 7, 5}, []int{3, 2, 1}, []int{2, 2, 1}, Dims{4, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := mustSpec(t, len(tt.in), tt.size, tt.stride, nil)
			desc, err := ComputePoolInfo(tt.in, spec, Valid())
			require.NoError(t, err)

			assert.Equal(t, tt.wantOut, desc.OutSize)
			assert.Equal(t, make(Dims, len(tt.in)), desc.PadBefore)
			assert.Equal(t, make(Dims, len(tt.in)), desc.PadAfter)
		})
	}
}

// TestComputePoolInfo_ValidTooSmall tests that a window larger than the
// input is rejected in valid mode.
func TestComputePoolInfo_ValidTooSmall(t *testing.T) {
	spec := mustSpec(t, 1, []int{5}, []int{1}, nil)
	_, err := ComputePoolInfo(Dims{4}, spec, Valid())
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
}

// TestComputePoolInfo_ValidDilation tests effective window sizes under
// dilation: wEff = (w-1)*d + 1.
func TestComputePoolInfo_ValidDilation(t *testing.T) {
	// w=3, d=2 → wEff=5; out = (10-5)/1 + 1 = 6.
	spec := mustSpec(t, 1, []int{3}, []int{1}, []int{2})
	desc, err := ComputePoolInfo(Dims{10}, spec, Valid())
	require.NoError(t, err)
	assert.Equal(t, Dims{6}, desc.OutSize)

	// wEff=5 > 4 must fail.
	_, err = ComputePoolInfo(Dims{4}, spec, Valid())
	assert.True(t, IsShapeError(err))
}

// TestComputePoolInfo_Same tests same-mode output sizes and pad split.
func TestComputePoolInfo_Same(t *testing.T) {
	tests := []struct {
		name       string
		in         int
		size       int
		stride     int
		wantOut    int
		wantBefore int
		wantAfter  int
	}{
		// out = ceil(in/stride); total = (out-1)*stride + w - in,
		// before = total/2, extra after.
		{"10/3/2", 10, 3, 2, 5, 0, 1},
		{"7/2/2", 7, 2, 2, 4, 0, 1},
		{"5/3/1", 5, 3, 1, 5, 1, 1},
		{"6/4/1", 6, 4, 1, 6, 1, 2},
		{"stride covers window", 8, 2, 4, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := mustSpec(t, 1, []int{tt.size}, []int{tt.stride}, nil)
			desc, err := ComputePoolInfo(Dims{tt.in}, spec, Same())
			require.NoError(t, err)

			assert.Equal(t, Dims{tt.wantOut}, desc.OutSize)
			assert.Equal(t, Dims{tt.wantBefore}, desc.PadBefore)
			assert.Equal(t, Dims{tt.wantAfter}, desc.PadAfter)
		})
	}
}

// TestComputePoolInfo_SameAlwaysPositive tests that same mode yields a
// positive output for any positive input size.
func TestComputePoolInfo_SameAlwaysPositive(t *testing.T) {
	for in := 1; in <= 12; in++ {
		for stride := 1; stride <= 4; stride++ {
			spec := mustSpec(t, 1, []int{3}, []int{stride}, nil)
			desc, err := ComputePoolInfo(Dims{in}, spec, Same())
			require.NoError(t, err, "in=%d stride=%d", in, stride)
			assert.Equal(t, ceilDiv(in, stride), desc.OutSize[0], "in=%d stride=%d", in, stride)
			assert.Positive(t, desc.OutSize[0])
		}
	}
}

// TestComputePoolInfo_ExplicitExact tests explicit padding with an
// integral output size.
func TestComputePoolInfo_ExplicitExact(t *testing.T) {
	// (6 + 2*1 - 2)/2 + 1 = 4, exact.
	spec := mustSpec(t, 1, []int{2}, []int{2}, nil)
	desc, err := ComputePoolInfo(Dims{6}, spec, Explicit(1))
	require.NoError(t, err)

	assert.Equal(t, Dims{4}, desc.OutSize)
	assert.Equal(t, Dims{1}, desc.PadBefore)
	assert.Equal(t, Dims{1}, desc.PadAfter)
}

// TestComputePoolInfo_ExplicitFractional tests rounding-mode handling of
// fractional output sizes.
func TestComputePoolInfo_ExplicitFractional(t *testing.T) {
	// (7 + 2*1 - 2)/2 + 1 = 4.5, fractional.
	spec := mustSpec(t, 1, []int{2}, []int{2}, nil)

	_, err := ComputePoolInfo(Dims{7}, spec, Explicit(1))
	require.Error(t, err, "fractional output without rounding mode must fail")
	assert.True(t, IsShapeError(err))

	tests := []struct {
		rounding RoundingMode
		want     int
	}{
		{RoundFloor, 4},
		{RoundCeil, 5},
		{RoundNearest, 5}, // 4.5 rounds half up
	}
	for _, tt := range tests {
		t.Run(tt.rounding.String(), func(t *testing.T) {
			desc, err := ComputePoolInfo(Dims{7}, spec, Explicit(1).WithRounding(tt.rounding))
			require.NoError(t, err)
			assert.Equal(t, Dims{tt.want}, desc.OutSize)
		})
	}
}

// TestComputePoolInfo_ExplicitDeterministic tests that identical inputs
// always produce identical descriptors.
func TestComputePoolInfo_ExplicitDeterministic(t *testing.T) {
	spec := mustSpec(t, 3, []int{3}, []int{2}, nil)
	pad := Explicit(1).WithRounding(RoundFloor)

	first, err := ComputePoolInfo(Dims{9, 10, 11}, spec, pad)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		desc, err := ComputePoolInfo(Dims{9, 10, 11}, spec, pad)
		require.NoError(t, err)
		assert.Equal(t, first.OutSize, desc.OutSize)
		assert.Equal(t, first.PadBefore, desc.PadBefore)
		assert.Equal(t, first.PadAfter, desc.PadAfter)
	}
}

// TestComputePoolInfo_ExplicitNearestBelowHalf tests half-up rounding
// below the midpoint.
func TestComputePoolInfo_ExplicitNearestBelowHalf(t *testing.T) {
	// (8 + 0 - 2)/4 + 1 = 2.5 → 3 (half up); (9+0-2)/4+1 = 2.75 → 3;
	// (7+0-2)/4+1 = 2.25 → 2.
	spec := mustSpec(t, 1, []int{2}, []int{4}, nil)

	desc, err := ComputePoolInfo(Dims{8}, spec, Explicit(0).WithRounding(RoundNearest))
	require.NoError(t, err)
	assert.Equal(t, Dims{3}, desc.OutSize)

	desc, err = ComputePoolInfo(Dims{7}, spec, Explicit(0).WithRounding(RoundNearest))
	require.NoError(t, err)
	assert.Equal(t, Dims{2}, desc.OutSize)
}

// TestComputePoolInfo_Errors tests remaining rejection paths.
func TestComputePoolInfo_Errors(t *testing.T) {
	spec := mustSpec(t, 2, []int{2}, []int{1}, nil)

	_, err := ComputePoolInfo(Dims{4}, spec, Valid())
	assert.True(t, IsShapeError(err), "rank mismatch")

	_, err = ComputePoolInfo(Dims{4, 0}, spec, Valid())
	assert.True(t, IsShapeError(err), "non-positive input size")

	_, err = ComputePoolInfo(Dims{4, 4}, spec, Explicit(-1))
	assert.True(t, IsShapeError(err), "negative explicit pad")

	bad := Spec{Size: Dims{2, 2}, Stride: Dims{2, 2}, Dilation: Dims{2, 2}}
	_, err = ComputePoolInfo(Dims{4, 4}, bad, Valid())
	assert.True(t, IsShapeError(err), "stride/dilation invariant enforced before computation")
}

// TestComputePoolInfo_DescriptorIndependence verifies the descriptor
// does not alias the caller's input slice.
func TestComputePoolInfo_DescriptorIndependence(t *testing.T) {
	in := Dims{8, 8, 8}
	spec := mustSpec(t, 3, []int{2}, []int{2}, nil)
	desc, err := ComputePoolInfo(in, spec, Valid())
	require.NoError(t, err)

	in[0] = 99
	assert.Equal(t, Dims{8, 8, 8}, desc.InSize)
}
