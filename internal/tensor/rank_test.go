package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stride-ml/stride/internal/window"
)

// TestLiftRank_AlreadyCanonical tests that canonical-rank tensors pass
// through untouched.
func TestLiftRank_AlreadyCanonical(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3, 4, 4, 4}, Float32, CPU)
	require.NoError(t, err)

	lifted, wasLifted, err := LiftRank(raw, 5)
	require.NoError(t, err)
	assert.False(t, wasLifted)
	assert.Same(t, raw, lifted)
}

// TestLiftRank_BatchImplicit tests lifting a rank-(R-1) tensor.
func TestLiftRank_BatchImplicit(t *testing.T) {
	raw, err := NewRaw(Shape{3, 4, 4, 4}, Float32, CPU)
	require.NoError(t, err)

	lifted, wasLifted, err := LiftRank(raw, 5)
	require.NoError(t, err)
	assert.True(t, wasLifted)
	assert.Equal(t, Shape{1, 3, 4, 4, 4}, lifted.Shape())
	// Metadata-only: the buffer is shared.
	assert.Equal(t, &raw.Data()[0], &lifted.Data()[0])
}

// TestLiftRank_InvalidRank tests rejection of other ranks.
func TestLiftRank_InvalidRank(t *testing.T) {
	raw, err := NewRaw(Shape{4, 4, 4}, Float32, CPU)
	require.NoError(t, err)

	_, _, err = LiftRank(raw, 5)
	require.Error(t, err)
	assert.True(t, window.IsShapeError(err))
}

// TestLowerRank_RoundTrip tests lowerRank(liftRank(t)) == t for
// rank-(R-1) inputs: identical shape and content.
func TestLowerRank_RoundTrip(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3, 3, 3}, Float32, CPU)
	require.NoError(t, err)
	data := raw.AsFloat32()
	for i := range data {
		data[i] = float32(i)
	}

	lifted, wasLifted, err := LiftRank(raw, 5)
	require.NoError(t, err)
	lowered, err := LowerRank(lifted, wasLifted)
	require.NoError(t, err)

	assert.Equal(t, raw.Shape(), lowered.Shape())
	assert.Equal(t, raw.AsFloat32(), lowered.AsFloat32())
}

// TestLowerRank_Identity tests that wasLifted=false is the identity.
func TestLowerRank_Identity(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3, 4, 4, 4}, Float32, CPU)
	require.NoError(t, err)

	lowered, err := LowerRank(raw, false)
	require.NoError(t, err)
	assert.Same(t, raw, lowered)
}

// TestLowerRank_BadLeadingAxis tests the size-1 assertion.
func TestLowerRank_BadLeadingAxis(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3, 4, 4, 4}, Float32, CPU)
	require.NoError(t, err)

	_, err = LowerRank(raw, true)
	require.Error(t, err)
	assert.True(t, window.IsShapeError(err))
}
