package tensor

import "github.com/stride-ml/stride/internal/window"

// LiftRank promotes t to canonicalRank by inserting a synthetic leading
// batch axis of size 1. A tensor already at canonicalRank is returned
// unchanged with lifted=false; a tensor at canonicalRank-1 is lifted
// (sharing the buffer, metadata-only) with lifted=true. Any other rank
// is a shape error.
//
// This is how batch-implicit inputs (e.g. a 4D [C, D, H, W] volume fed
// to a volumetric op whose canonical form is 5D [N, C, D, H, W]) enter
// the pipeline.
func LiftRank(t *RawTensor, canonicalRank int) (*RawTensor, bool, error) {
	rank := len(t.Shape())
	switch rank {
	case canonicalRank:
		return t, false, nil
	case canonicalRank - 1:
		lifted := make(Shape, 0, canonicalRank)
		lifted = append(lifted, 1)
		lifted = append(lifted, t.Shape()...)
		return t.withShape(lifted), true, nil
	default:
		return nil, false, window.Errorf("tensor: rank %d input, want %d or %d (shape %v)",
			rank, canonicalRank, canonicalRank-1, t.Shape())
	}
}

// LowerRank undoes LiftRank: when lifted is true the synthetic leading
// axis is dropped (its size must be 1), otherwise t is returned as is.
func LowerRank(t *RawTensor, lifted bool) (*RawTensor, error) {
	if !lifted {
		return t, nil
	}
	shape := t.Shape()
	if len(shape) == 0 || shape[0] != 1 {
		return nil, window.Errorf("tensor: cannot drop leading axis of shape %v, size must be 1", shape)
	}
	return t.withShape(shape[1:].Clone()), nil
}
