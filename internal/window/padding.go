package window

// PaddingMode selects how output sizes and pad amounts are derived.
type PaddingMode int

// Supported padding modes.
const (
	// ModeValid applies no padding; the output shrinks by the window's
	// effective extent.
	ModeValid PaddingMode = iota
	// ModeSame pads so that the output size equals ceil(input/stride).
	ModeSame
	// ModeExplicit pads symmetrically by a caller-supplied amount.
	ModeExplicit
)

// String returns a human-readable mode name.
func (m PaddingMode) String() string {
	switch m {
	case ModeValid:
		return "valid"
	case ModeSame:
		return "same"
	case ModeExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// RoundingMode resolves fractional output sizes under explicit padding.
type RoundingMode int

// Supported rounding modes.
const (
	// RoundNone rejects fractional output sizes with a ShapeError.
	RoundNone RoundingMode = iota
	// RoundFloor truncates fractional output sizes.
	RoundFloor
	// RoundNearest rounds to the nearest integer, halves rounding up.
	RoundNearest
	// RoundCeil rounds fractional output sizes up.
	RoundCeil
)

// String returns a human-readable rounding mode name.
func (r RoundingMode) String() string {
	switch r {
	case RoundNone:
		return "none"
	case RoundFloor:
		return "floor"
	case RoundNearest:
		return "round"
	case RoundCeil:
		return "ceil"
	default:
		return "unknown"
	}
}

// Padding is a tagged variant over the three padding policies.
//
// Pad and Rounding are only meaningful when Mode is ModeExplicit.
type Padding struct {
	Mode     PaddingMode
	Pad      int
	Rounding RoundingMode
}

// Valid returns the no-padding policy.
func Valid() Padding {
	return Padding{Mode: ModeValid}
}

// Same returns the size-preserving policy: output = ceil(input/stride),
// with any asymmetric pad amount going after the data (trailing side).
func Same() Padding {
	return Padding{Mode: ModeSame}
}

// Explicit returns a symmetric explicit-padding policy. pad must be
// non-negative; ComputePoolInfo rejects negative values.
func Explicit(pad int) Padding {
	return Padding{Mode: ModeExplicit, Pad: pad}
}

// WithRounding returns a copy of the padding with the given rounding
// mode. Rounding only applies to explicit padding with a fractional
// output size.
func (p Padding) WithRounding(r RoundingMode) Padding {
	p.Rounding = r
	return p
}

// PoolDescriptor is the fully resolved plan for one windowed-reduction
// call: the input spatial sizes, the window spec, and the derived
// output sizes and per-axis pad amounts.
//
// Descriptors are derived entirely from their inputs by ComputePoolInfo,
// computed once per operator call, handed to the backend, and then
// discarded. They are never mutated after construction.
type PoolDescriptor struct {
	InSize    Dims
	Spec      Spec
	Padding   Padding
	OutSize   Dims
	PadBefore Dims
	PadAfter  Dims
}

// ComputePoolInfo derives output sizes and pad amounts for a windowed
// reduction over the given input spatial sizes.
//
// Per axis, with wEff = (size-1)*dilation + 1:
//
//	valid:    out = floor((in - wEff)/stride) + 1, no padding
//	same:     out = ceil(in/stride)
//	          totalPad = max(0, (out-1)*stride + wEff - in)
//	          padBefore = totalPad/2, remainder goes after
//	explicit: padBefore = padAfter = pad
//	          out = (in + 2*pad - wEff)/stride + 1, resolved by the
//	          padding's rounding mode when fractional
//
// Every returned output size is a positive integer and every pad amount
// is non-negative; any parameter combination that cannot satisfy that
// yields a ShapeError.
func ComputePoolInfo(inSize Dims, spec Spec, pad Padding) (*PoolDescriptor, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	rank := spec.Rank()
	if len(inSize) != rank {
		return nil, Errorf("window: input has %d spatial axes, window spec has %d", len(inSize), rank)
	}
	for i, in := range inSize {
		if in <= 0 {
			return nil, Errorf("window: input sizes must be positive, got %v (axis %d)", inSize, i)
		}
	}
	if pad.Mode == ModeExplicit && pad.Pad < 0 {
		return nil, Errorf("window: explicit padding must be non-negative, got %d", pad.Pad)
	}

	desc := &PoolDescriptor{
		InSize:    inSize.Clone(),
		Spec:      spec,
		Padding:   pad,
		OutSize:   make(Dims, rank),
		PadBefore: make(Dims, rank),
		PadAfter:  make(Dims, rank),
	}

	for i := 0; i < rank; i++ {
		in := inSize[i]
		stride := spec.Stride[i]
		wEff := spec.EffectiveSize(i)

		switch pad.Mode {
		case ModeValid:
			if in < wEff {
				return nil, Errorf("window: effective window %d exceeds input size %d on axis %d (size=%v dilation=%v)",
					wEff, in, i, spec.Size, spec.Dilation)
			}
			desc.OutSize[i] = (in-wEff)/stride + 1

		case ModeSame:
			out := ceilDiv(in, stride)
			totalPad := (out-1)*stride + wEff - in
			if totalPad < 0 {
				totalPad = 0
			}
			desc.OutSize[i] = out
			desc.PadBefore[i] = totalPad / 2
			desc.PadAfter[i] = totalPad - totalPad/2

		case ModeExplicit:
			span := in + 2*pad.Pad - wEff
			if span < 0 {
				return nil, Errorf("window: effective window %d exceeds padded input size %d on axis %d (pad=%d)",
					wEff, in+2*pad.Pad, i, pad.Pad)
			}
			out, err := roundOutSize(span, stride, pad.Rounding)
			if err != nil {
				return nil, Errorf("window: fractional output size (%d+2*%d-%d)/%d+1 on axis %d requires a rounding mode",
					in, pad.Pad, wEff, stride, i)
			}
			desc.OutSize[i] = out
			desc.PadBefore[i] = pad.Pad
			desc.PadAfter[i] = pad.Pad

		default:
			return nil, Errorf("window: unknown padding mode %d", pad.Mode)
		}
	}
	return desc, nil
}

// roundOutSize resolves out = span/stride + 1, applying the rounding
// mode when span is not a multiple of stride. span is non-negative.
func roundOutSize(span, stride int, rounding RoundingMode) (int, error) {
	if span%stride == 0 {
		return span/stride + 1, nil
	}
	switch rounding {
	case RoundFloor:
		return span/stride + 1, nil
	case RoundCeil:
		return ceilDiv(span, stride) + 1, nil
	case RoundNearest:
		// Round half up: floor(span/stride + 1/2).
		return (2*span+stride)/(2*stride) + 1, nil
	default:
		return 0, Errorf("window: fractional output size without rounding mode")
	}
}

// ceilDiv returns ceil(a/b) for positive b and non-negative a.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
