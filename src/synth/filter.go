package synth

import "math"

// ----- Filter Kind ----- //

const (
	FilterLowpass = iota
	FilterHighpass
	FilterBandpass
	FilterNotch
)

// Resonance (Q) domain. The clamp sits between modulation input and
// coefficient computation so instability is prevented, not detected.
const (
	minResonance = 0.5
	maxResonance = 20.0
)

// ----- State-Variable Filter ----- //

// Filter is a topology-preserving-transform state-variable filter. One
// two-integrator update yields lowpass, highpass, bandpass and notch taps
// from the same state; the kind selects which tap is written out. Cutoff
// and resonance may change every block (they are modulation targets); the
// two coefficients are recomputed whenever either changes, which is cheap
// enough to run per block.
type Filter struct {
	kind      int
	cutoff    float64 // base cutoff Hz
	resonance float64 // base Q

	curCutoff    float64
	curResonance float64

	g, k      float64 // coefficients, valid for coeffRate
	coeffRate float64

	ic1eq, ic2eq float64 // integrator states
}

// NewFilter creates a filter of the given kind. Cutoff is in Hz, resonance
// is Q (clamped to the stable range at coefficient computation).
func NewFilter(kind int, cutoff, resonance float64) *Filter {
	return &Filter{
		kind:         kind,
		cutoff:       cutoff,
		resonance:    resonance,
		curCutoff:    cutoff,
		curResonance: resonance,
	}
}

// NewLowpass is shorthand for the classic subtractive-synthesis filter.
func NewLowpass(cutoff float64) *Filter {
	return NewFilter(FilterLowpass, cutoff, 0.707)
}

func (f *Filter) updateCoefficients(sampleRate float64) {
	cutoff := clampFloat(f.curCutoff, 20, 20000)
	ratio := cutoff / sampleRate
	if ratio > 0.49 {
		ratio = 0.49
	}
	q := clampFloat(f.curResonance, minResonance, maxResonance)
	f.g = math.Tan(math.Pi * ratio)
	f.k = 1 / q
	f.coeffRate = sampleRate
}

func (f *Filter) Render(out []float64, ctx *RenderContext) {
	if f.coeffRate != ctx.SampleRate {
		f.updateCoefficients(ctx.SampleRate)
	}
	g, k := f.g, f.k
	a1 := 1 / (1 + g*(g+k))
	a2 := g * a1
	a3 := g * a2
	ic1, ic2 := f.ic1eq, f.ic2eq
	for i := range out {
		in := out[i]
		v3 := in - ic2
		v1 := a1*ic1 + a2*v3
		v2 := ic2 + a2*ic1 + a3*v3
		ic1 = 2*v1 - ic1
		ic2 = 2*v2 - ic2
		switch f.kind {
		case FilterLowpass:
			out[i] = v2
		case FilterHighpass:
			out[i] = in - k*v1 - v2
		case FilterBandpass:
			out[i] = v1
		case FilterNotch:
			out[i] = in - k*v1
		}
	}
	f.ic1eq, f.ic2eq = ic1, ic2
}

// NoteOn clears the integrator state so a stolen or reused voice does not
// carry the previous note's ringing into the new one.
func (f *Filter) NoteOn(_ *RenderContext) {
	f.ic1eq = 0
	f.ic2eq = 0
	f.curCutoff = f.cutoff
	f.curResonance = f.resonance
	f.coeffRate = 0
}

func (f *Filter) NoteOff() {}

func (f *Filter) Finished() bool { return false }

// Param implements Modulatable for ParamFilterCutoff and
// ParamFilterResonance; both return the unmodulated base value.
func (f *Filter) Param(param int) float64 {
	switch param {
	case ParamFilterCutoff:
		return f.cutoff
	case ParamFilterResonance:
		return f.resonance
	}
	return 0
}

func (f *Filter) ApplyModulation(param int, base, mod float64) {
	switch param {
	case ParamFilterCutoff:
		f.curCutoff = clampFloat(base+mod, 20, 20000)
	case ParamFilterResonance:
		f.curResonance = clampFloat(base+mod, minResonance, maxResonance)
	}
	f.coeffRate = 0 // force recompute on next render
}
