package synth

import "math"

// ----- Wave Kind ----- //

const (
	WaveSine = iota
	WaveSaw
	WaveSquare
	WaveTriangle
	WaveNoise
)

// ----- Oscillator ----- //

// Oscillator is a phase-accumulator waveform generator. The phase stays in
// [0,1) and wraps every sample; the phase increment is recomputed from the
// context frequency each block, never allocated.
//
// Saw and square are band-limited with a polynomial step correction
// (polyBLEP) so they do not alias audibly near Nyquist; triangle leakily
// integrates the band-limited square, which rolls its harmonics off as
// 1/n² like the analytic triangle. Noise comes from a per-voice seeded
// xorshift generator so renders are reproducible given the same seed.
type Oscillator struct {
	kind      int
	phase     float64 // [0,1)
	fixedFreq float64 // 0 = track ctx.Frequency
	curFreq   float64 // effective frequency while fixedFreq is set (modulation target)
	detune    float64 // cents
	triState  float64 // triangle integrator
	seed      uint64
	rngState  uint64
}

// NewOscillator creates an oscillator of the given wave kind that tracks
// the note pitch from the RenderContext.
func NewOscillator(kind int) *Oscillator {
	return &Oscillator{kind: kind, seed: 0x9e3779b97f4a7c15, rngState: 0x9e3779b97f4a7c15}
}

// WithFrequency fixes the oscillator at freq Hz, ignoring the note pitch.
// Used for drums and other sounds that should not track the keyboard. The
// fixed frequency is the ParamOscFrequency modulation target.
func (o *Oscillator) WithFrequency(freq float64) *Oscillator {
	o.fixedFreq = freq
	o.curFreq = freq
	return o
}

// WithDetune offsets the pitch by cents (100 cents = 1 semitone). Layer
// detuned copies with Mix for thick supersaw-style sounds.
func (o *Oscillator) WithDetune(cents float64) *Oscillator {
	o.detune = cents
	return o
}

// WithSeed sets the noise generator seed. Distinct voices get distinct
// seeds via the patch factory; the same seed reproduces the same render.
func (o *Oscillator) WithSeed(seed int64) *Oscillator {
	if seed == 0 {
		seed = 1
	}
	o.seed = uint64(seed)
	o.rngState = o.seed
	return o
}

func (o *Oscillator) Render(out []float64, ctx *RenderContext) {
	freq := ctx.Frequency
	if o.fixedFreq != 0 {
		freq = o.curFreq
	}
	if o.detune != 0 {
		freq *= math.Pow(2, o.detune/1200)
	}
	inc := freq / ctx.SampleRate
	for i := range out {
		out[i] = o.value(inc)
		o.phase += inc
		o.phase -= math.Floor(o.phase)
	}
}

func (o *Oscillator) value(inc float64) float64 {
	p := o.phase
	switch o.kind {
	case WaveSine:
		return math.Sin(2 * math.Pi * p)
	case WaveSaw:
		return 2*p - 1 - polyBLEP(p, inc)
	case WaveSquare:
		return squareBLEP(p, inc)
	case WaveTriangle:
		// leaky integration of the band-limited square; the integrator
		// scales by the increment, the 4 restores unit amplitude
		o.triState = inc*squareBLEP(p, inc) + (1-inc)*o.triState
		return 4 * o.triState
	case WaveNoise:
		return o.nextNoise()
	}
	return 0
}

func squareBLEP(p, inc float64) float64 {
	v := 1.0
	if p >= 0.5 {
		v = -1.0
	}
	half := p + 0.5
	half -= math.Floor(half)
	return v + polyBLEP(p, inc) - polyBLEP(half, inc)
}

// polyBLEP smooths the step discontinuity at a waveform edge. t is the
// phase in [0,1), dt the per-sample phase increment.
func polyBLEP(t, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

// xorshift64; cheap enough for the render path and allocation-free to
// reseed on NoteOn, unlike math/rand.
func (o *Oscillator) nextNoise() float64 {
	x := o.rngState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	o.rngState = x
	return float64(x>>11)/float64(1<<52) - 1
}

// NoteOn restarts the waveform at phase zero and reseeds the noise state so
// every note renders identically.
func (o *Oscillator) NoteOn(_ *RenderContext) {
	o.phase = 0
	o.triState = 0
	o.rngState = o.seed
	if o.fixedFreq != 0 {
		o.curFreq = o.fixedFreq
	}
}

func (o *Oscillator) NoteOff() {}

// Finished is always false; a bare oscillator runs forever. Voice
// retirement comes from an Envelope further up the tree.
func (o *Oscillator) Finished() bool { return false }

// Param implements Modulatable for ParamOscFrequency and ParamOscDetune.
func (o *Oscillator) Param(param int) float64 {
	switch param {
	case ParamOscFrequency:
		if o.fixedFreq != 0 {
			return o.fixedFreq
		}
		return baseFreq
	case ParamOscDetune:
		return o.detune
	}
	return 0
}

func (o *Oscillator) ApplyModulation(param int, base, mod float64) {
	switch param {
	case ParamOscFrequency:
		o.curFreq = clampFloat(base+mod, 20, 20000)
	case ParamOscDetune:
		o.detune = clampFloat(base+mod, -200, 200)
	}
}
