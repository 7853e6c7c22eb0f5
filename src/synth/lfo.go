package synth

// ----- LFO ----- //

// LFO is a low-frequency oscillator intended as a modulation source. It
// reuses the Oscillator core but runs at a fixed sub-audio frequency,
// ignoring the note pitch in the context, and outputs a bipolar [-1,1]
// control signal. Route it with Modulate.
type LFO struct {
	osc  *Oscillator
	freq float64 // Hz, fixed
}

// NewLFO creates an LFO of the given wave kind at freq Hz. Typical rates
// are 0.1-20 Hz; negative rates are clamped to zero.
func NewLFO(kind int, freq float64) *LFO {
	if freq < 0 {
		freq = 0
	}
	return &LFO{osc: NewOscillator(kind), freq: freq}
}

func (l *LFO) Render(out []float64, ctx *RenderContext) {
	lfoCtx := RenderContext{
		SampleRate: ctx.SampleRate,
		Frequency:  l.freq,
		Amplitude:  1,
	}
	l.osc.Render(out, &lfoCtx)
}

// NoteOn restarts the LFO phase so modulation sweeps begin identically on
// every note.
func (l *LFO) NoteOn(ctx *RenderContext) { l.osc.NoteOn(ctx) }

func (l *LFO) NoteOff() {}

func (l *LFO) Finished() bool { return false }
