package synth

import "math"

// ----- Delay Line ----- //

// maxDelaySamples sizes every delay line at construction: two seconds at
// 96kHz. The buffer never grows on the render path.
const maxDelaySamples = 192000

// delayLine is a fixed-capacity circular sample buffer with a fractional
// read position (linear interpolation) for modulated delay times.
type delayLine struct {
	buf      []float64
	writePos int
}

func newDelayLine() *delayLine {
	return &delayLine{buf: make([]float64, maxDelaySamples)}
}

// readInterpolated reads delaySamples behind the write position, blending
// the two neighboring samples. The position is clamped to the buffer.
func (d *delayLine) readInterpolated(delaySamples float64) float64 {
	delaySamples = clampFloat(delaySamples, 1, maxDelaySamples-2)
	whole := int(delaySamples)
	frac := delaySamples - float64(whole)
	pos1 := (d.writePos + maxDelaySamples - whole) % maxDelaySamples
	pos2 := (pos1 + maxDelaySamples - 1) % maxDelaySamples
	return d.buf[pos1]*(1-frac) + d.buf[pos2]*frac
}

func (d *delayLine) write(sample float64) {
	d.buf[d.writePos] = sample
	d.writePos++
	if d.writePos >= maxDelaySamples {
		d.writePos = 0
	}
}

func (d *delayLine) reset() {
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.writePos = 0
}

// ----- Delay Node ----- //

// Delay is an echo effect: a delay line plus feedback and dry/wet mix. The
// feedback coefficient stays below 1 so the stored energy is bounded. The
// delay time is a modulation target; to keep modulated time click-free the
// effective time ramps across each block instead of jumping.
type Delay struct {
	line     *delayLine
	delayMS  float64 // base delay time
	feedback float64 // [0, 0.95]
	mix      float64 // [0,1] dry/wet

	curDelayMS  float64
	curFeedback float64
	curMix      float64

	prevDelaySamples float64
	firstBlock       bool
}

// NewDelay creates a delay effect. delayMS is the delay time in
// milliseconds, feedback the echo regeneration (clamped below 1 for
// stability), mix the dry/wet balance.
func NewDelay(delayMS, feedback, mix float64) *Delay {
	d := &Delay{
		line:       newDelayLine(),
		delayMS:    clampFloat(delayMS, 0, 1000*float64(maxDelaySamples-2)/96000),
		feedback:   clampFloat(feedback, 0, 0.95),
		mix:        clampFloat(mix, 0, 1),
		firstBlock: true,
	}
	d.curDelayMS = d.delayMS
	d.curFeedback = d.feedback
	d.curMix = d.mix
	return d
}

func (d *Delay) Render(out []float64, ctx *RenderContext) {
	target := d.curDelayMS / 1000 * ctx.SampleRate
	if d.firstBlock {
		d.prevDelaySamples = target
		d.firstBlock = false
	}
	step := 0.0
	if len(out) > 0 {
		step = (target - d.prevDelaySamples) / float64(len(out))
	}
	delaySamples := d.prevDelaySamples
	for i := range out {
		dry := out[i]
		wet := d.line.readInterpolated(delaySamples)
		d.line.write(dry + wet*d.curFeedback)
		out[i] = dry*(1-d.curMix) + wet*d.curMix
		delaySamples += step
	}
	d.prevDelaySamples = target
}

// NoteOn clears the buffer so a reused voice does not replay the previous
// note's echoes.
func (d *Delay) NoteOn(_ *RenderContext) {
	d.line.reset()
	d.curDelayMS = d.delayMS
	d.curFeedback = d.feedback
	d.curMix = d.mix
	d.firstBlock = true
}

func (d *Delay) NoteOff() {}

func (d *Delay) Finished() bool { return false }

// Param implements Modulatable for ParamDelayTime (ms), ParamDelayFeedback
// and ParamDelayMix.
func (d *Delay) Param(param int) float64 {
	switch param {
	case ParamDelayTime:
		return d.delayMS
	case ParamDelayFeedback:
		return d.feedback
	case ParamDelayMix:
		return d.mix
	}
	return 0
}

func (d *Delay) ApplyModulation(param int, base, mod float64) {
	switch param {
	case ParamDelayTime:
		d.curDelayMS = math.Max(base+mod, 0)
	case ParamDelayFeedback:
		d.curFeedback = clampFloat(base+mod, 0, 0.95)
	case ParamDelayMix:
		d.curMix = clampFloat(base+mod, 0, 1)
	}
}
