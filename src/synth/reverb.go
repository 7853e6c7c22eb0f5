package synth

// ----- Reverb ----- //

// Buffer capacities cover the longest delay at 192kHz, so construction
// never depends on the sample rate.
const (
	maxCombSamples    = 9600 // 50ms
	maxAllpassSamples = 1920 // 10ms
)

// combFilter is a feedback comb with a one-pole lowpass in the feedback
// path for high-frequency damping.
type combFilter struct {
	buf         [maxCombSamples]float64
	delay       int
	writePos    int
	feedback    float64
	damp        float64
	filterState float64
}

func (c *combFilter) setDelay(samples int) {
	c.delay = clampInt(samples, 1, maxCombSamples)
	c.writePos = c.writePos % c.delay
}

func (c *combFilter) process(in float64) float64 {
	out := c.buf[c.writePos]
	c.filterState = out*(1-c.damp) + c.filterState*c.damp
	c.buf[c.writePos] = in + c.filterState*c.feedback
	c.writePos++
	if c.writePos >= c.delay {
		c.writePos = 0
	}
	return out
}

// allpassFilter passes all frequencies at equal gain while smearing phase,
// which thickens the comb output without coloring it.
type allpassFilter struct {
	buf      [maxAllpassSamples]float64
	delay    int
	writePos int
	feedback float64
}

func (a *allpassFilter) setDelay(samples int) {
	a.delay = clampInt(samples, 1, maxAllpassSamples)
	a.writePos = a.writePos % a.delay
}

func (a *allpassFilter) process(in float64) float64 {
	delayed := a.buf[a.writePos]
	out := -a.feedback*in + delayed
	a.buf[a.writePos] = in + a.feedback*out
	a.writePos++
	if a.writePos >= a.delay {
		a.writePos = 0
	}
	return out
}

// Comb delay times are mutually prime so the echoes do not pile up on a
// common period; allpass times are much shorter.
var (
	combDelaysMS    = [4]float64{29.7, 37.1, 41.1, 43.7}
	allpassDelaysMS = [2]float64{5.0, 1.7}
)

// Reverb is a Schroeder room simulator: four parallel combs summed into two
// series allpasses. roomSize scales the comb feedback (0 small, 1 hall),
// damping the high-frequency absorption, mix the dry/wet blend.
type Reverb struct {
	combs     [4]combFilter
	allpasses [2]allpassFilter

	roomSize float64
	damping  float64
	mix      float64

	curRoomSize float64
	curDamping  float64
	curMix      float64

	delayRate float64 // sample rate the delay lengths were computed for
}

func NewReverb(roomSize, damping, mix float64) *Reverb {
	r := &Reverb{
		roomSize: clampFloat(roomSize, 0, 1),
		damping:  clampFloat(damping, 0, 1),
		mix:      clampFloat(mix, 0, 1),
	}
	r.curRoomSize = r.roomSize
	r.curDamping = r.damping
	r.curMix = r.mix
	for i := range r.combs {
		r.combs[i].delay = 1
	}
	for i := range r.allpasses {
		r.allpasses[i].delay = 1
		r.allpasses[i].feedback = 0.5
	}
	return r
}

// RoomReverb is a short, tight small-room preset.
func RoomReverb(mix float64) *Reverb { return NewReverb(0.3, 0.5, mix) }

// HallReverb is a balanced medium hall.
func HallReverb(mix float64) *Reverb { return NewReverb(0.6, 0.4, mix) }

// PlateReverb is a long, smooth decay.
func PlateReverb(mix float64) *Reverb { return NewReverb(0.85, 0.3, mix) }

func (r *Reverb) configure(sampleRate float64) {
	for i := range r.combs {
		r.combs[i].setDelay(int(combDelaysMS[i] / 1000 * sampleRate))
	}
	for i := range r.allpasses {
		r.allpasses[i].setDelay(int(allpassDelaysMS[i] / 1000 * sampleRate))
	}
	r.delayRate = sampleRate
}

func (r *Reverb) applyParams() {
	// feedback 0.7 to 0.98, always below 1 so the tail decays
	feedback := 0.7 + r.curRoomSize*0.28
	for i := range r.combs {
		r.combs[i].feedback = feedback
		r.combs[i].damp = r.curDamping
	}
}

func (r *Reverb) Render(out []float64, ctx *RenderContext) {
	if r.delayRate != ctx.SampleRate {
		r.configure(ctx.SampleRate)
	}
	r.applyParams()
	for i := range out {
		dry := out[i]
		wet := 0.0
		for c := range r.combs {
			wet += r.combs[c].process(dry)
		}
		wet *= 0.25
		for a := range r.allpasses {
			wet = r.allpasses[a].process(wet)
		}
		out[i] = dry*(1-r.curMix) + wet*r.curMix
	}
}

// NoteOn intentionally leaves the filter buffers alone: the room does not
// empty because a new note starts, so the tail rings across notes. Only the
// modulated parameters snap back to their base values.
func (r *Reverb) NoteOn(_ *RenderContext) {
	r.curRoomSize = r.roomSize
	r.curDamping = r.damping
	r.curMix = r.mix
}

func (r *Reverb) NoteOff() {}

func (r *Reverb) Finished() bool { return false }

// Param implements Modulatable for ParamReverbRoomSize, ParamReverbDamping
// and ParamReverbMix.
func (r *Reverb) Param(param int) float64 {
	switch param {
	case ParamReverbRoomSize:
		return r.roomSize
	case ParamReverbDamping:
		return r.damping
	case ParamReverbMix:
		return r.mix
	}
	return 0
}

func (r *Reverb) ApplyModulation(param int, base, mod float64) {
	switch param {
	case ParamReverbRoomSize:
		r.curRoomSize = clampFloat(base+mod, 0, 1)
	case ParamReverbDamping:
		r.curDamping = clampFloat(base+mod, 0, 1)
	case ParamReverbMix:
		r.curMix = clampFloat(base+mod, 0, 1)
	}
}
