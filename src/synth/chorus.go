package synth

import "math"

// ----- Chorus ----- //

// Chorus thickens the input by mixing in a copy read from a short delay
// line whose delay time wobbles around a 20ms center, swept by an internal
// sine phase. Rate is the sweep speed in Hz, depth the sweep width in ms.
type Chorus struct {
	line  *delayLine
	rate  float64 // Hz
	depth float64 // ms
	mix   float64

	curRate  float64
	curDepth float64
	curMix   float64

	phase float64
}

const chorusCenterMS = 20.0

func NewChorus(rate, depth, mix float64) *Chorus {
	c := &Chorus{
		line:  newDelayLine(),
		rate:  clampFloat(rate, 0.01, 10),
		depth: clampFloat(depth, 0, chorusCenterMS-1),
		mix:   clampFloat(mix, 0, 1),
	}
	c.curRate = c.rate
	c.curDepth = c.depth
	c.curMix = c.mix
	return c
}

func (c *Chorus) Render(out []float64, ctx *RenderContext) {
	inc := c.curRate / ctx.SampleRate
	for i := range out {
		dry := out[i]
		delayMS := chorusCenterMS + c.curDepth*math.Sin(2*math.Pi*c.phase)
		wet := c.line.readInterpolated(delayMS / 1000 * ctx.SampleRate)
		c.line.write(dry)
		out[i] = dry*(1-c.curMix) + wet*c.curMix
		c.phase += inc
		if c.phase >= 1 {
			c.phase -= 1
		}
	}
}

func (c *Chorus) NoteOn(_ *RenderContext) {
	c.line.reset()
	c.phase = 0
	c.curRate = c.rate
	c.curDepth = c.depth
	c.curMix = c.mix
}

func (c *Chorus) NoteOff() {}

func (c *Chorus) Finished() bool { return false }

func (c *Chorus) Param(param int) float64 {
	switch param {
	case ParamChorusRate:
		return c.rate
	case ParamChorusDepth:
		return c.depth
	case ParamChorusMix:
		return c.mix
	}
	return 0
}

func (c *Chorus) ApplyModulation(param int, base, mod float64) {
	switch param {
	case ParamChorusRate:
		c.curRate = clampFloat(base+mod, 0.01, 10)
	case ParamChorusDepth:
		c.curDepth = clampFloat(base+mod, 0, chorusCenterMS-1)
	case ParamChorusMix:
		c.curMix = clampFloat(base+mod, 0, 1)
	}
}
