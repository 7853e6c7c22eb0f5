package synth

// ----- ADSR Envelope ----- //

const (
	stageIdle = iota
	stageAttack
	stageDecay
	stageSustain
	stageRelease
)

/*
  1 +     x
    |    / \
  s +   /   x------x
    |  /            \
  0 +-/--------------\---
    |a   |d  |       |r |
*/

// Envelope is a linear-ramp ADSR generator. The output level is continuous
// across every stage transition; Idle is both the initial state and the
// fully-released terminal state.
type Envelope struct {
	attack  float64 // seconds
	decay   float64 // seconds
	sustain float64 // 0-1
	release float64 // seconds

	stage      int
	level      float64
	stageStart float64 // level at entry into Attack or Release
	stagePos   int     // samples spent in the current stage
}

// NewEnvelope creates an ADSR envelope. Times are in seconds, sustain is a
// level ratio in [0,1]. Negative times and out-of-range sustain are clamped
// here so the render path never sees them.
func NewEnvelope(attack, decay, sustain, release float64) *Envelope {
	if attack < 0 {
		attack = 0
	}
	if decay < 0 {
		decay = 0
	}
	if release < 0 {
		release = 0
	}
	return &Envelope{
		attack:  attack,
		decay:   decay,
		sustain: clampFloat(sustain, 0, 1),
		release: release,
	}
}

func (e *Envelope) Render(out []float64, ctx *RenderContext) {
	for i := range out {
		out[i] = e.step(ctx.SampleRate)
	}
}

func (e *Envelope) step(sampleRate float64) float64 {
	switch e.stage {
	case stageAttack:
		samples := e.attack * sampleRate
		if samples < 1 {
			e.level = 1
		} else {
			e.level = e.stageStart + (1-e.stageStart)*float64(e.stagePos)/samples
		}
		e.stagePos++
		if e.level >= 1 {
			e.level = 1
			e.enter(stageDecay)
		}
	case stageDecay:
		samples := e.decay * sampleRate
		if samples < 1 {
			e.level = e.sustain
		} else {
			e.level = 1 - (1-e.sustain)*float64(e.stagePos)/samples
		}
		e.stagePos++
		if e.level <= e.sustain {
			e.level = e.sustain
			e.enter(stageSustain)
		}
	case stageSustain:
		e.level = e.sustain
	case stageRelease:
		samples := e.release * sampleRate
		if samples < 1 {
			e.level = 0
		} else {
			e.level = e.stageStart * (1 - float64(e.stagePos)/samples)
		}
		e.stagePos++
		if e.level <= 0 {
			e.level = 0
			e.enter(stageIdle)
		}
	default:
		e.level = 0
	}
	return e.level
}

func (e *Envelope) enter(stage int) {
	e.stage = stage
	e.stagePos = 0
}

// NoteOn restarts Attack. A retrigger while the envelope is still sounding
// ramps from the current level rather than snapping to zero, so there is no
// audible jump.
func (e *Envelope) NoteOn(_ *RenderContext) {
	e.stageStart = e.level
	e.enter(stageAttack)
}

// NoteOff begins Release from the current level. Calling it while already
// releasing or idle does nothing.
func (e *Envelope) NoteOff() {
	if e.stage == stageRelease || e.stage == stageIdle {
		return
	}
	e.stageStart = e.level
	e.enter(stageRelease)
}

// Finished reports true once the envelope has fully released back to Idle.
func (e *Envelope) Finished() bool { return e.stage == stageIdle }

// Level exposes the current output level for tests and metering.
func (e *Envelope) Level() float64 { return e.level }
