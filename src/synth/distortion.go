package synth

import "math"

// ----- Distortion ----- //

const (
	DistortionSoft = iota // tanh
	DistortionHard        // clip at +-1
	DistortionFold        // wavefolder
)

// Distortion is a waveshaper. Drive scales the input before shaping; mix
// blends the shaped signal with the dry input. Soft is a tanh curve, hard
// clips at unity, fold reflects peaks back into range.
type Distortion struct {
	kind  int
	drive float64
	mix   float64

	curDrive float64
	curMix   float64
}

func NewDistortion(drive, mix float64) *Distortion {
	return NewDistortionKind(DistortionSoft, drive, mix)
}

func NewDistortionKind(kind int, drive, mix float64) *Distortion {
	d := &Distortion{
		kind:  kind,
		drive: clampFloat(drive, 1, 100),
		mix:   clampFloat(mix, 0, 1),
	}
	d.curDrive = d.drive
	d.curMix = d.mix
	return d
}

func (d *Distortion) shape(x float64) float64 {
	switch d.kind {
	case DistortionHard:
		return clampFloat(x, -1, 1)
	case DistortionFold:
		// reflect into [-1,1]; x+1 folded over a period of 4
		x = math.Mod(x+1, 4)
		if x < 0 {
			x += 4
		}
		if x > 2 {
			x = 4 - x
		}
		return x - 1
	default:
		return math.Tanh(x)
	}
}

func (d *Distortion) Render(out []float64, _ *RenderContext) {
	for i := range out {
		dry := out[i]
		wet := d.shape(dry * d.curDrive)
		out[i] = dry*(1-d.curMix) + wet*d.curMix
	}
}

func (d *Distortion) NoteOn(_ *RenderContext) {
	d.curDrive = d.drive
	d.curMix = d.mix
}

func (d *Distortion) NoteOff() {}

func (d *Distortion) Finished() bool { return false }

func (d *Distortion) Param(param int) float64 {
	switch param {
	case ParamDistortionDrive:
		return d.drive
	case ParamDistortionMix:
		return d.mix
	}
	return 0
}

func (d *Distortion) ApplyModulation(param int, base, mod float64) {
	switch param {
	case ParamDistortionDrive:
		d.curDrive = clampFloat(base+mod, 1, 100)
	case ParamDistortionMix:
		d.curMix = clampFloat(base+mod, 0, 1)
	}
}
