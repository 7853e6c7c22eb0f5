package synth

// ----- Modulation ----- //

// Modulate routes a modulator node (usually an LFO or an Envelope) onto one
// parameter of a carrier node. The modulator runs at block rate: it is
// rendered once per Render call and its block average, scaled by amount, is
// added to the carrier's base parameter value before the carrier renders.
type Modulate struct {
	carrier   SignalNode
	target    Modulatable
	param     int
	modulator SignalNode
	amount    float64
	base      float64
	scratch   [MaxBlockSize]float64
}

// NewModulate wires modulator onto param of target with the given depth.
// carrier is the node to render afterwards; it is usually target itself but
// may be a chain containing it. The target's current parameter value is
// captured as the modulation base.
func NewModulate(carrier SignalNode, target Modulatable, param int, modulator SignalNode, amount float64) *Modulate {
	return &Modulate{
		carrier:   carrier,
		target:    target,
		param:     param,
		modulator: modulator,
		amount:    amount,
		base:      target.Param(param),
	}
}

func (m *Modulate) Render(out []float64, ctx *RenderContext) {
	tmp := m.scratch[:len(out)]
	m.modulator.Render(tmp, ctx)
	sum := 0.0
	for _, v := range tmp {
		sum += v
	}
	avg := 0.0
	if len(tmp) > 0 {
		avg = sum / float64(len(tmp))
	}
	m.target.ApplyModulation(m.param, m.base, avg*m.amount)
	m.carrier.Render(out, ctx)
}

func (m *Modulate) NoteOn(ctx *RenderContext) {
	m.modulator.NoteOn(ctx)
	m.carrier.NoteOn(ctx)
	m.base = m.target.Param(m.param)
}

func (m *Modulate) NoteOff() {
	m.modulator.NoteOff()
	m.carrier.NoteOff()
}

func (m *Modulate) Finished() bool {
	return m.carrier.Finished()
}
