package synth

// ----- Graph Combinators ----- //

// Amplify multiplies its input by the output of a control node, typically an
// Envelope. The control node is rendered into a scratch buffer so both
// signals stay sample-accurate.
type Amplify struct {
	input   SignalNode
	control SignalNode
	scratch [MaxBlockSize]float64
}

// NewAmplify wraps input so its output is scaled sample-by-sample by
// control. A voice is finished when its amplitude control is finished.
func NewAmplify(input, control SignalNode) *Amplify {
	return &Amplify{input: input, control: control}
}

func (a *Amplify) Render(out []float64, ctx *RenderContext) {
	a.input.Render(out, ctx)
	ctl := a.scratch[:len(out)]
	a.control.Render(ctl, ctx)
	for i := range out {
		out[i] *= ctl[i]
	}
}

func (a *Amplify) NoteOn(ctx *RenderContext) {
	a.input.NoteOn(ctx)
	a.control.NoteOn(ctx)
}

func (a *Amplify) NoteOff() {
	a.input.NoteOff()
	a.control.NoteOff()
}

func (a *Amplify) Finished() bool {
	return a.input.Finished() || a.control.Finished()
}

// Through chains a processor after a source: the source fills the buffer,
// then each processor transforms it in place, in order.
type Through struct {
	source SignalNode
	chain  []SignalNode
}

// NewThrough builds a serial chain: source, then processors left to right.
func NewThrough(source SignalNode, processors ...SignalNode) *Through {
	return &Through{source: source, chain: processors}
}

func (t *Through) Render(out []float64, ctx *RenderContext) {
	t.source.Render(out, ctx)
	for _, p := range t.chain {
		p.Render(out, ctx)
	}
}

func (t *Through) NoteOn(ctx *RenderContext) {
	t.source.NoteOn(ctx)
	for _, p := range t.chain {
		p.NoteOn(ctx)
	}
}

func (t *Through) NoteOff() {
	t.source.NoteOff()
	for _, p := range t.chain {
		p.NoteOff()
	}
}

func (t *Through) Finished() bool {
	return t.source.Finished()
}

// Mix sums several generators into one signal, each scaled by its weight.
// No normalization is applied; callers pick weights that fit their clipping
// policy.
type Mix struct {
	inputs  []SignalNode
	weights []float64
	scratch [MaxBlockSize]float64
}

// NewMix sums inputs at unit weight.
func NewMix(inputs ...SignalNode) *Mix {
	weights := make([]float64, len(inputs))
	for i := range weights {
		weights[i] = 1
	}
	return &Mix{inputs: inputs, weights: weights}
}

// NewWeightedMix sums inputs with per-input weights. Missing weights
// default to 1, extras are ignored.
func NewWeightedMix(weights []float64, inputs ...SignalNode) *Mix {
	m := NewMix(inputs...)
	copy(m.weights, weights)
	return m
}

func (m *Mix) Render(out []float64, ctx *RenderContext) {
	for i := range out {
		out[i] = 0
	}
	tmp := m.scratch[:len(out)]
	for k, in := range m.inputs {
		in.Render(tmp, ctx)
		w := m.weights[k]
		for i := range out {
			out[i] += w * tmp[i]
		}
	}
}

func (m *Mix) NoteOn(ctx *RenderContext) {
	for _, in := range m.inputs {
		in.NoteOn(ctx)
	}
}

func (m *Mix) NoteOff() {
	for _, in := range m.inputs {
		in.NoteOff()
	}
}

// Finished reports true once every input has finished.
func (m *Mix) Finished() bool {
	for _, in := range m.inputs {
		if !in.Finished() {
			return false
		}
	}
	return true
}

// Gain scales its input by a fixed factor. Handy for taming a Mix of
// several oscillators.
type Gain struct {
	input  SignalNode
	factor float64
}

func NewGain(input SignalNode, factor float64) *Gain {
	return &Gain{input: input, factor: factor}
}

func (g *Gain) Render(out []float64, ctx *RenderContext) {
	g.input.Render(out, ctx)
	for i := range out {
		out[i] *= g.factor
	}
}

func (g *Gain) NoteOn(ctx *RenderContext) { g.input.NoteOn(ctx) }
func (g *Gain) NoteOff()                  { g.input.NoteOff() }
func (g *Gain) Finished() bool            { return g.input.Finished() }
