package synth

// ----- Voice ----- //

type voiceState int

const (
	voiceFree voiceState = iota
	voiceActive
	voiceReleasing
)

// voice is one polyphony slot: a signal graph plus the bookkeeping the
// engine needs for allocation and stealing. startFrame records the engine
// frame counter at the last noteOn so older voices can be found without a
// clock.
type voice struct {
	node       SignalNode
	state      voiceState
	note       int
	startFrame uint64
	ctx        RenderContext
}

func (v *voice) noteOn(sampleRate float64, note, velocity int, frame uint64) {
	v.ctx = ContextFromNote(sampleRate, note, velocity)
	v.note = note
	v.state = voiceActive
	v.startFrame = frame
	v.node.NoteOn(&v.ctx)
}

func (v *voice) noteOff() {
	if v.state != voiceActive {
		return
	}
	v.state = voiceReleasing
	v.node.NoteOff()
}

// render mixes the voice into out, scaled by the note velocity. The shared
// scratch block is cleared first so a graph whose root is a processor reads
// silence, not the previous voice's samples. A releasing voice whose graph
// reports Finished afterwards returns to the free pool.
func (v *voice) render(out, scratch []float64) {
	buf := scratch[:len(out)]
	for i := range buf {
		buf[i] = 0
	}
	v.node.Render(buf, &v.ctx)
	for i := range out {
		out[i] += buf[i] * v.ctx.Amplitude
	}
	if v.state == voiceReleasing && v.node.Finished() {
		v.state = voiceFree
	}
}
