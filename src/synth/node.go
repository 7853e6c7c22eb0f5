package synth

// ----- Signal Node ----- //

// SignalNode is the capability every generator, processor and combinator
// satisfies. A node tree is built once at patch-construction time and then
// only rendered; Render must not allocate, block or panic for any context
// built through ContextFromNote/ContextFromFreq.
//
// Generators (Oscillator, Envelope, LFO) overwrite out; processors
// (Filter, Delay, Distortion, Chorus) transform out in place, treating its
// current contents as their input signal.
type SignalNode interface {
	// Render overwrites or transforms len(out) samples.
	Render(out []float64, ctx *RenderContext)
	// NoteOn resets internal phase/stage state to the start of a new note.
	NoteOn(ctx *RenderContext)
	// NoteOff begins the release where applicable. No-op for stateless
	// generators.
	NoteOff()
	// Finished reports that the node will keep producing all-zero or
	// no-further-change output. The voice pool uses it to retire voices.
	Finished() bool
}

// ----- Modulation Targets ----- //

// Parameter identifiers for Modulate routing. Each node documents which of
// these it answers to; unknown parameters are ignored.
const (
	ParamNone = iota
	ParamOscFrequency
	ParamOscDetune
	ParamFilterCutoff
	ParamFilterResonance
	ParamDelayTime
	ParamDelayFeedback
	ParamDelayMix
	ParamDistortionDrive
	ParamDistortionMix
	ParamChorusRate
	ParamChorusDepth
	ParamChorusMix
	ParamReverbRoomSize
	ParamReverbDamping
	ParamReverbMix
)

// Modulatable is implemented by nodes whose parameters can be driven by a
// Modulate combinator. Param returns the unmodulated base value;
// ApplyModulation installs base+mod as the effective value, clamped to the
// parameter's valid domain.
type Modulatable interface {
	Param(param int) float64
	ApplyModulation(param int, base, mod float64)
}

// Patch builds one voice's complete node tree. The engine calls it once
// per pool slot at construction; it is never called on the render path.
type Patch func() SignalNode
