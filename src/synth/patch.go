package synth

// ----- Preset Patches ----- //

// Presets maps patch names to constructors. main looks up the -patch flag
// here; tests iterate it to exercise every preset graph.
var Presets = map[string]Patch{
	"lead":  LeadPatch,
	"pad":   PadPatch,
	"pluck": PluckPatch,
	"bass":  BassPatch,
	"kick":  KickPatch,
	"snare": SnarePatch,
	"hihat": HihatPatch,
}

// LeadPatch is two detuned saws through a resonant lowpass swept by an LFO,
// with a touch of distortion.
func LeadPatch() SignalNode {
	oscs := NewGain(NewMix(
		NewOscillator(WaveSaw),
		NewOscillator(WaveSaw).WithDetune(8),
	), 0.5)
	filter := NewFilter(FilterLowpass, 2200, 2)
	chain := NewThrough(oscs, filter, NewDistortion(2.5, 0.3))
	swept := NewModulate(chain, filter, ParamFilterCutoff, NewLFO(WaveSine, 5), 600)
	return NewAmplify(swept, NewEnvelope(0.01, 0.15, 0.7, 0.25))
}

// PadPatch is a slow-attack stack of detuned saws with chorus, a long
// delay tail and hall reverb.
func PadPatch() SignalNode {
	oscs := NewWeightedMix([]float64{0.4, 0.3, 0.3},
		NewOscillator(WaveSaw),
		NewOscillator(WaveSaw).WithDetune(-12),
		NewOscillator(WaveSaw).WithDetune(12),
	)
	chain := NewThrough(oscs,
		NewFilter(FilterLowpass, 1400, 0.8),
		NewChorus(0.4, 6, 0.5),
		NewDelay(380, 0.45, 0.3),
		HallReverb(0.35),
	)
	return NewAmplify(chain, NewEnvelope(0.9, 0.4, 0.8, 1.8))
}

// PluckPatch is a square wave with a fast decay and a filter that closes
// with the amplitude, giving a plucked-string feel.
func PluckPatch() SignalNode {
	filter := NewFilter(FilterLowpass, 900, 1.2)
	chain := NewThrough(NewOscillator(WaveSquare), filter)
	swept := NewModulate(chain, filter, ParamFilterCutoff,
		NewEnvelope(0.001, 0.3, 0, 0.3), 2400)
	return NewAmplify(swept, NewEnvelope(0.001, 0.35, 0, 0.35))
}

// BassPatch layers a square with a sub oscillator an octave down.
func BassPatch() SignalNode {
	oscs := NewGain(NewMix(
		NewOscillator(WaveSquare),
		NewOscillator(WaveSine).WithDetune(-1200),
	), 0.5)
	chain := NewThrough(oscs,
		NewFilter(FilterLowpass, 500, 1.5),
		NewDistortion(3, 0.25),
	)
	return NewAmplify(chain, NewEnvelope(0.005, 0.12, 0.8, 0.2))
}

// KickPatch is a fixed 50Hz sine whose pitch is kicked up by a fast decay
// envelope, the classic analog kick recipe.
func KickPatch() SignalNode {
	osc := NewOscillator(WaveSine).WithFrequency(50)
	swept := NewModulate(osc, osc, ParamOscFrequency,
		NewEnvelope(0.001, 0.08, 0, 0.08), 120)
	return NewAmplify(swept, NewEnvelope(0.001, 0.25, 0, 0.25))
}

// SnarePatch mixes noise with a 180Hz tone, bandpassed for snap.
func SnarePatch() SignalNode {
	body := NewWeightedMix([]float64{0.6, 0.4},
		NewOscillator(WaveNoise),
		NewOscillator(WaveSine).WithFrequency(180),
	)
	chain := NewThrough(body,
		NewFilter(FilterBandpass, 1800, 0.9),
		RoomReverb(0.2),
	)
	return NewAmplify(chain, NewEnvelope(0.001, 0.18, 0, 0.12))
}

// HihatPatch is highpassed noise with a very short envelope.
func HihatPatch() SignalNode {
	chain := NewThrough(NewOscillator(WaveNoise),
		NewFilter(FilterHighpass, 7000, 0.9))
	return NewAmplify(chain, NewEnvelope(0.001, 0.06, 0, 0.05))
}
