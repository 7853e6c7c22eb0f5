package synth

import "math"

// ----- Render Context ----- //

const baseFreq = 440.0 // A4

// MaxBlockSize is the largest number of samples a single render pass
// handles at once. Scratch buffers inside nodes are sized to this at
// construction so rendering never allocates. Longer output buffers are
// processed in chunks of this size.
const MaxBlockSize = 4096

// NoteToFreq converts a MIDI note number to a frequency in Hz (A4 = 69 = 440Hz).
func NoteToFreq(note int) float64 {
	return baseFreq * math.Pow(2, float64(note-69)/12)
}

// RenderContext carries the per-block parameters every node reads while
// rendering. It is immutable for the duration of one render call and owned
// by the caller.
type RenderContext struct {
	SampleRate float64 // Hz, > 0
	Frequency  float64 // Hz, pitch to render
	Amplitude  float64 // 0-1
}

// ContextFromNote builds a context from a MIDI note and velocity
// (keyboard/sequencer use). Note and velocity are clamped to 0-127 here so
// the render path never sees an out-of-range value.
func ContextFromNote(sampleRate float64, note int, velocity int) RenderContext {
	return RenderContext{
		SampleRate: sampleRate,
		Frequency:  NoteToFreq(clampInt(note, 0, 127)),
		Amplitude:  float64(clampInt(velocity, 0, 127)) / 127.0,
	}
}

// ContextFromFreq builds a context from an explicit frequency (metronome,
// drum machine and other non-musical uses), bypassing note-number
// conversion entirely.
func ContextFromFreq(sampleRate float64, frequency float64, amplitude float64) RenderContext {
	if frequency < 0 {
		frequency = 0
	}
	return RenderContext{
		SampleRate: sampleRate,
		Frequency:  frequency,
		Amplitude:  clampFloat(amplitude, 0, 1),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
