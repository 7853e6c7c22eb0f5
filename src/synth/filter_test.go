package synth

import (
	"math"
	"testing"
)

func sineBlock(freq, sr float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sr)
	}
	return out
}

func rms(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func filterRMS(kind int, cutoff, resonance, freq float64) float64 {
	const sr = 44100.0
	f := NewFilter(kind, cutoff, resonance)
	ctx := ContextFromFreq(sr, freq, 1)
	f.NoteOn(&ctx)
	out := sineBlock(freq, sr, 8192)
	f.Render(out, &ctx)
	// skip the transient at the start
	return rms(out[2048:])
}

func TestLowpassAttenuatesHighFrequencies(t *testing.T) {
	low := filterRMS(FilterLowpass, 1000, 0.707, 100)
	high := filterRMS(FilterLowpass, 1000, 0.707, 8000)
	if low < 0.6 {
		t.Fatalf("passband attenuated too much: rms %v", low)
	}
	if high > 0.1 {
		t.Fatalf("stopband leaked: rms %v", high)
	}
}

func TestHighpassAttenuatesLowFrequencies(t *testing.T) {
	low := filterRMS(FilterHighpass, 1000, 0.707, 100)
	high := filterRMS(FilterHighpass, 1000, 0.707, 8000)
	if high < 0.6 {
		t.Fatalf("passband attenuated too much: rms %v", high)
	}
	if low > 0.1 {
		t.Fatalf("stopband leaked: rms %v", low)
	}
}

func TestBandpassPeaksAtCutoff(t *testing.T) {
	center := filterRMS(FilterBandpass, 2000, 2, 2000)
	below := filterRMS(FilterBandpass, 2000, 2, 200)
	above := filterRMS(FilterBandpass, 2000, 2, 12000)
	if center < below || center < above {
		t.Fatalf("bandpass not peaked at center: %v vs %v / %v", center, below, above)
	}
}

func TestNotchRejectsCutoff(t *testing.T) {
	center := filterRMS(FilterNotch, 2000, 2, 2000)
	away := filterRMS(FilterNotch, 2000, 2, 200)
	if center > 0.3 {
		t.Fatalf("notch leaked at center: rms %v", center)
	}
	if away < 0.6 {
		t.Fatalf("notch attenuated away from center: rms %v", away)
	}
}

func TestFilterNoteOnResetsState(t *testing.T) {
	const sr = 44100.0
	f := NewFilter(FilterLowpass, 1200, 1)
	ctx := ContextFromFreq(sr, 440, 1)
	f.NoteOn(&ctx)
	first := sineBlock(440, sr, 1024)
	f.Render(first, &ctx)
	f.NoteOn(&ctx)
	second := sineBlock(440, sr, 1024)
	f.Render(second, &ctx)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("state not reset, sample %d differs", i)
		}
	}
}

func TestFilterImpulseResponseBounded(t *testing.T) {
	// quarter sample rate cutoff at maximum resonance: the ringing must
	// decay, not diverge
	const sr = 44100.0
	f := NewFilter(FilterLowpass, sr/4, maxResonance)
	ctx := ContextFromFreq(sr, 440, 1)
	f.NoteOn(&ctx)
	out := make([]float64, 65536)
	out[0] = 1
	f.Render(out, &ctx)
	for i, v := range out {
		if math.IsNaN(v) || math.Abs(v) > 100 {
			t.Fatalf("impulse response diverged at %d: %v", i, v)
		}
	}
	tail := rms(out[60000:])
	head := rms(out[:4096])
	if tail >= head {
		t.Fatalf("ringing not decaying: head rms %v, tail rms %v", head, tail)
	}
}

func TestFilterStableAtExtremes(t *testing.T) {
	// cutoff and resonance outside the sane range are clamped, and the
	// output must stay finite either way
	cases := []struct {
		cutoff, resonance float64
	}{
		{5, 0.707},
		{100000, 0.707},
		{1000, 0.01},
		{1000, 1000},
	}
	for _, c := range cases {
		f := NewFilter(FilterLowpass, c.cutoff, c.resonance)
		ctx := ContextFromFreq(44100, 440, 1)
		f.NoteOn(&ctx)
		out := sineBlock(440, 44100, 4096)
		f.Render(out, &ctx)
		for i, v := range out {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("cutoff %v q %v: sample %d not finite", c.cutoff, c.resonance, i)
			}
		}
	}
}
