package synth

import (
	"math"
	"testing"
)

// modTarget records the modulated value it is told to apply.
type modTarget struct {
	constNode
	base    float64
	applied float64
	calls   int
}

func (m *modTarget) Param(param int) float64 { return m.base }

func (m *modTarget) ApplyModulation(param int, base, mod float64) {
	m.applied = base + mod
	m.calls++
}

func TestModulateAppliesBlockAverage(t *testing.T) {
	ctx := ContextFromFreq(44100, 440, 1)
	target := &modTarget{base: 1000}
	mod := NewModulate(target, target, ParamFilterCutoff, &constNode{value: 0.5}, 200)

	out := make([]float64, 128)
	mod.Render(out, &ctx)

	if target.calls != 1 {
		t.Fatalf("modulation applied %d times per block, want 1", target.calls)
	}
	// constant modulator at 0.5, amount 200: base + 0.5*200
	if math.Abs(target.applied-1100) > 1e-9 {
		t.Fatalf("applied %v, want 1100", target.applied)
	}
}

func TestModulatePerBlockUpdate(t *testing.T) {
	ctx := ContextFromFreq(44100, 440, 1)
	target := &modTarget{base: 1000}
	mod := NewModulate(target, target, ParamFilterCutoff, &constNode{value: 1}, 50)
	for i := 0; i < 4; i++ {
		mod.Render(make([]float64, 64), &ctx)
	}
	if target.calls != 4 {
		t.Fatalf("expected one update per block, got %d over 4 blocks", target.calls)
	}
}

func TestModulateRebasesOnNoteOn(t *testing.T) {
	ctx := ContextFromFreq(44100, 440, 1)
	target := &modTarget{base: 500}
	mod := NewModulate(target, target, ParamFilterCutoff, &constNode{value: 1}, 100)

	target.base = 800 // parameter changed before the next note
	mod.NoteOn(&ctx)
	mod.Render(make([]float64, 32), &ctx)
	if math.Abs(target.applied-900) > 1e-9 {
		t.Fatalf("applied %v, want rebased 900", target.applied)
	}
}

func TestModulateFilterCutoffWithLFO(t *testing.T) {
	// end to end: a slow LFO sweeping a lowpass changes the output level
	// between blocks while everything stays finite
	const sr = 44100.0
	filter := NewFilter(FilterLowpass, 800, 1)
	osc := NewOscillator(WaveSaw)
	chain := NewThrough(osc, filter)
	mod := NewModulate(chain, filter, ParamFilterCutoff, NewLFO(WaveSine, 2), 600)
	ctx := ContextFromFreq(sr, 440, 1)
	mod.NoteOn(&ctx)

	out := make([]float64, 1024)
	for block := 0; block < 40; block++ {
		mod.Render(out, &ctx)
		for i, v := range out {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("block %d sample %d not finite", block, i)
			}
		}
	}
}
