package synth

import (
	"math"
	"testing"
)

func TestCombFilterEchoes(t *testing.T) {
	var c combFilter
	c.setDelay(10)
	c.feedback = 0.5

	if out := c.process(1); math.Abs(out) > 1e-12 {
		t.Fatalf("comb output before the delay elapsed: %v", out)
	}
	for i := 0; i < 9; i++ {
		c.process(0)
	}
	if echo := c.process(0); math.Abs(echo) < 0.4 {
		t.Fatalf("no echo after the delay: %v", echo)
	}
}

func TestAllpassPreservesEnergy(t *testing.T) {
	var a allpassFilter
	a.setDelay(5)
	a.feedback = 0.5

	energyIn, energyOut := 0.0, 0.0
	for i := 0; i < 100; i++ {
		in := 0.0
		if i < 10 {
			in = 1
		}
		out := a.process(in)
		energyIn += in * in
		energyOut += out * out
	}
	if energyOut < energyIn*0.8 {
		t.Fatalf("allpass lost energy: in %v out %v", energyIn, energyOut)
	}
}

func TestReverbProducesTail(t *testing.T) {
	r := NewReverb(0.5, 0.5, 1) // fully wet
	ctx := ContextFromFreq(48000, 440, 1)
	r.NoteOn(&ctx)

	impulse := []float64{1}
	r.Render(impulse, &ctx)

	// longest comb is ~44ms, so the tail must show within a few blocks
	tailEnergy := 0.0
	buf := make([]float64, 1024)
	for block := 0; block < 10; block++ {
		for i := range buf {
			buf[i] = 0
		}
		r.Render(buf, &ctx)
		for _, v := range buf {
			tailEnergy += v * v
		}
	}
	if tailEnergy < 0.01 {
		t.Fatalf("no reverb tail, energy %v", tailEnergy)
	}
}

func TestReverbDryMix(t *testing.T) {
	r := NewReverb(0.5, 0.5, 0) // fully dry
	ctx := ContextFromFreq(48000, 440, 1)
	r.NoteOn(&ctx)
	in := sineBlock(440, 48000, 512)
	out := append([]float64(nil), in...)
	r.Render(out, &ctx)
	for i := range out {
		if out[i] != in[i] {
			t.Fatalf("dry mix altered sample %d", i)
		}
	}
}

func TestReverbStableAtMaxRoomSize(t *testing.T) {
	r := NewReverb(1, 0, 1)
	ctx := ContextFromFreq(48000, 440, 1)
	r.NoteOn(&ctx)
	buf := make([]float64, 1024)
	for block := 0; block < 20; block++ {
		for i := range buf {
			buf[i] = 0.1
		}
		r.Render(buf, &ctx)
		for i, v := range buf {
			if math.IsNaN(v) || math.Abs(v) > 20 {
				t.Fatalf("block %d sample %d unstable: %v", block, i, v)
			}
		}
	}
}

func TestReverbTailSurvivesNoteOn(t *testing.T) {
	r := NewReverb(0.8, 0.3, 1)
	ctx := ContextFromFreq(48000, 440, 1)
	r.NoteOn(&ctx)
	impulse := []float64{1}
	r.Render(impulse, &ctx)
	r.Render(make([]float64, 4096), &ctx) // let echoes enter the lines

	r.NoteOn(&ctx) // a new note must not empty the room
	buf := make([]float64, 4096)
	r.Render(buf, &ctx)
	if rms(buf) == 0 {
		t.Fatal("reverb tail was cleared by NoteOn")
	}
}

func TestReverbPresetOrdering(t *testing.T) {
	room := RoomReverb(0.3)
	hall := HallReverb(0.3)
	plate := PlateReverb(0.3)
	if !(room.roomSize < hall.roomSize && hall.roomSize < plate.roomSize) {
		t.Fatalf("preset sizes out of order: %v %v %v",
			room.roomSize, hall.roomSize, plate.roomSize)
	}
}

func TestReverbModulation(t *testing.T) {
	r := NewReverb(0.4, 0.5, 0.3)
	r.ApplyModulation(ParamReverbMix, 0.3, 0.9)
	if r.curMix != 1 {
		t.Fatalf("mix not clamped to 1: %v", r.curMix)
	}
	r.ApplyModulation(ParamReverbRoomSize, 0.4, -2)
	if r.curRoomSize != 0 {
		t.Fatalf("room size not clamped to 0: %v", r.curRoomSize)
	}
}
