package main

import (
	"context"
	"testing"
	"time"

	"polysynth/src/synth"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		line string
		want synth.Message
		ok   bool
	}{
		{"on 60", synth.NoteOnMessage(60, 100), true},
		{"on 60 127", synth.NoteOnMessage(60, 127), true},
		{"off 60", synth.NoteOffMessage(60), true},
		{"panic", synth.AllNotesOffMessage(), true},
		{"", synth.Message{}, false},
		{"on", synth.Message{}, false},
		{"on abc", synth.Message{}, false},
		{"off", synth.Message{}, false},
		{"bogus 1 2", synth.Message{}, false},
	}
	for _, c := range cases {
		got, err := parseCommand(c.line)
		if c.ok && err != nil {
			t.Errorf("%q: unexpected error %v", c.line, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("%q: expected error", c.line)
			}
			continue
		}
		if got != c.want {
			t.Errorf("%q: got %+v, want %+v", c.line, got, c.want)
		}
	}
}

func TestForwardMessagesClosedMidi(t *testing.T) {
	e, err := synth.NewEngine(44100, 2, synth.LeadPatch)
	if err != nil {
		t.Fatal(err)
	}
	ctrl := e.Controller()

	msgCh := make(chan synth.Message, 1)
	midiCh := make(chan []byte)
	close(midiCh)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- forwardMessages(ctx, ctrl, msgCh, midiCh)
	}()

	// A closed MIDI channel must not starve the other input.
	msgCh <- synth.NoteOnMessage(60, 100)
	deadline := time.After(time.Second)
	for ctrl.Pending() == 0 {
		select {
		case <-deadline:
			t.Fatal("message never reached the queue")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("got %v, want context.Canceled", err)
		}
	case <-deadline:
		t.Fatal("forwardMessages did not stop on cancel")
	}
}
