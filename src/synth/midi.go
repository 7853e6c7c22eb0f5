package synth

import (
	"context"
	"fmt"
	"log"

	"gitlab.com/gomidi/rtmididrv"
)

// ----- MIDI ----- //

// ListenToMidiIn opens the first MIDI IN port and forwards raw messages
// until ctx is canceled. The returned channel is closed on every exit
// path, including driver failures, so consumers can range over it or treat
// closure as "no more MIDI". A machine with no MIDI device simply gets the
// closed channel; the other inputs keep working.
func ListenToMidiIn(ctx context.Context) <-chan []byte {
	ch := make(chan []byte, 65536)
	go func() {
		defer close(ch)
		if err := runMidiIn(ctx, ch); err != nil {
			log.Printf("MIDI IN unavailable: %v\n", err)
		}
	}()
	return ch
}

func runMidiIn(ctx context.Context, ch chan<- []byte) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("initialize driver: %w", err)
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.Printf("failed to close MIDI driver: %v\n", err)
		}
	}()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("list inputs: %w", err)
	}
	if len(ins) == 0 {
		log.Println("no MIDI IN ports, continuing without MIDI")
		return nil
	}
	in := ins[0]
	if err := in.Open(); err != nil {
		return fmt.Errorf("open %s: %w", in.String(), err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.Printf("failed to close MIDI IN: %v\n", err)
		}
	}()

	if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
		ch <- data
	}); err != nil {
		return fmt.Errorf("set listener: %w", err)
	}
	log.Println("listening on " + in.String())
	<-ctx.Done()
	if err := in.StopListening(); err != nil {
		log.Printf("failed to stop listening: %v\n", err)
	}
	return nil
}

// ParseMIDI translates a raw MIDI message into a control Message. It
// reports false for messages the engine has no use for (aftertouch, pitch
// bend, clock and so on). A note-on with velocity zero counts as note-off,
// as running-status keyboards send it.
func ParseMIDI(data []byte) (Message, bool) {
	if len(data) < 2 {
		return Message{}, false
	}
	switch data[0] & 0xf0 {
	case 0x90:
		if len(data) < 3 {
			return Message{}, false
		}
		if data[2] == 0 {
			return NoteOffMessage(int(data[1])), true
		}
		return NoteOnMessage(int(data[1]), int(data[2])), true
	case 0x80:
		return NoteOffMessage(int(data[1])), true
	case 0xb0:
		// CC 120 (all sound off) and 123 (all notes off) both release
		// everything.
		if data[1] == 120 || data[1] == 123 {
			return AllNotesOffMessage(), true
		}
	}
	return Message{}, false
}
