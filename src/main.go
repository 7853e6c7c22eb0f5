package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"polysynth/src/synth"
)

const (
	channelNum      = 2
	bitDepthInBytes = 2
	samplesPerCycle = 1024
)

const bytesPerSample = bitDepthInBytes * channelNum
const bufferSizeInBytes = samplesPerCycle * bytesPerSample

func main() {
	patchName := flag.String("patch", "lead", "preset patch ("+patchNames()+")")
	voices := flag.Int("voices", 16, "number of voices")
	rate := flag.Int("rate", 48000, "sample rate")
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	patch, ok := synth.Presets[*patchName]
	if !ok {
		log.Fatalf("unknown patch %q (have %s)", *patchName, patchNames())
	}
	engine, err := synth.NewEngine(float64(*rate), *voices, patch)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		sig := <-signalCh
		log.Printf("Caught signal %s: shutting down...\n", sig)
		cancel()
	}()

	player, err := newPlayer(engine)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer player.Close()

	// All inputs funnel into msgCh so exactly one goroutine pushes onto
	// the engine's control queue.
	msgCh := make(chan synth.Message, 256)
	midiCh := synth.ListenToMidiIn(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return player.Play(ctx)
	})
	g.Go(func() error {
		return readCommands(ctx, os.Stdin, msgCh)
	})
	g.Go(func() error {
		return forwardMessages(ctx, engine.Controller(), msgCh, midiCh)
	})
	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

func patchNames() string {
	names := make([]string, 0, len(synth.Presets))
	for name := range synth.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// readCommands turns stdin lines into control messages:
//
//	on <note> [velocity]
//	off <note>
//	panic
func readCommands(ctx context.Context, r io.Reader, msgCh chan<- synth.Message) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		msg, err := parseCommand(scanner.Text())
		if err != nil {
			log.Printf("bad command: %v\n", err)
			continue
		}
		select {
		case msgCh <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Println("readCommands() ended.")
	return scanner.Err()
}

func parseCommand(line string) (synth.Message, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return synth.Message{}, fmt.Errorf("empty command")
	}
	switch fields[0] {
	case "on":
		if len(fields) < 2 {
			return synth.Message{}, fmt.Errorf("on needs a note")
		}
		note, err := strconv.Atoi(fields[1])
		if err != nil {
			return synth.Message{}, err
		}
		velocity := 100
		if len(fields) >= 3 {
			velocity, err = strconv.Atoi(fields[2])
			if err != nil {
				return synth.Message{}, err
			}
		}
		return synth.NoteOnMessage(note, velocity), nil
	case "off":
		if len(fields) < 2 {
			return synth.Message{}, fmt.Errorf("off needs a note")
		}
		note, err := strconv.Atoi(fields[1])
		if err != nil {
			return synth.Message{}, err
		}
		return synth.NoteOffMessage(note), nil
	case "panic":
		return synth.AllNotesOffMessage(), nil
	}
	return synth.Message{}, fmt.Errorf("unknown command %q", fields[0])
}

// forwardMessages is the single producer: it merges stdin and MIDI events
// and pushes them onto the engine's queue. Full-queue drops are logged.
func forwardMessages(ctx context.Context, ctrl *synth.Controller, msgCh <-chan synth.Message, midiCh <-chan []byte) error {
	for {
		select {
		case <-ctx.Done():
			log.Println("forwardMessages() ended.")
			return ctx.Err()
		case msg := <-msgCh:
			if !ctrl.Send(msg) {
				log.Println("control queue full, dropped message")
			}
		case data, ok := <-midiCh:
			if !ok {
				midiCh = nil
				continue
			}
			if msg, ok := synth.ParseMIDI(data); ok {
				if !ctrl.Send(msg) {
					log.Println("control queue full, dropped message")
				}
			}
		}
	}
}
