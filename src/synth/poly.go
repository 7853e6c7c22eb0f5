package synth

import "errors"

// ----- Polyphonic Engine ----- //

const defaultQueueCapacity = 256

// Engine renders a fixed pool of voices built from a shared patch and is
// driven by messages from a lock-free control queue. Exactly one goroutine
// may call Render (and the other render-side methods); exactly one may
// push control messages, directly or through Controller.
//
// The render path never allocates, locks, or grows a buffer: every voice
// graph and scratch buffer is built up front in NewEngine.
type Engine struct {
	sampleRate float64
	voices     []voice
	queue      *messageQueue
	scratch    [MaxBlockSize]float64
	frame      uint64
}

// NewEngine builds an engine with numVoices voices, each a fresh graph
// from patch, and the default control queue capacity.
func NewEngine(sampleRate float64, numVoices int, patch Patch) (*Engine, error) {
	return NewEngineWithCapacity(sampleRate, numVoices, defaultQueueCapacity, patch)
}

// NewEngineWithCapacity also sets the control queue capacity, which is
// rounded up to a power of two.
func NewEngineWithCapacity(sampleRate float64, numVoices, queueCapacity int, patch Patch) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, errors.New("synth: sample rate must be positive")
	}
	if numVoices < 1 {
		return nil, errors.New("synth: need at least one voice")
	}
	if patch == nil {
		return nil, errors.New("synth: nil patch")
	}
	e := &Engine{
		sampleRate: sampleRate,
		voices:     make([]voice, numVoices),
		queue:      newMessageQueue(queueCapacity),
	}
	for i := range e.voices {
		e.voices[i].node = patch()
	}
	return e, nil
}

func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Controller returns the control-side handle for this engine. Only one
// goroutine may use it.
func (e *Engine) Controller() *Controller {
	return &Controller{queue: e.queue}
}

// Render drains pending control messages and then sums all sounding voices
// into out. Buffers longer than MaxBlockSize are processed in chunks, with
// messages drained at each chunk boundary.
func (e *Engine) Render(out []float64) {
	for len(out) > 0 {
		n := len(out)
		if n > MaxBlockSize {
			n = MaxBlockSize
		}
		e.renderBlock(out[:n])
		out = out[n:]
	}
}

func (e *Engine) renderBlock(out []float64) {
	for {
		msg, ok := e.queue.TryPop()
		if !ok {
			break
		}
		e.dispatch(msg)
	}
	for i := range out {
		out[i] = 0
	}
	for i := range e.voices {
		if e.voices[i].state == voiceFree {
			continue
		}
		e.voices[i].render(out, e.scratch[:])
	}
	e.frame += uint64(len(out))
}

func (e *Engine) dispatch(msg Message) {
	switch msg.Kind {
	case MessageNoteOn:
		e.noteOn(msg.Note, msg.Velocity)
	case MessageNoteOff:
		e.noteOff(msg.Note)
	case MessageAllNotesOff:
		for i := range e.voices {
			e.voices[i].noteOff()
		}
	}
}

// noteOn allocates a voice: a free slot if one exists, otherwise the oldest
// releasing voice, otherwise the oldest active voice is stolen.
func (e *Engine) noteOn(note, velocity int) {
	if v := e.findVoice(voiceFree); v != nil {
		v.noteOn(e.sampleRate, note, velocity, e.frame)
		return
	}
	if v := e.oldest(voiceReleasing); v != nil {
		v.noteOn(e.sampleRate, note, velocity, e.frame)
		return
	}
	if v := e.oldest(voiceActive); v != nil {
		v.noteOn(e.sampleRate, note, velocity, e.frame)
	}
}

// noteOff releases every active voice sounding note. A note with no active
// voice (already released or stolen) is ignored.
func (e *Engine) noteOff(note int) {
	for i := range e.voices {
		if e.voices[i].state == voiceActive && e.voices[i].note == note {
			e.voices[i].noteOff()
		}
	}
}

func (e *Engine) findVoice(state voiceState) *voice {
	for i := range e.voices {
		if e.voices[i].state == state {
			return &e.voices[i]
		}
	}
	return nil
}

func (e *Engine) oldest(state voiceState) *voice {
	var best *voice
	for i := range e.voices {
		v := &e.voices[i]
		if v.state != state {
			continue
		}
		if best == nil || v.startFrame < best.startFrame {
			best = v
		}
	}
	return best
}

// ActiveVoices reports how many voices are currently sounding, releasing
// ones included. Render-side only; tests and debug displays use it.
func (e *Engine) ActiveVoices() int {
	n := 0
	for i := range e.voices {
		if e.voices[i].state != voiceFree {
			n++
		}
	}
	return n
}

// ----- Controller ----- //

// Controller is the control-side handle: it owns the producer end of the
// engine's message queue. Each method reports false when the queue is full
// and the message was dropped.
type Controller struct {
	queue *messageQueue
}

func (c *Controller) NoteOn(note, velocity int) bool {
	return c.queue.TryPush(NoteOnMessage(note, velocity))
}

func (c *Controller) NoteOff(note int) bool {
	return c.queue.TryPush(NoteOffMessage(note))
}

func (c *Controller) AllNotesOff() bool {
	return c.queue.TryPush(AllNotesOffMessage())
}

// Send pushes an arbitrary message.
func (c *Controller) Send(msg Message) bool {
	return c.queue.TryPush(msg)
}

// Pending reports how many messages are waiting.
func (c *Controller) Pending() int {
	return c.queue.len()
}
