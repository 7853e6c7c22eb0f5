package synth

// ----- Messages ----- //

// MessageKind identifies a control message sent to the engine.
type MessageKind int

const (
	MessageNoteOn MessageKind = iota
	MessageNoteOff
	MessageAllNotesOff
)

// Message is one control event. Note and Velocity follow the MIDI ranges
// (0-127); Velocity is only meaningful for MessageNoteOn.
type Message struct {
	Kind     MessageKind
	Note     int
	Velocity int
}

func NoteOnMessage(note, velocity int) Message {
	return Message{Kind: MessageNoteOn, Note: note, Velocity: velocity}
}

func NoteOffMessage(note int) Message {
	return Message{Kind: MessageNoteOff, Note: note}
}

func AllNotesOffMessage() Message {
	return Message{Kind: MessageAllNotesOff}
}
