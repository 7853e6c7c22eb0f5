package synth

import "testing"

func TestParseMIDI(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Message
		ok   bool
	}{
		{"note on", []byte{0x90, 60, 100}, NoteOnMessage(60, 100), true},
		{"note on channel 3", []byte{0x92, 64, 80}, NoteOnMessage(64, 80), true},
		{"note on velocity zero", []byte{0x90, 60, 0}, NoteOffMessage(60), true},
		{"note off", []byte{0x80, 60, 64}, NoteOffMessage(60), true},
		{"all notes off", []byte{0xb0, 123, 0}, AllNotesOffMessage(), true},
		{"all sound off", []byte{0xb0, 120, 0}, AllNotesOffMessage(), true},
		{"other cc", []byte{0xb0, 1, 64}, Message{}, false},
		{"pitch bend", []byte{0xe0, 0, 64}, Message{}, false},
		{"clock", []byte{0xf8}, Message{}, false},
		{"empty", nil, Message{}, false},
		{"truncated note on", []byte{0x90, 60}, Message{}, false},
	}
	for _, c := range cases {
		got, ok := ParseMIDI(c.data)
		if ok != c.ok {
			t.Errorf("%s: ok = %v, want %v", c.name, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("%s: got %+v, want %+v", c.name, got, c.want)
		}
	}
}
