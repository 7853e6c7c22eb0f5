package synth

import "testing"

func TestQueueFIFO(t *testing.T) {
	q := newMessageQueue(8)
	for i := 0; i < 5; i++ {
		if !q.TryPush(NoteOnMessage(i, 100)) {
			t.Fatalf("push %d failed", i)
		}
	}
	for i := 0; i < 5; i++ {
		msg, ok := q.TryPop()
		if !ok {
			t.Fatalf("pop %d failed", i)
		}
		if msg.Note != i {
			t.Fatalf("pop %d: got note %d", i, msg.Note)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Fatal("pop from empty queue succeeded")
	}
}

func TestQueueFull(t *testing.T) {
	q := newMessageQueue(4)
	for i := 0; i < 4; i++ {
		if !q.TryPush(NoteOnMessage(i, 100)) {
			t.Fatalf("push %d failed before capacity", i)
		}
	}
	if q.TryPush(NoteOnMessage(99, 100)) {
		t.Fatal("push into full queue succeeded")
	}
	if q.len() != 4 {
		t.Fatalf("len = %d, want 4", q.len())
	}
	// draining one slot frees one push
	if _, ok := q.TryPop(); !ok {
		t.Fatal("pop failed")
	}
	if !q.TryPush(NoteOnMessage(99, 100)) {
		t.Fatal("push after pop failed")
	}
}

func TestQueueCapacityRoundsUp(t *testing.T) {
	q := newMessageQueue(5)
	n := 0
	for q.TryPush(NoteOnMessage(n, 100)) {
		n++
	}
	if n != 8 {
		t.Fatalf("capacity %d, want next power of two 8", n)
	}
}

func TestQueueWrapAround(t *testing.T) {
	q := newMessageQueue(4)
	// cycle far past the capacity so the counters wrap the slot array
	for i := 0; i < 1000; i++ {
		if !q.TryPush(NoteOnMessage(i%128, 100)) {
			t.Fatalf("push %d failed", i)
		}
		msg, ok := q.TryPop()
		if !ok || msg.Note != i%128 {
			t.Fatalf("pop %d: got %v ok=%v", i, msg.Note, ok)
		}
	}
}

func TestQueueConcurrentProducerConsumer(t *testing.T) {
	const count = 100000
	q := newMessageQueue(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < count; {
			if q.TryPush(NoteOnMessage(i%128, i%128)) {
				i++
			}
		}
	}()
	received := 0
	expect := 0
	for received < count {
		msg, ok := q.TryPop()
		if !ok {
			continue
		}
		if msg.Note != expect%128 {
			t.Fatalf("message %d: got note %d want %d", received, msg.Note, expect%128)
		}
		received++
		expect++
	}
	<-done
	if _, ok := q.TryPop(); ok {
		t.Fatal("queue not empty after drain")
	}
}
