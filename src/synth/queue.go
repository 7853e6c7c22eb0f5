package synth

import "sync/atomic"

// ----- Control Queue ----- //

// messageQueue is a bounded single-producer single-consumer ring. The
// control side pushes with TryPush, the render side drains with TryPop.
// Neither end blocks, locks, or allocates, so the render goroutine can
// drain the queue at the top of every block without risking a stall.
//
// head and tail are free-running counters; masking with capacity-1 maps
// them onto the slot array, which is why the capacity is rounded up to a
// power of two.
type messageQueue struct {
	slots []Message
	mask  uint64
	head  uint64 // next slot to pop, owned by the consumer
	tail  uint64 // next slot to push, owned by the producer
	_     [6]uint64
}

func newMessageQueue(capacity int) *messageQueue {
	if capacity < 2 {
		capacity = 2
	}
	n := 1
	for n < capacity {
		n <<= 1
	}
	return &messageQueue{
		slots: make([]Message, n),
		mask:  uint64(n - 1),
	}
}

// TryPush appends msg. It reports false when the queue is full; the
// producer decides whether to drop or retry.
func (q *messageQueue) TryPush(msg Message) bool {
	tail := atomic.LoadUint64(&q.tail)
	head := atomic.LoadUint64(&q.head)
	if tail-head > q.mask {
		return false
	}
	q.slots[tail&q.mask] = msg
	atomic.StoreUint64(&q.tail, tail+1)
	return true
}

// TryPop removes the oldest message. It reports false when the queue is
// empty.
func (q *messageQueue) TryPop() (Message, bool) {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)
	if head == tail {
		return Message{}, false
	}
	msg := q.slots[head&q.mask]
	atomic.StoreUint64(&q.head, head+1)
	return msg, true
}

func (q *messageQueue) len() int {
	return int(atomic.LoadUint64(&q.tail) - atomic.LoadUint64(&q.head))
}
