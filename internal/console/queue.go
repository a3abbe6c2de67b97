package console

import "conshell/pkg/contypes"

// Queue is the bounded record queue between arbitrary producer goroutines
// (logging call sites, command bodies) and the single render loop consumer.
// Emit blocks when the queue is full, preserving FIFO order instead of
// dropping, which bounds memory while keeping producers honest.
type Queue struct {
	ch    chan contypes.ConsoleRecord
	clear chan struct{}
}

// NewQueue creates a queue with the given capacity. Capacity must be at
// least 1; the console option layer supplies the default.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		ch:    make(chan contypes.ConsoleRecord, capacity),
		clear: make(chan struct{}, 1),
	}
}

// Emit enqueues one record, blocking while the queue is saturated.
func (q *Queue) Emit(rec contypes.ConsoleRecord) {
	q.ch <- rec
}

// Clear signals the render loop to discard its backlog and reset the
// screen. The signal coalesces: a pending clear absorbs later ones.
func (q *Queue) Clear() {
	select {
	case q.clear <- struct{}{}:
	default:
	}
}

// poll removes the next record without blocking.
func (q *Queue) poll() (contypes.ConsoleRecord, bool) {
	select {
	case rec := <-q.ch:
		return rec, true
	default:
		return contypes.ConsoleRecord{}, false
	}
}

// clearRequested consumes a pending clear signal. Handling the signal
// discards every record queued up to that point, so a clear wipes the
// backlog as well as the screen.
func (q *Queue) clearRequested() bool {
	select {
	case <-q.clear:
	default:
		return false
	}
	for {
		select {
		case <-q.ch:
		default:
			return true
		}
	}
}

// pending reports how many records are waiting.
func (q *Queue) pending() int {
	return len(q.ch)
}
