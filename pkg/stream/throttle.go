package stream

import "time"

// FlushFunc receives a frame that passed the throttle. It is expected to both
// write the frame to the wire and append it to the replay buffer so the two
// stay identical and in the same order.
type FlushFunc func(frame []byte) error

// Throttle coalesces high-frequency partial frames down to at most one flush
// per interval. The latest frame always wins: an Emit that arrives inside the
// interval replaces the pending payload instead of queueing behind it, and the
// mandatory Flush at end of stream writes whatever is still pending so the
// final partial state is never lost to coalescing.
//
// A Throttle belongs to a single generation job and is not safe for use from
// multiple goroutines.
type Throttle struct {
	interval time.Duration
	sink     FlushFunc

	lastFlush  time.Time
	pending    []byte
	hasPending bool
}

func NewThrottle(interval time.Duration, sink FlushFunc) *Throttle {
	return &Throttle{
		interval: interval,
		sink:     sink,
	}
}

// Emit offers a frame. If the interval has elapsed since the last flush the
// frame goes out immediately, otherwise it is held as the pending payload.
func (t *Throttle) Emit(frame []byte) error {
	t.pending = frame
	t.hasPending = true

	if time.Since(t.lastFlush) < t.interval {
		return nil
	}
	return t.flushPending()
}

// Flush writes the pending payload regardless of the interval. Callers must
// invoke it once the source sequence ends.
func (t *Throttle) Flush() error {
	if !t.hasPending {
		return nil
	}
	return t.flushPending()
}

func (t *Throttle) flushPending() error {
	frame := t.pending
	t.pending = nil
	t.hasPending = false
	t.lastFlush = time.Now()
	return t.sink(frame)
}
