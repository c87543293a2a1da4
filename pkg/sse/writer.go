package sse

import (
	"bufio"
	"sync"
)

// Writer pushes encoded frames to a live SSE client. Once a write or flush
// fails the client is considered gone and every later Write becomes a no-op:
// the generation keeps running server-side, frames keep landing in the replay
// buffer, and only the wire is skipped.
type Writer struct {
	mu   sync.Mutex
	w    *bufio.Writer
	gone bool
}

func NewWriter(w *bufio.Writer) *Writer {
	return &Writer{w: w}
}

// Write sends one already-encoded frame. A nil error is returned even when
// the client has disconnected; disconnection is observable via ClientGone and
// is not a generation failure.
func (w *Writer) Write(frame []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.gone {
		return nil
	}
	if _, err := w.w.Write(frame); err != nil {
		w.gone = true
		return nil
	}
	if err := w.w.Flush(); err != nil {
		w.gone = true
	}
	return nil
}

// ClientGone reports whether the client has disconnected mid-stream.
func (w *Writer) ClientGone() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gone
}
