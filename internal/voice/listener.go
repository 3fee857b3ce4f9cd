// Package voice implements the one-shot speech input contract: start
// listening, yield at most one transcript, stop. Actual recognition is an
// external capability behind the Recognizer interface.
package voice

import (
	"context"
	"sync"
)

// Recognizer captures a single utterance and returns its transcript. An
// empty transcript with a nil error means the input ended without a result.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// Listener guards a Recognizer with the one-shot lifecycle: Start while
// already listening is a no-op, and listening always terminates after one
// result, one error, or an empty end-of-input. Recognition errors reset the
// state silently; only a non-empty transcript reaches the callback.
type Listener struct {
	rec      Recognizer
	onResult func(transcript string)

	mu        sync.Mutex
	listening bool
}

func NewListener(rec Recognizer, onResult func(string)) *Listener {
	return &Listener{rec: rec, onResult: onResult}
}

// Listening reports whether a capture is in flight.
func (l *Listener) Listening() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listening
}

// Start begins a single capture. It returns immediately; the transcript, if
// any, is delivered via the callback.
func (l *Listener) Start(ctx context.Context) {
	l.mu.Lock()
	if l.listening {
		l.mu.Unlock()
		return
	}
	l.listening = true
	l.mu.Unlock()

	go func() {
		transcript, err := l.rec.Recognize(ctx)

		l.mu.Lock()
		l.listening = false
		l.mu.Unlock()

		if err != nil || transcript == "" {
			return
		}
		l.onResult(transcript)
	}()
}
