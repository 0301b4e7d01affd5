package notify

import (
	"context"
	"sync"
)

// Recorder is an in-memory dispatcher for tests. It records every payload and
// can be told to fail, which is how dispatch-failure paths are exercised.
type Recorder struct {
	mu       sync.Mutex
	payloads []Payload
	failWith error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes subsequent Send calls return err. Pass nil to recover.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

func (r *Recorder) Send(_ context.Context, p Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.payloads = append(r.payloads, p)
	return nil
}

// Sent returns a copy of the recorded payloads.
func (r *Recorder) Sent() []Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Payload{}, r.payloads...)
}
