// Package capture wraps a speech-recognition capability behind a simple
// start/stop/callback contract. The platform feeds finalized segments;
// whoever owns the adapter receives one transcript per capture session.
package capture

import (
	"strings"
	"sync"

	"github.com/rotisserie/eris"
)

// ErrUnavailable reports that no underlying speech capability exists. It is
// surfaced immediately and permanently for the session; callers must not
// poll for later availability.
var ErrUnavailable = eris.New("capture: speech recognition unavailable")

// Adapter is the capture boundary. Start begins a session and clears any
// prior partial result; segments pushed while listening accumulate; Stop (or
// the capability ending on its own) delivers exactly one callback with the
// trimmed concatenation of the finalized segments in capture order. An error
// end goes back to not-listening without a callback; the caller treats that
// as "no answer captured" rather than retrying.
type Adapter struct {
	mu        sync.Mutex
	listening bool
	segments  []string

	available bool
	onResult  func(transcript string)
}

// New creates an available adapter delivering results to onResult.
func New(onResult func(transcript string)) *Adapter {
	return &Adapter{available: true, onResult: onResult}
}

// Unavailable creates an adapter whose Start always fails, for platforms
// without speech support.
func Unavailable() *Adapter {
	return &Adapter{}
}

// Start begins continuous capture. Starting while already listening is a
// no-op guard, not an error.
func (a *Adapter) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.available {
		return ErrUnavailable
	}
	if a.listening {
		return nil
	}
	a.listening = true
	a.segments = a.segments[:0]
	return nil
}

// Push appends one finalized recognized segment. Segments arriving while not
// listening are dropped.
func (a *Adapter) Push(segment string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.listening {
		return
	}
	a.segments = append(a.segments, segment)
}

// Stop ends the capture session normally and delivers the transcript.
// Stopping while not listening is a no-op.
func (a *Adapter) Stop() {
	a.mu.Lock()
	if !a.listening {
		a.mu.Unlock()
		return
	}
	a.listening = false
	transcript := strings.TrimSpace(strings.Join(a.segments, " "))
	a.segments = nil
	onResult := a.onResult
	a.mu.Unlock()

	if onResult != nil {
		onResult(transcript)
	}
}

// Fail ends the capture session after a recognition error: the adapter goes
// back to not-listening and no transcript is delivered.
func (a *Adapter) Fail() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listening = false
	a.segments = nil
}

// Listening reports whether a capture session is active.
func (a *Adapter) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listening
}
