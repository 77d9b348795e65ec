package bridge

import (
	"sync"

	"github.com/oshokin/tokencookie/internal/client/auth"
)

// listenerState is the lifecycle of the one-shot auth-state listener.
type listenerState uint8

const (
	// stateArmed waits for the first auth-state notification.
	stateArmed listenerState = iota
	// stateFired is terminal: readiness is signalled and the listener is detached.
	stateFired
)

// String returns a readable name for the state.
func (s listenerState) String() string {
	switch s {
	case stateArmed:
		return "armed"
	case stateFired:
		return "fired"
	default:
		return "unknown"
	}
}

// readiness closes ready on the first auth-state notification and detaches its listener.
// Providers may notify before the subscription call returns its handle, so the handle
// is attached separately and invoked as soon as both the handle and the firing are known.
type readiness struct {
	mu          sync.Mutex
	state       listenerState
	unsubscribe auth.Unsubscribe
	ready       chan struct{}
	onFire      func(user auth.User)
}

func newReadiness(onFire func(user auth.User)) *readiness {
	return &readiness{
		state:  stateArmed,
		ready:  make(chan struct{}),
		onFire: onFire,
	}
}

// listen is the auth-state listener. Only the first call has any effect.
func (r *readiness) listen(user auth.User) {
	r.mu.Lock()

	if r.state == stateFired {
		r.mu.Unlock()

		return
	}

	r.state = stateFired
	close(r.ready)

	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	if r.onFire != nil {
		r.onFire(user)
	}
}

// attach stores the subscription handle, or invokes it right away if the listener already fired.
func (r *readiness) attach(unsubscribe auth.Unsubscribe) {
	if unsubscribe == nil {
		return
	}

	r.mu.Lock()

	if r.state == stateFired {
		r.mu.Unlock()
		unsubscribe()

		return
	}

	r.unsubscribe = unsubscribe
	r.mu.Unlock()
}

// current returns the listener state.
func (r *readiness) current() listenerState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}
