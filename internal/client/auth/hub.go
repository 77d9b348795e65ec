package auth

import (
	"maps"
	"slices"
	"sync"
)

// Hub is an in-process Client. Whoever owns the session calls Publish and
// RefreshToken; subscribers are notified synchronously, in registration order,
// on the calling goroutine.
//
// Like hosted providers, a Hub reports the current state to every listener
// that subscribes after the first Publish. That replay and every notification
// are delivered one at a time, so a late subscriber never sees an older state
// after a newer one. Listeners may unsubscribe but must not Publish,
// RefreshToken or subscribe on the same hub.
type Hub struct {
	// delivery serializes notifications with the replay to late subscribers.
	delivery       sync.Mutex
	mu             sync.Mutex
	initialized    bool
	user           User
	nextID         uint64
	stateListeners map[uint64]Listener
	tokenListeners map[uint64]Listener
}

// Ensure Hub satisfies Client.
var _ Client = (*Hub)(nil)

// NewHub creates a hub that has not reported any state yet.
func NewHub() *Hub {
	return &Hub{
		stateListeners: make(map[uint64]Listener),
		tokenListeners: make(map[uint64]Listener),
	}
}

// OnAuthStateChanged registers a listener for sign-in and sign-out.
func (h *Hub) OnAuthStateChanged(listener Listener) Unsubscribe {
	return h.subscribe(h.stateListeners, listener)
}

// OnIDTokenChanged registers a listener for sign-in, sign-out and token refresh.
func (h *Hub) OnIDTokenChanged(listener Listener) Unsubscribe {
	return h.subscribe(h.tokenListeners, listener)
}

// Publish records user as the current principal (nil for signed out) and notifies both streams.
func (h *Hub) Publish(user User) {
	h.delivery.Lock()
	defer h.delivery.Unlock()

	h.mu.Lock()
	h.initialized = true
	h.user = user
	stateListeners := snapshot(h.stateListeners)
	tokenListeners := snapshot(h.tokenListeners)
	h.mu.Unlock()

	notify(stateListeners, user)
	notify(tokenListeners, user)
}

// RefreshToken notifies only the token stream with the current principal.
// It does nothing before the first Publish.
func (h *Hub) RefreshToken() {
	h.delivery.Lock()
	defer h.delivery.Unlock()

	h.mu.Lock()

	if !h.initialized {
		h.mu.Unlock()

		return
	}

	user := h.user
	tokenListeners := snapshot(h.tokenListeners)
	h.mu.Unlock()

	notify(tokenListeners, user)
}

// CurrentUser returns the last published principal and whether any state was published.
func (h *Hub) CurrentUser() (User, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.user, h.initialized
}

// ListenerCounts returns how many auth-state and token listeners are attached.
func (h *Hub) ListenerCounts() (stateCount, tokenCount int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.stateListeners), len(h.tokenListeners)
}

func (h *Hub) subscribe(listeners map[uint64]Listener, listener Listener) Unsubscribe {
	h.delivery.Lock()
	defer h.delivery.Unlock()

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	listeners[id] = listener
	initialized, user := h.initialized, h.user
	h.mu.Unlock()

	if initialized {
		listener(user)
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(listeners, id)
			h.mu.Unlock()
		})
	}
}

// snapshot copies listeners in registration order. The caller must hold the hub mutex.
func snapshot(listeners map[uint64]Listener) []Listener {
	result := make([]Listener, 0, len(listeners))
	for _, id := range slices.Sorted(maps.Keys(listeners)) {
		result = append(result, listeners[id])
	}

	return result
}

func notify(listeners []Listener, user User) {
	for _, listener := range listeners {
		listener(user)
	}
}
