package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects the users a listener was called with.
type recorder struct {
	users []User
}

func (r *recorder) listen(user User) {
	r.users = append(r.users, user)
}

// TestHub_SubscribeBeforePublish tests that early subscribers wait for the first Publish.
func TestHub_SubscribeBeforePublish(t *testing.T) {
	t.Parallel()

	var (
		hub    = NewHub()
		states recorder
		tokens recorder
		alice  = &StaticUser{ID: "alice", Token: "t1"}
	)

	hub.OnAuthStateChanged(states.listen)
	hub.OnIDTokenChanged(tokens.listen)

	assert.Empty(t, states.users)
	assert.Empty(t, tokens.users)

	hub.Publish(alice)
	hub.Publish(nil)

	assert.Equal(t, []User{alice, nil}, states.users)
	assert.Equal(t, []User{alice, nil}, tokens.users)
}

// TestHub_SubscribeAfterPublish tests that late subscribers receive the current state immediately.
func TestHub_SubscribeAfterPublish(t *testing.T) {
	t.Parallel()

	var (
		hub    = NewHub()
		states recorder
		alice  = &StaticUser{ID: "alice"}
	)

	hub.Publish(alice)
	hub.OnAuthStateChanged(states.listen)

	require.Len(t, states.users, 1)
	assert.Equal(t, alice, states.users[0])
}

// TestHub_RefreshToken tests that a refresh only reaches token listeners.
func TestHub_RefreshToken(t *testing.T) {
	t.Parallel()

	var (
		hub    = NewHub()
		states recorder
		tokens recorder
		alice  = &StaticUser{ID: "alice"}
	)

	hub.OnAuthStateChanged(states.listen)
	hub.OnIDTokenChanged(tokens.listen)

	// Nothing to refresh before the first state is known.
	hub.RefreshToken()
	assert.Empty(t, tokens.users)

	hub.Publish(alice)
	hub.RefreshToken()
	hub.RefreshToken()

	assert.Len(t, states.users, 1)
	assert.Len(t, tokens.users, 3)
}

// TestHub_Unsubscribe tests that detached listeners stop receiving notifications.
func TestHub_Unsubscribe(t *testing.T) {
	t.Parallel()

	var (
		hub    = NewHub()
		states recorder
	)

	unsubscribe := hub.OnAuthStateChanged(states.listen)

	stateCount, tokenCount := hub.ListenerCounts()
	assert.Equal(t, 1, stateCount)
	assert.Equal(t, 0, tokenCount)

	unsubscribe()
	unsubscribe()

	hub.Publish(&StaticUser{ID: "alice"})

	assert.Empty(t, states.users)

	stateCount, _ = hub.ListenerCounts()
	assert.Equal(t, 0, stateCount)
}

// TestHub_UnsubscribeFromListener tests that a listener may detach itself while being notified.
func TestHub_UnsubscribeFromListener(t *testing.T) {
	t.Parallel()

	var (
		hub         = NewHub()
		calls       int
		unsubscribe Unsubscribe
	)

	unsubscribe = hub.OnAuthStateChanged(func(User) {
		calls++

		unsubscribe()
	})

	hub.Publish(nil)
	hub.Publish(nil)

	assert.Equal(t, 1, calls)
}

// TestHub_PublishWaitsForReplay tests that a late subscriber never receives an older state after a newer one.
func TestHub_PublishWaitsForReplay(t *testing.T) {
	t.Parallel()

	var (
		hub      = NewHub()
		alice    = &StaticUser{ID: "alice"}
		entered  = make(chan struct{})
		release  = make(chan struct{})
		replayed = make(chan struct{})
		received []User
	)

	hub.Publish(alice)

	go func() {
		defer close(replayed)

		hub.OnIDTokenChanged(func(user User) {
			received = append(received, user)

			if len(received) == 1 {
				close(entered)
				<-release
			}
		})
	}()

	<-entered

	published := make(chan struct{})

	go func() {
		defer close(published)

		hub.Publish(nil)
	}()

	select {
	case <-published:
		t.Fatal("Publish delivered while the replay was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-replayed
	<-published

	require.Len(t, received, 2)
	assert.Same(t, alice, received[0])
	assert.Nil(t, received[1])
}

// TestIsSignedOut tests the signed-out check.
func TestIsSignedOut(t *testing.T) {
	t.Parallel()

	var (
		nilStatic *StaticUser
		nilFunc   *UserFunc
	)

	tests := []struct {
		name     string
		user     User
		expected bool
	}{
		{name: "untyped nil", user: nil, expected: true},
		{name: "nil static user", user: nilStatic, expected: true},
		{name: "nil func user", user: nilFunc, expected: true},
		{name: "static user", user: &StaticUser{ID: "alice"}, expected: false},
		{name: "func user", user: &UserFunc{ID: "bob"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsSignedOut(tt.user))
		})
	}
}

// TestHub_CurrentUser tests the CurrentUser accessor.
func TestHub_CurrentUser(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	user, initialized := hub.CurrentUser()
	assert.Nil(t, user)
	assert.False(t, initialized)

	alice := &StaticUser{ID: "alice"}
	hub.Publish(alice)

	user, initialized = hub.CurrentUser()
	assert.Equal(t, alice, user)
	assert.True(t, initialized)
}

// TestUsers tests the bundled User implementations.
func TestUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	static := &StaticUser{ID: "alice", Token: "abc123"}
	token, err := static.GetIDToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, "alice", static.UID())

	errExpired := errors.New("session expired")
	failing := &UserFunc{
		ID: "bob",
		TokenFunc: func(context.Context) (string, error) {
			return "", errExpired
		},
	}

	_, err = failing.GetIDToken(ctx)
	require.ErrorIs(t, err, errExpired)
	assert.Equal(t, "bob", failing.UID())
}
