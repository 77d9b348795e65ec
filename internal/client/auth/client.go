package auth

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"reflect"
)

// User is the signed-in principal reported by the provider.
type User interface {
	// UID returns the provider's stable identifier of the user.
	UID() string
	// GetIDToken returns the user's current identity token.
	// The call may block on the network and may fail.
	GetIDToken(ctx context.Context) (string, error)
}

// Listener receives a notification. A nil user means nobody is signed in.
// Providers should pass an untyped nil; consumers check with IsSignedOut,
// which also treats a nil pointer wrapped in a User as signed out.
type Listener func(user User)

// IsSignedOut reports whether user stands for nobody being signed in.
func IsSignedOut(user User) bool {
	if user == nil {
		return true
	}

	value := reflect.ValueOf(user)

	switch value.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}

// Unsubscribe detaches a listener. Calling it more than once is a no-op.
type Unsubscribe func()

// Client is the subscription surface of an authentication provider.
type Client interface {
	// OnAuthStateChanged registers a listener for sign-in and sign-out.
	OnAuthStateChanged(listener Listener) Unsubscribe
	// OnIDTokenChanged registers a listener for sign-in, sign-out and token refresh.
	OnIDTokenChanged(listener Listener) Unsubscribe
}
