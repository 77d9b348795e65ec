package auth

import "context"

// StaticUser is a User whose token never changes.
type StaticUser struct {
	// ID is returned by UID.
	ID string
	// Token is returned by GetIDToken.
	Token string
}

// UID returns the user's identifier.
func (u *StaticUser) UID() string {
	return u.ID
}

// GetIDToken returns the fixed token.
func (u *StaticUser) GetIDToken(context.Context) (string, error) {
	return u.Token, nil
}

// UserFunc adapts a token function into a User.
type UserFunc struct {
	// ID is returned by UID.
	ID string
	// TokenFunc is called by GetIDToken.
	TokenFunc func(ctx context.Context) (string, error)
}

// UID returns the user's identifier.
func (u *UserFunc) UID() string {
	return u.ID
}

// GetIDToken delegates to TokenFunc.
func (u *UserFunc) GetIDToken(ctx context.Context) (string, error) {
	return u.TokenFunc(ctx)
}
