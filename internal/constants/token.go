package constants

import "time"

const (
	// IDTokenLifetime is how long an identity token issued by the provider stays valid.
	// The mirrored cookie lives exactly as long.
	IDTokenLifetime = time.Hour

	// DefaultCookieName is the cookie that carries the identity token to server-rendered requests.
	DefaultCookieName = "__session"
)
