/*
Copyright © 2025 Oleg Shokin

Package tokencookie keeps an authentication provider's identity token
mirrored into a cookie, so that server-rendered requests carry it.

NewTools subscribes to the provider right away and returns AuthReady, a
channel closed once the provider reported its first auth state, AwaitReady,
which waits on it under a context, and CopyIDTokenToCookie, which starts mirroring the token into a named cookie
whenever the environment has a document. The mirrored cookie lives for one hour
and is expired on sign-out. A token fetch that completes after a newer
notification is discarded.

A browser Page opened with go-rod can stand in for the in-memory Document.

Neither the readiness subscription nor the cookie sync has a teardown; in
long-lived processes that mount and unmount consumers, start the sync once.
*/
package tokencookie
