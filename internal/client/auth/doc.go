// Package auth describes the authentication provider as seen by the bridge.
//
// The provider owns sign-in state, token issuance and refresh. This package
// only defines the capability the bridge consumes: two notification streams
// and an on-demand identity token. Hub is an in-process provider that
// implements the capability for embedding and tests.
package auth
