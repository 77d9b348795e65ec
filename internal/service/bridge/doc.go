// Package bridge connects an authentication provider to a cookie store.
//
// A ServiceImpl reports, once, that the provider has delivered its first
// auth state, and can keep the provider's identity token mirrored into a
// named cookie so that server-rendered requests carry it. Token issuance,
// refresh and verification stay with the provider.
package bridge
