// Package cookie models the cookie store the bridge writes into.
//
// Entries use the same encoding a page assigns to document.cookie:
// "name=value;max-age=N" to set and "name=;expires=<past date>" to delete.
// Document emulates that assignment semantics in memory, NoDocument stands
// for environments without a document at all.
package cookie
