package cookie

//go:generate $MOCKGEN -source=store.go -destination=mocks/store_mock.go

// Store is a mutable cookie string in the style of document.cookie.
type Store interface {
	// Read returns the visible cookies as "a=1; b=2".
	Read() string
	// Write applies a single entry. Writes never fail from the caller's point of view.
	Write(entry string)
}

// Environment describes where the bridge runs.
type Environment interface {
	// CanUseDocument reports whether a document and its cookie store are available.
	CanUseDocument() bool
	// Cookies returns the cookie store. It is only meaningful when CanUseDocument is true.
	Cookies() Store
}

// noDocument is an Environment without a document, e.g. a server process.
type noDocument struct{}

// NoDocument is the environment of a process that has no document.
//
//nolint:gochecknoglobals // Stateless value shared by every caller.
var NoDocument Environment = noDocument{}

// CanUseDocument always returns false.
func (noDocument) CanUseDocument() bool {
	return false
}

// Cookies returns nil; there is nothing to write into.
func (noDocument) Cookies() Store {
	return nil
}
