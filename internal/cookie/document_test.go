package cookie

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// newTestDocument creates a document with a controllable clock.
func newTestDocument(t *testing.T, maxCookies int, maxCookieSize int64) (*Document, *fakeClock) {
	t.Helper()

	document, err := NewDocument(context.Background(), maxCookies, maxCookieSize)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)}
	document.now = clock.Now

	return document, clock
}

// TestFormat tests the entry encoders.
func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name=abc123;max-age=3600", FormatSession("name", "abc123", time.Hour))
	assert.Equal(t, "name=;max-age=0", FormatSession("name", "", 0))
	assert.Equal(t, "name=;expires=Thu, 01 Jan 1970 00:00:01 GMT", FormatExpired("name"))
}

// TestNoDocument tests the environment without a document.
func TestNoDocument(t *testing.T) {
	t.Parallel()

	assert.False(t, NoDocument.CanUseDocument())
	assert.Nil(t, NoDocument.Cookies())
}

// TestNewDocument_InvalidLimits tests constructor validation.
func TestNewDocument_InvalidLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		maxCookies    int
		maxCookieSize int64
	}{
		{name: "zero cookies", maxCookies: 0, maxCookieSize: 4096},
		{name: "negative size", maxCookies: 10, maxCookieSize: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			document, err := NewDocument(context.Background(), tt.maxCookies, tt.maxCookieSize)

			require.ErrorIs(t, err, ErrInvalidLimits)
			assert.Nil(t, document)
		})
	}
}

// TestDocument_Environment tests that a document is an environment with itself as the store.
func TestDocument_Environment(t *testing.T) {
	t.Parallel()

	document, _ := newTestDocument(t, 10, 4096)

	assert.True(t, document.CanUseDocument())
	assert.Same(t, document, document.Cookies())
}

// TestDocument_SetAndDelete tests the signed-in then signed-out entry sequence.
func TestDocument_SetAndDelete(t *testing.T) {
	t.Parallel()

	document, _ := newTestDocument(t, 10, 4096)

	document.Write(FormatSession("__session", "abc123", time.Hour))

	value, ok := document.Get("__session")
	require.True(t, ok)
	assert.Equal(t, "abc123", value)
	assert.Equal(t, "__session=abc123", document.Read())

	document.Write(FormatExpired("__session"))

	_, ok = document.Get("__session")
	assert.False(t, ok)
	assert.Empty(t, document.Read())
}

// TestDocument_MaxAgeExpiry tests that cookies disappear once their max-age elapses.
func TestDocument_MaxAgeExpiry(t *testing.T) {
	t.Parallel()

	document, clock := newTestDocument(t, 10, 4096)

	document.Write("token=t1;max-age=3600")
	document.Write("theme=dark")

	clock.now = clock.now.Add(59 * time.Minute)
	assert.Equal(t, "token=t1; theme=dark", document.Read())

	clock.now = clock.now.Add(time.Minute)
	assert.Equal(t, "theme=dark", document.Read())
}

// TestDocument_ZeroMaxAgeDeletes tests that max-age=0 removes a cookie.
func TestDocument_ZeroMaxAgeDeletes(t *testing.T) {
	t.Parallel()

	document, _ := newTestDocument(t, 10, 4096)

	document.Write("token=t1;max-age=3600")
	document.Write("token=;max-age=0")

	assert.Empty(t, document.Read())
}

// TestDocument_FutureExpires tests that an expires attribute in the future keeps the cookie.
func TestDocument_FutureExpires(t *testing.T) {
	t.Parallel()

	document, clock := newTestDocument(t, 10, 4096)

	document.Write("token=t1;expires=Sat, 01 Mar 2025 13:00:00 GMT")
	assert.Equal(t, "token=t1", document.Read())

	clock.now = clock.now.Add(2 * time.Hour)
	assert.Empty(t, document.Read())
}

// TestDocument_Overwrite tests that writing an existing name replaces its value.
func TestDocument_Overwrite(t *testing.T) {
	t.Parallel()

	document, _ := newTestDocument(t, 10, 4096)

	document.Write("a=1")
	document.Write("b=2")
	document.Write("a=3")

	assert.Equal(t, "b=2; a=3", document.Read())
}

// TestDocument_IgnoresInvalidEntries tests that malformed and oversized entries are dropped.
func TestDocument_IgnoresInvalidEntries(t *testing.T) {
	t.Parallel()

	document, _ := newTestDocument(t, 10, 16)

	document.Write("")
	document.Write("no-equals-sign")
	document.Write("big=" + strings.Repeat("x", 32))
	document.Write("ok=1")

	assert.Equal(t, "ok=1", document.Read())
}

// TestDocument_Eviction tests that the least recently written cookie is evicted when full.
func TestDocument_Eviction(t *testing.T) {
	t.Parallel()

	document, _ := newTestDocument(t, 2, 4096)

	document.Write("a=1")
	document.Write("b=2")
	document.Write("c=3")

	assert.Equal(t, "b=2; c=3", document.Read())

	_, ok := document.Get("a")
	assert.False(t, ok)
}
