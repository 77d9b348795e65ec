package cookie

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/tokencookie/internal/logger"
)

// ErrInvalidLimits is returned when a Document is created with non-positive limits.
var ErrInvalidLimits = errors.New("cookie limits must be positive")

// storedCookie is a live cookie. A zero expires marks a session cookie.
type storedCookie struct {
	value   string
	expires time.Time
}

// Document is an in-memory cookie store that applies entries the way a browser
// applies assignments to document.cookie. It is safe for concurrent use.
type Document struct {
	ctx           context.Context //nolint:containedctx // Only carries logger fields for Write, which has no ctx parameter.
	mu            sync.Mutex
	cookies       *lru.Cache[string, storedCookie]
	maxCookies    int
	maxCookieSize int64
	now           func() time.Time
}

// Ensure Document is both a store and an environment that has a document.
var (
	_ Store       = (*Document)(nil)
	_ Environment = (*Document)(nil)
)

// NewDocument creates an empty document that keeps at most maxCookies cookies,
// each at most maxCookieSize bytes of name plus value.
// When full, the least recently written cookie is evicted.
func NewDocument(ctx context.Context, maxCookies int, maxCookieSize int64) (*Document, error) {
	if maxCookies <= 0 || maxCookieSize <= 0 {
		return nil, fmt.Errorf("%w: max cookies %d, max cookie size %d", ErrInvalidLimits, maxCookies, maxCookieSize)
	}

	cookies, err := lru.New[string, storedCookie](maxCookies)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie cache: %w", err)
	}

	return &Document{
		ctx:           logger.WithName(ctx, "document"),
		cookies:       cookies,
		maxCookies:    maxCookies,
		maxCookieSize: maxCookieSize,
		now:           time.Now,
	}, nil
}

// CanUseDocument always returns true.
func (d *Document) CanUseDocument() bool {
	return true
}

// Cookies returns the document itself.
func (d *Document) Cookies() Store {
	return d
}

// Write applies an entry. Malformed and oversized entries are ignored.
func (d *Document) Write(entry string) {
	parsed, err := http.ParseSetCookie(entry)
	if err != nil {
		logger.Debugf(d.ctx, "Ignoring malformed cookie entry: %v", err)

		return
	}

	if size := int64(len(parsed.Name) + len(parsed.Value)); size > d.maxCookieSize {
		logger.Warnf(d.ctx, "Ignoring cookie '%s': %s exceeds the %s limit",
			parsed.Name,
			humanize.IBytes(uint64(size)),
			humanize.IBytes(uint64(d.maxCookieSize)))

		return
	}

	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	var expires time.Time

	switch {
	case parsed.MaxAge < 0:
		d.cookies.Remove(parsed.Name)

		return
	case parsed.MaxAge > 0:
		expires = now.Add(time.Duration(parsed.MaxAge) * time.Second)
	case !parsed.Expires.IsZero():
		if !parsed.Expires.After(now) {
			d.cookies.Remove(parsed.Name)

			return
		}

		expires = parsed.Expires
	}

	if !d.cookies.Contains(parsed.Name) && d.cookies.Len() >= d.maxCookies {
		if oldest, _, ok := d.cookies.GetOldest(); ok {
			logger.Debugf(d.ctx, "Cookie store is full, evicting '%s'", oldest)
		}
	}

	d.cookies.Add(parsed.Name, storedCookie{value: parsed.Value, expires: expires})

	if !expires.IsZero() {
		logger.Debugf(d.ctx, "Cookie '%s' set, expires %s", parsed.Name, humanize.RelTime(expires, now, "ago", "from now"))
	}
}

// Read returns the live cookies as "a=1; b=2", least recently written first.
func (d *Document) Read() string {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	pairs := make([]string, 0, d.cookies.Len())

	for _, name := range d.cookies.Keys() {
		stored, ok := d.cookies.Peek(name)
		if !ok {
			continue
		}

		if isExpired(stored, now) {
			d.cookies.Remove(name)

			continue
		}

		pairs = append(pairs, name+"="+stored.value)
	}

	return strings.Join(pairs, "; ")
}

// Get returns the value of a live cookie.
func (d *Document) Get(name string) (string, bool) {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	stored, ok := d.cookies.Peek(name)
	if !ok {
		return "", false
	}

	if isExpired(stored, now) {
		d.cookies.Remove(name)

		return "", false
	}

	return stored.value, true
}

func isExpired(stored storedCookie, now time.Time) bool {
	return !stored.expires.IsZero() && !stored.expires.After(now)
}
