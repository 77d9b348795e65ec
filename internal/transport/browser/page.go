package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/stealth"

	"github.com/oshokin/tokencookie/internal/cookie"
	"github.com/oshokin/tokencookie/internal/logger"
)

const (
	// hasDocumentJS reports whether the page exposes a document.
	hasDocumentJS = `() => typeof document !== 'undefined'`

	// readCookieJS returns the page's cookie string.
	readCookieJS = `() => document.cookie`

	// writeCookieJS assigns a single entry to the page's cookie string.
	writeCookieJS = `(entry) => { document.cookie = entry; }`
)

// ErrNilBrowser is returned when OpenPage is called without a browser.
var ErrNilBrowser = errors.New("browser is nil")

// Page exposes the document.cookie of a rod page as a cookie environment.
type Page struct {
	ctx  context.Context //nolint:containedctx // Only carries logger fields for Store methods, which have no ctx parameter.
	page *rod.Page
}

// Ensure Page is both a store and an environment.
var (
	_ cookie.Store       = (*Page)(nil)
	_ cookie.Environment = (*Page)(nil)
)

// NewPage wraps an existing rod page. A nil page yields an environment without a document.
func NewPage(ctx context.Context, page *rod.Page) *Page {
	return &Page{
		ctx:  logger.WithName(ctx, "browser"),
		page: page,
	}
}

// OpenPage opens a stealth page in browser, navigates it to url and waits for it to load.
func OpenPage(ctx context.Context, browser *rod.Browser, url string) (*Page, error) {
	if browser == nil {
		return nil, ErrNilBrowser
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page = page.Context(ctx)

	logger.Debugf(ctx, "Navigating to %s", url)

	if err = page.Navigate(url); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	if err = page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to wait for %s to load: %w", url, err)
	}

	return NewPage(ctx, page), nil
}

// CanUseDocument reports whether the page is alive and exposes a document.
func (p *Page) CanUseDocument() (ok bool) {
	if p.page == nil {
		return false
	}

	defer func() {
		// Rod panics when the page or browser is already gone.
		if r := recover(); r != nil {
			logger.Debugf(p.ctx, "CanUseDocument panic recovered: %v", r)

			ok = false
		}
	}()

	result, err := p.page.Eval(hasDocumentJS)
	if err != nil {
		logger.Debugf(p.ctx, "Document check failed: %v", err)

		return false
	}

	return result.Value.Bool()
}

// Cookies returns the page itself.
func (p *Page) Cookies() cookie.Store {
	return p
}

// Read returns the page's document.cookie, or an empty string if it cannot be read.
func (p *Page) Read() (cookies string) {
	if p.page == nil {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(p.ctx, "Read panic recovered: %v", r)

			cookies = ""
		}
	}()

	result, err := p.page.Eval(readCookieJS)
	if err != nil {
		logger.Debugf(p.ctx, "Failed to read document.cookie: %v", err)

		return ""
	}

	return result.Value.Str()
}

// Write assigns entry to the page's document.cookie. Failures are logged and otherwise ignored.
func (p *Page) Write(entry string) {
	if p.page == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(p.ctx, "Write panic recovered: %v", r)
		}
	}()

	if _, err := p.page.Eval(writeCookieJS, entry); err != nil {
		logger.Errorf(p.ctx, "Failed to write document.cookie: %v", err)
	}
}
