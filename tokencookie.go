package tokencookie

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/oshokin/tokencookie/internal/client/auth"
	"github.com/oshokin/tokencookie/internal/config"
	"github.com/oshokin/tokencookie/internal/cookie"
	"github.com/oshokin/tokencookie/internal/logger"
	"github.com/oshokin/tokencookie/internal/service/bridge"
	"github.com/oshokin/tokencookie/internal/transport/browser"
)

type (
	// Client is the subscription surface of an authentication provider.
	Client = auth.Client
	// User is the signed-in principal reported by the provider.
	User = auth.User
	// Listener receives provider notifications. A nil user means nobody is signed in.
	Listener = auth.Listener
	// Unsubscribe detaches a listener.
	Unsubscribe = auth.Unsubscribe
	// Hub is an in-process provider.
	Hub = auth.Hub
	// StaticUser is a User with a fixed token.
	StaticUser = auth.StaticUser
	// Environment describes whether a document and its cookie store are available.
	Environment = cookie.Environment
	// Store is a mutable cookie string in the style of document.cookie.
	Store = cookie.Store
	// Document is an in-memory Store that applies entries like a browser.
	Document = cookie.Document
	// Page is an environment backed by the document.cookie of a browser page.
	Page = browser.Page
	// Config holds the settings used by Setup.
	Config = config.Config
)

// NoDocument is the environment of a process that has no document.
//
//nolint:gochecknoglobals // Re-export of a stateless value.
var NoDocument = cookie.NoDocument

// NewHub creates an in-process provider that has not reported any state yet.
func NewHub() *Hub {
	return auth.NewHub()
}

// NewDocument creates an in-memory cookie store with the given limits.
func NewDocument(ctx context.Context, maxCookies int, maxCookieSize int64) (*Document, error) {
	return cookie.NewDocument(ctx, maxCookies, maxCookieSize)
}

// NewPage wraps a rod page as a cookie environment. A nil page has no document.
func NewPage(ctx context.Context, page *rod.Page) *Page {
	return browser.NewPage(ctx, page)
}

// OpenPage opens url in a stealth page of browser and returns it as a cookie environment.
func OpenPage(ctx context.Context, browserInstance *rod.Browser, url string) (*Page, error) {
	return browser.OpenPage(ctx, browserInstance, url)
}

// Tools is the pair handed back to callers.
type Tools struct {
	// AuthReady is closed once the provider reported its first auth state.
	AuthReady <-chan struct{}
	// AwaitReady blocks until AuthReady is closed or ctx is done, in which case it returns ctx.Err().
	AwaitReady func(ctx context.Context) error
	// CopyIDTokenToCookie keeps the named cookie in step with the identity token.
	// It does nothing without a document. Call it at most once per cookie name.
	CopyIDTokenToCookie func(cookieName string)
	// Config holds the settings the tools were built with. It is nil for NewTools.
	Config *Config
	// Environment is the cookie environment the tools write into.
	Environment Environment
}

// NewTools subscribes to client's auth state and returns the readiness signal and the cookie synchronizer.
// A nil env is treated as an environment without a document.
func NewTools(ctx context.Context, client Client, env Environment) Tools {
	service := bridge.NewService(ctx, client, env)

	if env == nil {
		env = cookie.NoDocument
	}

	return Tools{
		AuthReady:  service.Ready(),
		AwaitReady: service.AwaitReady,
		CopyIDTokenToCookie: func(cookieName string) {
			service.StartCookieSync(ctx, cookieName)
		},
		Environment: env,
	}
}

// Setup loads configFile, applies its log level and builds the tools.
// When env is nil, an in-memory Document sized by the configuration is used.
// The cookie sync is not started; call Tools.CopyIDTokenToCookie with Tools.Config.CookieName.
func Setup(ctx context.Context, configFile string, client Client, env Environment) (Tools, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return Tools{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err = config.ValidateConfig(cfg); err != nil {
		return Tools{}, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.SetLevel(cfg.ParsedLogLevel)

	if env == nil {
		env, err = cookie.NewDocument(ctx, cfg.MaxCookies, cfg.ParsedMaxCookieSize)
		if err != nil {
			return Tools{}, fmt.Errorf("failed to create cookie document: %w", err)
		}
	}

	tools := NewTools(ctx, client, env)
	tools.Config = cfg

	return tools, nil
}
