package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oshokin/tokencookie/internal/client/auth"
	"github.com/oshokin/tokencookie/internal/cookie"
	"github.com/oshokin/tokencookie/internal/logger"
)

// Service exposes the readiness signal and the token-to-cookie synchronizer.
type Service interface {
	// Ready returns a channel that is closed once the provider reported its first auth state.
	Ready() <-chan struct{}
	// AwaitReady blocks until Ready is closed or ctx is done.
	AwaitReady(ctx context.Context) error
	// StartCookieSync keeps cookieName in step with the provider's identity token.
	StartCookieSync(ctx context.Context, cookieName string)
}

// ServiceImpl is the bridge between an authentication provider and a cookie environment.
type ServiceImpl struct {
	ctx       context.Context //nolint:containedctx // Carries the bridge_id logger field for listener callbacks.
	id        uuid.UUID
	client    auth.Client
	env       cookie.Environment
	readiness *readiness
	syncsMu   sync.Mutex
	syncs     []*cookieSync
}

// Ensure ServiceImpl satisfies Service.
var _ Service = (*ServiceImpl)(nil)

// NewService creates a bridge and immediately subscribes to the provider's auth state.
// A nil env is treated as an environment without a document.
func NewService(ctx context.Context, client auth.Client, env cookie.Environment) *ServiceImpl {
	if env == nil {
		env = cookie.NoDocument
	}

	id := uuid.New()
	ctx = logger.WithKV(logger.WithName(ctx, "bridge"), "bridge_id", id.String())

	s := &ServiceImpl{
		ctx:    ctx,
		id:     id,
		client: client,
		env:    env,
	}

	s.readiness = newReadiness(func(user auth.User) {
		if auth.IsSignedOut(user) {
			logger.Debug(ctx, "Auth ready, nobody is signed in")

			return
		}

		logger.Debugf(ctx, "Auth ready, user %s is signed in", user.UID())
	})

	s.readiness.attach(client.OnAuthStateChanged(s.readiness.listen))

	return s
}

// Ready returns a channel that is closed once the provider reported its first auth state.
// It is never closed if the provider never reports.
func (s *ServiceImpl) Ready() <-chan struct{} {
	return s.readiness.ready
}

// AwaitReady blocks until the provider reported its first auth state.
// The bridge imposes no timeout; it returns ctx.Err() when ctx is done first.
func (s *ServiceImpl) AwaitReady(ctx context.Context) error {
	select {
	case <-s.readiness.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartCookieSync subscribes to identity token changes and mirrors each token into cookieName.
// A signed-in user's token is written with a one-hour max-age, a sign-out expires the cookie.
//
// Nothing happens when the environment has no document. The subscription is never
// released and is not cancelled by ctx; call it at most once per cookie name.
func (s *ServiceImpl) StartCookieSync(ctx context.Context, cookieName string) {
	ctx = logger.WithKV(ctx, "bridge_id", s.id.String())

	if !s.env.CanUseDocument() {
		logger.Debugf(ctx, "No document available, not syncing cookie '%s'", cookieName)

		return
	}

	tokenSync := newCookieSync(ctx, cookieName, s.env.Cookies())

	s.syncsMu.Lock()
	s.syncs = append(s.syncs, tokenSync)
	s.syncsMu.Unlock()

	logger.Debugf(ctx, "Keeping the ID token in the '%s' cookie", cookieName)

	// The subscription is never released, so its handle is not kept.
	s.client.OnIDTokenChanged(tokenSync.listen)
}

// wait blocks until every token fetch started so far has returned.
func (s *ServiceImpl) wait() {
	s.syncsMu.Lock()
	syncs := append([]*cookieSync(nil), s.syncs...)
	s.syncsMu.Unlock()

	for _, tokenSync := range syncs {
		tokenSync.wait()
	}
}
