package bridge

import (
	"context"
	"sync"

	"github.com/oshokin/tokencookie/internal/client/auth"
	"github.com/oshokin/tokencookie/internal/constants"
	"github.com/oshokin/tokencookie/internal/cookie"
	"github.com/oshokin/tokencookie/internal/logger"
	"github.com/oshokin/tokencookie/internal/utils"
)

// cookieSync mirrors the identity token into one named cookie.
//
// Every token notification bumps seq and cancels the fetch started by the
// previous one. A fetch result is written only while its seq is still the
// latest, so a slow fetch can never overwrite a newer write.
type cookieSync struct {
	ctx    context.Context //nolint:containedctx // Parent of per-notification fetch contexts, detached from caller cancellation.
	name   string
	store  cookie.Store
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	// inFlight tracks running token fetches.
	inFlight sync.WaitGroup
}

func newCookieSync(ctx context.Context, name string, store cookie.Store) *cookieSync {
	return &cookieSync{
		ctx:   logger.WithKV(context.WithoutCancel(ctx), "cookie", name),
		name:  name,
		store: store,
	}
}

// listen is the id-token listener. It never blocks on the provider.
func (s *cookieSync) listen(user auth.User) {
	s.mu.Lock()

	s.seq++
	seq := s.seq

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if auth.IsSignedOut(user) {
		s.store.Write(cookie.FormatExpired(s.name))
		s.mu.Unlock()

		logger.Info(s.ctx, "User signed-out!")

		return
	}

	fetchCtx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.inFlight.Add(1)
	s.mu.Unlock()

	go s.copyToken(fetchCtx, cancel, seq, user)
}

// copyToken fetches the user's token and writes it if no newer notification arrived meanwhile.
func (s *cookieSync) copyToken(ctx context.Context, cancel context.CancelFunc, seq uint64, user auth.User) {
	defer s.inFlight.Done()
	defer cancel()

	idToken, err := user.GetIDToken(ctx)
	if err != nil {
		// Only a newer notification cancels the fetch context; a provider's own
		// context.Canceled is an ordinary failure.
		if ctx.Err() != nil {
			logger.Debugf(ctx, "Token fetch #%d cancelled by a newer notification", seq)

			return
		}

		logger.Errorf(ctx, "Failed to get ID token for user %s: %v", user.UID(), err)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		logger.Debugf(ctx, "Discarding stale token from fetch #%d, latest is #%d", seq, s.seq)

		return
	}

	// The token is mirrored for its full lifetime regardless of its content.
	s.store.Write(cookie.FormatSession(s.name, idToken, constants.IDTokenLifetime))

	logger.Infof(ctx, "User signed-in! ID Token: %s (%d characters)", utils.MaskSecret(idToken), len(idToken))
}

// wait blocks until every started token fetch has returned.
func (s *cookieSync) wait() {
	s.inFlight.Wait()
}
