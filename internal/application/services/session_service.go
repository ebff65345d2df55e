// Package services provides the application services of the sync engine:
// session lifecycle, the three domain collections, catalog and order reads,
// and voice search.
package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/session"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/gateway"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/messaging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/security"
)

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// SessionService owns the authentication lifecycle: token plus profile,
// restored from the persistent store at bootstrap, cleared on logout or on an
// unauthorized signal from the gateway.
type SessionService struct {
	store       *store.Store
	gateway     *gateway.Gateway
	broadcaster *messaging.Broadcaster
	logger      *logging.ChanneledLogger
	deviceKey   string

	mu           sync.Mutex
	current      session.Session
	bootstrapped bool
	onLogout     func()
}

// NewSessionService creates the session service and registers the forced-
// logout side channel on the gateway.
func NewSessionService(st *store.Store, gw *gateway.Gateway, broadcaster *messaging.Broadcaster, deviceKey string, logger *logging.ChanneledLogger) *SessionService {
	s := &SessionService{
		store:       st,
		gateway:     gw,
		broadcaster: broadcaster,
		logger:      logger,
		deviceKey:   deviceKey,
		current:     session.Session{Status: session.StatusUnknown},
	}
	gw.OnUnauthorized(s.ForceLogout)
	return s
}

// OnLogout registers the hook that resets the domain collections after a
// logout or forced logout.
func (s *SessionService) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = fn
}

// Current returns a copy of the session state.
func (s *SessionService) Current() session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Token returns the live bearer token, or empty when anonymous. Handed to
// the gateway on every authenticated call.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Status != session.StatusAuthenticated {
		return ""
	}
	return s.current.Token
}

// Bootstrap restores the session from the persistent store. It runs exactly
// once per process lifetime; later calls return the settled status. The
// store must already be synced.
func (s *SessionService) Bootstrap() session.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bootstrapped {
		return s.current.Status
	}
	s.bootstrapped = true
	s.current.Status = session.StatusRestoring

	start := time.Now()

	var sealed string
	token := ""
	if s.store.Get(store.KeyAuthToken, &sealed) && sealed != "" {
		plain, err := security.Open(sealed, s.deviceKey)
		if err != nil {
			if s.logger != nil {
				s.logger.Auth().Warn("Discarding unreadable sealed token", "error", err.Error())
			}
		} else {
			token = plain
		}
	}

	if token != "" && security.TokenExpired(token, time.Now().UTC()) {
		if s.logger != nil {
			s.logger.Auth().Info("Persisted token expired, starting anonymous")
		}
		token = ""
	}

	if token == "" {
		s.current = session.Session{Status: session.StatusAnonymous}
		if s.logger != nil {
			s.logger.Auth().Info("Session restored", "status", string(session.StatusAnonymous), "duration", time.Since(start))
		}
		return s.current.Status
	}

	s.current = session.Session{Token: token, Status: session.StatusAuthenticated}

	var profile session.Profile
	if s.store.Get(store.KeyAuthProfile, &profile) {
		s.current.User = &profile
	}

	if s.logger != nil {
		s.logger.Auth().Info("Session restored",
			"status", string(session.StatusAuthenticated),
			"hasProfile", s.current.User != nil,
			"duration", time.Since(start))
	}
	return s.current.Status
}

// Login persists the token (and profile, when supplied) before flipping the
// state to authenticated. A failed persistence write leaves the state
// untouched and surfaces to the caller.
func (s *SessionService) Login(token string, profile *session.Profile) error {
	if token == "" {
		return errors.New("session: empty token")
	}

	sealed, err := security.Seal(token, s.deviceKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(store.KeyAuthToken, sealed); err != nil {
		if s.logger != nil {
			s.logger.Auth().Error("Login aborted, token write failed", "error", err.Error())
		}
		return err
	}

	if profile != nil {
		if err := s.store.Set(store.KeyAuthProfile, *profile); err != nil {
			if s.logger != nil {
				s.logger.Auth().Error("Login aborted, profile write failed", "error", err.Error())
			}
			return err
		}
	}

	s.current = session.Session{Token: token, User: profile, Status: session.StatusAuthenticated}

	if s.logger != nil {
		s.logger.Auth().Info("Session authenticated", "hasProfile", profile != nil)
	}
	s.publishLocked()
	return nil
}

// Logout notifies the backend best-effort, clears every key owned by the
// layer, and settles the session as anonymous. The state transition never
// depends on remote availability; a failed storage clear is surfaced but the
// transition still completes.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	token := s.current.Token
	s.mu.Unlock()

	if token != "" {
		if _, err := s.gateway.Request(ctx, http.MethodPost, "/logout", gateway.Options{Token: token}); err != nil {
			if s.logger != nil {
				s.logger.Auth().Warn("Remote logout failed, proceeding locally", "kind", string(gateway.KindOf(err)))
			}
		}
	}

	return s.clearLocal("logout")
}

// ForceLogout is the unauthorized side channel: any gateway call returning
// 401 invalidates the local session without remote involvement.
func (s *SessionService) ForceLogout() {
	s.mu.Lock()
	alreadyAnonymous := s.current.Status == session.StatusAnonymous
	s.mu.Unlock()
	if alreadyAnonymous {
		return
	}

	if s.logger != nil {
		s.logger.Auth().Warn("Unauthorized response received, forcing logout")
	}
	_ = s.clearLocal("forced_logout")
}

func (s *SessionService) clearLocal(reason string) error {
	clearErr := s.store.ClearAll()

	s.mu.Lock()
	s.current = session.Session{Status: session.StatusAnonymous}
	fn := s.onLogout
	s.mu.Unlock()

	if fn != nil {
		fn()
	}

	if s.logger != nil {
		if clearErr != nil {
			s.logger.Auth().Error("Local clear failed during logout", "reason", reason, "error", clearErr.Error())
		} else {
			s.logger.Auth().Info("Session cleared", "reason", reason)
		}
	}

	s.mu.Lock()
	s.publishLocked()
	s.mu.Unlock()
	return clearErr
}

// RefreshProfile fetches GET /profile and replaces the local profile
// wholesale.
func (s *SessionService) RefreshProfile(ctx context.Context) (*session.Profile, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	var profile session.Profile
	if err := s.gateway.RequestInto(ctx, http.MethodGet, "/profile", gateway.Options{Token: token}, &profile); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A forced logout may have raced the fetch; a profile without a token
	// would break the session invariant.
	if s.current.Status != session.StatusAuthenticated {
		return nil, ErrNotAuthenticated
	}

	if err := s.store.Set(store.KeyAuthProfile, profile); err != nil {
		return nil, err
	}
	s.current.User = &profile

	if s.logger != nil {
		s.logger.Auth().Info("Profile refreshed", "name", profile.Name)
	}
	s.publishLocked()
	return &profile, nil
}

func (s *SessionService) publishLocked() {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Publish("session", map[string]any{
		"status":     string(s.current.Status),
		"hasProfile": s.current.User != nil,
	})
}
