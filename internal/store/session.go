package store

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/storage"
)

const sessionDocName = "session"

// AuthAPI is the slice of the REST client the session needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.Session, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.Session, error)
	Logout(ctx context.Context) error
}

type sessionDoc struct {
	Token string   `toml:"token"`
	User  api.User `toml:"user"`
}

// Session holds the authenticated user and token. It implements
// api.TokenSource so the REST client picks the token up automatically, and it
// owns the login/logout lifecycle of the other stores through registered
// sync and reset hooks.
type Session struct {
	mu    sync.Mutex
	token string
	user  api.User

	api     AuthAPI
	storage storage.Adapter
	notify  Notifier

	syncHooks  []func(ctx context.Context) error
	resetHooks []func()
}

// NewSession builds a session store and restores a persisted session, unless
// its token has already expired.
func NewSession(adapter storage.Adapter, notify Notifier) *Session {
	if notify == nil {
		notify = NopNotifier{}
	}
	s := &Session{
		storage: adapter,
		notify:  notify,
	}
	var doc sessionDoc
	if ok, err := adapter.Load(sessionDocName, &doc); err == nil && ok {
		if doc.Token != "" && !tokenExpired(doc.Token) {
			s.token = doc.Token
			s.user = doc.User
		} else {
			_ = adapter.Delete(sessionDocName)
		}
	}
	return s
}

// AttachClient wires the auth API after construction. The session and the
// REST client reference each other, so one side has to attach late.
func (s *Session) AttachClient(client AuthAPI) {
	s.mu.Lock()
	s.api = client
	s.mu.Unlock()
}

// RegisterSync adds a per-store server synchronization hook. Hooks run once,
// in registration order, after a successful login or signup.
func (s *Session) RegisterSync(fn func(ctx context.Context) error) {
	s.syncHooks = append(s.syncHooks, fn)
}

// RegisterReset adds a per-store reset hook. Hooks run on logout and on a
// forced 401 logout.
func (s *Session) RegisterReset(fn func()) {
	s.resetHooks = append(s.resetHooks, fn)
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the signed-in user.
func (s *Session) User() api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a token is present.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Login authenticates and then runs every registered sync hook once, merging
// guest-accumulated state into the server's. Hook failures surface as notices
// but do not fail the login.
func (s *Session) Login(ctx context.Context, email, password string) error {
	session, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.establish(ctx, session)
	return nil
}

// Signup creates an account and signs in, with the same sync behavior as
// Login.
func (s *Session) Signup(ctx context.Context, req api.SignupRequest) error {
	session, err := s.api.Signup(ctx, req)
	if err != nil {
		return err
	}
	s.establish(ctx, session)
	return nil
}

// Logout invalidates the token server-side (best effort) and clears all
// client state.
func (s *Session) Logout(ctx context.Context) {
	if s.IsAuthenticated() {
		_ = s.api.Logout(ctx)
	}
	s.clear()
}

// ForceLogout clears the session in response to a 401 and tells the user why
// they are suddenly signed out. Safe to call repeatedly; a session already
// cleared is a no-op, which also keeps the 401 handler from re-entering
// itself through the logout call.
func (s *Session) ForceLogout() {
	if s.clear() {
		s.notify.Error("Session expired, please sign in again")
	}
}

// clear drops the token, the persisted session, and every store's client
// state. Reports whether there was a session to clear.
func (s *Session) clear() bool {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return false
	}
	s.token = ""
	s.user = api.User{}
	s.mu.Unlock()

	_ = s.storage.Delete(sessionDocName)
	for _, reset := range s.resetHooks {
		reset()
	}
	return true
}

func (s *Session) establish(ctx context.Context, session *api.Session) {
	s.mu.Lock()
	s.token = session.Token
	s.user = session.User
	s.mu.Unlock()
	_ = s.storage.Save(sessionDocName, sessionDoc{Token: session.Token, User: session.User})

	for _, sync := range s.syncHooks {
		if err := sync(ctx); err != nil {
			s.notify.Error("Some of your saved items could not be synced")
		}
	}
}

// tokenExpired inspects the exp claim without verifying the signature; the
// backend is the authority, this only avoids restoring an obviously dead
// session. Tokens that do not parse as JWTs are kept.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
