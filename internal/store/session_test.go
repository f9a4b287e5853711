package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/storage"
)

type fakeAuthAPI struct {
	session  *api.Session
	errLogin error

	logoutCalls int
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (*api.Session, error) {
	if f.errLogin != nil {
		return nil, f.errLogin
	}
	return f.session, nil
}

func (f *fakeAuthAPI) Signup(context.Context, api.SignupRequest) (*api.Session, error) {
	return f.session, nil
}

func (f *fakeAuthAPI) Logout(context.Context) error {
	f.logoutCalls++
	return nil
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSession_LoginRunsSyncHooksOnce(t *testing.T) {
	backend := &fakeAuthAPI{session: &api.Session{Token: "tok", User: api.User{ID: "u1", Name: "Amina"}}}
	session := NewSession(storage.NewMemoryAdapter(), NopNotifier{})
	session.AttachClient(backend)

	var order []string
	session.RegisterSync(func(context.Context) error {
		order = append(order, "cart")
		return nil
	})
	session.RegisterSync(func(context.Context) error {
		order = append(order, "wishlist")
		return nil
	})

	if err := session.Login(context.Background(), "amina@example.com", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !session.IsAuthenticated() || session.Token() != "tok" {
		t.Fatalf("session = (%v, %q), want authenticated with tok", session.IsAuthenticated(), session.Token())
	}
	if session.User().Name != "Amina" {
		t.Fatalf("user = %+v, want Amina", session.User())
	}
	if len(order) != 2 || order[0] != "cart" || order[1] != "wishlist" {
		t.Fatalf("sync hooks ran %v, want [cart wishlist] once each", order)
	}
}

func TestSession_SyncHookFailureDoesNotFailLogin(t *testing.T) {
	backend := &fakeAuthAPI{session: &api.Session{Token: "tok"}}
	notify := &recordingNotifier{}
	session := NewSession(storage.NewMemoryAdapter(), notify)
	session.AttachClient(backend)
	session.RegisterSync(func(context.Context) error { return errors.New("boom") })

	if err := session.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !session.IsAuthenticated() {
		t.Fatal("session not authenticated after login")
	}
	if len(notify.errors) != 1 {
		t.Fatalf("error notices = %v, want sync failure surfaced", notify.errors)
	}
}

func TestSession_ForceLogoutRunsResetHooksOnce(t *testing.T) {
	backend := &fakeAuthAPI{session: &api.Session{Token: "tok"}}
	adapter := storage.NewMemoryAdapter()
	session := NewSession(adapter, NopNotifier{})
	session.AttachClient(backend)

	resets := 0
	session.RegisterReset(func() { resets++ })

	if err := session.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !adapter.Has(sessionDocName) {
		t.Fatal("session not persisted after login")
	}

	// A 401 can race a manual logout; the second call must be a no-op.
	session.ForceLogout()
	session.ForceLogout()

	if session.IsAuthenticated() {
		t.Fatal("session still authenticated after ForceLogout")
	}
	if adapter.Has(sessionDocName) {
		t.Fatal("persisted session not deleted")
	}
	if resets != 1 {
		t.Fatalf("reset hooks ran %d times, want 1", resets)
	}
}

func TestSession_LogoutCallsServerBestEffort(t *testing.T) {
	backend := &fakeAuthAPI{session: &api.Session{Token: "tok"}}
	session := NewSession(storage.NewMemoryAdapter(), NopNotifier{})
	session.AttachClient(backend)
	if err := session.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	session.Logout(context.Background())
	if backend.logoutCalls != 1 {
		t.Fatalf("logoutCalls = %d, want 1", backend.logoutCalls)
	}
	if session.IsAuthenticated() {
		t.Fatal("session still authenticated after Logout")
	}
}

func TestSession_RestoresPersistedSession(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	token := signedToken(t, time.Now().Add(time.Hour))
	if err := adapter.Save(sessionDocName, sessionDoc{Token: token, User: api.User{ID: "u1"}}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	session := NewSession(adapter, NopNotifier{})
	if !session.IsAuthenticated() || session.User().ID != "u1" {
		t.Fatalf("restored session = (%v, %+v), want authenticated u1", session.IsAuthenticated(), session.User())
	}
}

func TestSession_DiscardsExpiredToken(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	token := signedToken(t, time.Now().Add(-time.Hour))
	if err := adapter.Save(sessionDocName, sessionDoc{Token: token}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	session := NewSession(adapter, NopNotifier{})
	if session.IsAuthenticated() {
		t.Fatal("expired session restored, want discarded")
	}
	if adapter.Has(sessionDocName) {
		t.Fatal("expired session document not deleted")
	}
}

func TestSession_KeepsOpaqueToken(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	if err := adapter.Save(sessionDocName, sessionDoc{Token: "opaque-not-a-jwt"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	session := NewSession(adapter, NopNotifier{})
	if !session.IsAuthenticated() {
		t.Fatal("opaque token discarded, want kept (expiry unknowable)")
	}
}

func TestSession_ForceLogoutNotifiesSessionExpired(t *testing.T) {
	backend := &fakeAuthAPI{session: &api.Session{Token: "tok"}}
	notify := &recordingNotifier{}
	session := NewSession(storage.NewMemoryAdapter(), notify)
	session.AttachClient(backend)
	if err := session.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	session.ForceLogout()
	session.ForceLogout()

	if len(notify.errors) != 1 {
		t.Fatalf("error notices = %v, want exactly one", notify.errors)
	}
	if notify.errors[0] != "Session expired, please sign in again" {
		t.Fatalf("notice = %q, want session expired message", notify.errors[0])
	}
}

func TestSession_LogoutStaysQuiet(t *testing.T) {
	backend := &fakeAuthAPI{session: &api.Session{Token: "tok"}}
	notify := &recordingNotifier{}
	session := NewSession(storage.NewMemoryAdapter(), notify)
	session.AttachClient(backend)
	if err := session.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	session.Logout(context.Background())

	if len(notify.errors) != 0 {
		t.Fatalf("error notices after manual logout = %v, want none", notify.errors)
	}
}
