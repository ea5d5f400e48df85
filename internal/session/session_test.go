package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mayagen-web/internal/backend"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestRestoreWithoutToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	s := New("", nil)
	s.Restore(context.Background(), backend.NewClient(srv.URL, s.Token))

	if called {
		t.Error("no token must mean logged-out without contacting the server")
	}
	if s.LoggedIn() {
		t.Error("session should be empty")
	}
}

func TestRestoreExpiredTokenSkipsServer(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	var persisted *string
	persist := func(tok string) error { persisted = &tok; return nil }

	s := New(signedToken(t, time.Now().Add(-time.Hour)), persist)
	s.Restore(context.Background(), backend.NewClient(srv.URL, s.Token))

	if called {
		t.Error("expired token must be treated as logged-out locally")
	}
	if s.Token() != "" {
		t.Error("expired token should be cleared")
	}
	if persisted == nil || *persisted != "" {
		t.Error("cleared token should be persisted")
	}
}

func TestRestorePopulatesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":5,"username":"gen","email":"g@x.io"}}`))
	}))
	defer srv.Close()

	s := New(signedToken(t, time.Now().Add(time.Hour)), nil)
	s.Restore(context.Background(), backend.NewClient(srv.URL, s.Token))

	u := s.User()
	if u == nil || u.Username != "gen" || u.ID != 5 {
		t.Fatalf("user = %+v", u)
	}
}

func TestRestore401IsSilentLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	// an opaque (non-JWT) token goes through to the server check
	s := New("opaque-token", nil)
	s.Restore(context.Background(), backend.NewClient(srv.URL, s.Token))

	if s.LoggedIn() || s.Token() != "" {
		t.Error("401 should clear the session")
	}
}

func TestLoginLogoutLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/token":
			w.Write([]byte(`{"success":true,"data":{"access_token":"tok"}}`))
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"success":true,"data":{"id":5,"username":"gen","email":"g@x.io"}}`))
		}
	}))
	defer srv.Close()

	var persisted []string
	s := New("", func(tok string) error { persisted = append(persisted, tok); return nil })
	api := backend.NewClient(srv.URL, s.Token)

	if err := s.Login(context.Background(), api, "gen", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.LoggedIn() || s.Token() != "tok" {
		t.Fatal("login should populate session")
	}

	s.Logout()
	if s.LoggedIn() || s.Token() != "" {
		t.Fatal("logout should clear session")
	}
	if len(persisted) != 2 || persisted[0] != "tok" || persisted[1] != "" {
		t.Errorf("persist calls = %v, want [tok, \"\"]", persisted)
	}
}

func TestLoginFailureKeepsLoggedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"bad credentials"}`))
	}))
	defer srv.Close()

	s := New("", nil)
	api := backend.NewClient(srv.URL, s.Token)
	if err := s.Login(context.Background(), api, "gen", "wrong"); err == nil {
		t.Fatal("expected error")
	}
	if s.LoggedIn() || s.Token() != "" {
		t.Error("failed login must not leave a token behind")
	}
}
