package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"perftrack/internal/domain/identity"
)

type stubLoader struct {
	users map[int64]identity.User
}

func (s *stubLoader) UserByID(ctx context.Context, id int64) (identity.User, error) {
	user, ok := s.users[id]
	if !ok {
		return identity.User{}, fmt.Errorf("no user %d", id)
	}
	return user, nil
}

const testSecret = "unit-test-secret"

func authedRequest(t *testing.T, userID int64) *http.Request {
	t.Helper()
	token, err := identity.GenerateToken(testSecret, userID)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestAuthenticate(t *testing.T) {
	loader := &stubLoader{users: map[int64]identity.User{
		1: {ID: 1, Role: identity.RoleAdmin, IsActive: true},
		2: {ID: 2, Role: identity.RoleEmployee, IsActive: false},
	}}
	mw := Authenticate(testSecret, loader)

	var got identity.User
	var present bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = GetUser(r.Context())
	})

	t.Run("valid token", func(t *testing.T) {
		mw(next).ServeHTTP(httptest.NewRecorder(), authedRequest(t, 1))
		if !present || got.ID != 1 {
			t.Fatalf("user not attached: present=%v got=%+v", present, got)
		}
	})

	t.Run("inactive user dropped", func(t *testing.T) {
		present = false
		mw(next).ServeHTTP(httptest.NewRecorder(), authedRequest(t, 2))
		if present {
			t.Fatal("deactivated user should not authenticate")
		}
	})

	t.Run("unknown user dropped", func(t *testing.T) {
		present = false
		mw(next).ServeHTTP(httptest.NewRecorder(), authedRequest(t, 99))
		if present {
			t.Fatal("unknown subject should not authenticate")
		}
	})

	t.Run("no token passes through", func(t *testing.T) {
		present = false
		mw(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if present {
			t.Fatal("anonymous request should carry no user")
		}
	})

	t.Run("garbage token passes through", func(t *testing.T) {
		present = false
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer garbage")
		mw(next).ServeHTTP(httptest.NewRecorder(), r)
		if present {
			t.Fatal("bad token should carry no user")
		}
	})
}

func TestRequireRole(t *testing.T) {
	loader := &stubLoader{users: map[int64]identity.User{
		1: {ID: 1, Role: identity.RoleAdmin, IsActive: true},
		3: {ID: 3, Role: identity.RoleEmployee, IsActive: true},
	}}
	auth := Authenticate(testSecret, loader)

	handler := func(roles ...string) http.Handler {
		return auth(RequireRole(roles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))
	}

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(identity.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("wrong role", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(identity.RoleAdmin, identity.RoleManager).ServeHTTP(w, authedRequest(t, 3))
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
	})

	t.Run("allowed role", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(identity.RoleAdmin).ServeHTTP(w, authedRequest(t, 1))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("any authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler().ServeHTTP(w, authedRequest(t, 3))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	w := httptest.NewRecorder()
	RequestID(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatal("request id not generated")
	}
	if w.Header().Get("X-Request-ID") != seen {
		t.Fatal("request id not echoed in the response header")
	}

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "client-chosen")
	RequestID(next).ServeHTTP(w, r)
	if seen != "client-chosen" {
		t.Fatalf("client id not honored: %q", seen)
	}
}
