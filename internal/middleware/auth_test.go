package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/blogcart-be/internal/auth"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/storage"
)

type stubUserStore struct {
	users map[string]models.User
}

func (s *stubUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (s *stubUserStore) FindUserByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *stubUserStore) ListUsers(_ context.Context) ([]models.User, error) {
	return nil, nil
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"", "", false},
		{"abc.def.ghi", "", false},
		{"bearer abc.def.ghi", "", false}, // scheme is case-sensitive
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Bearer  abc", "", false}, // exactly one space
		{"Basic dXNlcjpwYXNz", "", false},
	}

	for _, tc := range cases {
		token, ok := bearerToken(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Errorf("bearerToken(%q) = (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func requireUserHarness(t *testing.T, ttl time.Duration) (*auth.TokenManager, http.Handler) {
	t.Helper()

	tokens := auth.NewTokenManager("mw-secret", "blogcart-test", ttl)
	store := &stubUserStore{users: map[string]models.User{
		"u-1": {ID: "u-1", Name: "Alice", Email: "alice@example.com"},
	}}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return tokens, RequireUser(tokens, store, zap.NewNop())(inner)
}

func TestRequireUser_NoHeader(t *testing.T) {
	t.Parallel()

	_, handler := requireUserHarness(t, time.Hour)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireUser_InvalidToken(t *testing.T) {
	t.Parallel()

	_, handler := requireUserHarness(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireUser_ExpiredToken(t *testing.T) {
	t.Parallel()

	tokens, handler := requireUserHarness(t, -time.Minute)

	tok, err := tokens.Generate("u-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireUser_UnknownSubject(t *testing.T) {
	t.Parallel()

	tokens, handler := requireUserHarness(t, time.Hour)

	// Valid token for a user that no longer exists.
	tok, err := tokens.Generate("u-deleted")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireUser_AttachesIdentity(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("mw-secret", "blogcart-test", time.Hour)
	store := &stubUserStore{users: map[string]models.User{
		"u-1": {ID: "u-1", Name: "Alice", Email: "alice@example.com"},
	}}

	var seen models.User
	var sawUser bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, sawUser = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireUser(tokens, store, zap.NewNop())(inner)

	tok, err := tokens.Generate("u-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !sawUser || seen.ID != "u-1" || seen.Email != "alice@example.com" {
		t.Fatalf("handler did not receive the resolved identity: %+v (ok=%v)", seen, sawUser)
	}
}
