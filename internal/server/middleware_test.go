package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tvcorporativa/internal/config"
	"tvcorporativa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return &Server{
		config: &config.Config{
			Debug: true,
			Branding: config.Branding{
				Name: "TV Corporativa",
			},
			JWT: config.JWT{
				Secret:          "test-secret",
				ExpirationHours: 1,
			},
		},
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	s := newTestServer()

	user := &domain.User{
		Username:    "maria",
		DisplayName: "Maria",
		Role:        domain.RoleEditor,
		Perms:       domain.Perms{News: true},
	}
	token, err := s.generateToken(user)
	require.NoError(t, err)

	var seen *Claims
	handler := s.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getUserClaims(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "maria", seen.Username)
	assert.Equal(t, domain.RoleEditor, seen.Role)
	assert.True(t, seen.Perms.News)
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	s := newTestServer()

	token, err := s.generateToken(&domain.User{Username: "admin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	handler := s.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	s := newTestServer()

	handler := s.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	s := newTestServer()

	handler := s.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// The stale cookie gets cleared on the way out.
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPermMiddleware(t *testing.T) {
	s := newTestServer()

	run := func(user *domain.User, perm string) int {
		token, err := s.generateToken(user)
		require.NoError(t, err)

		handler := s.authMiddleware(s.permMiddleware(perm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		req := httptest.NewRequest(http.MethodGet, "/admin/news", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	editor := &domain.User{Username: "joao", Role: domain.RoleEditor, Perms: domain.Perms{News: true}}
	assert.Equal(t, http.StatusOK, run(editor, domain.PermNews))
	assert.Equal(t, http.StatusForbidden, run(editor, domain.PermVideos))

	admin := &domain.User{Username: "admin", Role: domain.RoleAdmin}
	assert.Equal(t, http.StatusOK, run(admin, domain.PermUsers))
}

func TestPermMiddlewareNoSession(t *testing.T) {
	s := newTestServer()

	handler := s.permMiddleware(domain.PermNews)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without session claims")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/news", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
