package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tvcorporativa/internal/domain"
	"tvcorporativa/internal/repository"
	"tvcorporativa/internal/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory TableStore for handler tests.
type memStore struct {
	tables map[string][]repository.Row
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string][]repository.Row)}
}

func (s *memStore) ReadTable(_ context.Context, name string, columns []string) ([]repository.Row, error) {
	stored := s.tables[name]
	rows := make([]repository.Row, 0, len(stored))
	for _, r := range stored {
		row := repository.Row{}
		for _, col := range columns {
			row[col] = r[col]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *memStore) WriteTable(_ context.Context, name string, columns []string, rows []repository.Row) error {
	stored := make([]repository.Row, 0, len(rows))
	for _, r := range rows {
		row := repository.Row{}
		for _, col := range columns {
			row[col] = r[col]
		}
		stored = append(stored, row)
	}
	s.tables[name] = stored
	return nil
}

// writeTestTemplates lays down a minimal template tree so handlers can
// render; the layout surfaces the flash message for assertions.
func writeTestTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	layout := `{{if .Flash}}FLASH:{{.Flash.Message}}{{end}}{{template "content" .}}`
	pages := map[string]string{
		"pages/public/login.html":   `{{define "content"}}login{{end}}`,
		"pages/admin/settings.html": `{{define "content"}}news={{.Data.NewsInterval}}{{end}}`,
	}

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "layouts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layouts", "base.html"), []byte(layout), 0o644))
	for name, content := range pages {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func newHandlerTestServer(t *testing.T) *Server {
	t.Helper()

	tmpl, err := templates.NewManager(writeTestTemplates(t), false)
	require.NoError(t, err)

	s := newTestServer()
	s.repos = repository.New(newMemStore())
	s.templates = tmpl
	return s
}

func seedUser(t *testing.T, s *Server, username, password string, active bool) {
	t.Helper()

	hash, err := repository.HashPassword(password)
	require.NoError(t, err)

	err = s.repos.Users.Upsert(context.Background(), domain.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: hash,
		Role:         domain.RoleEditor,
		Active:       active,
	})
	require.NoError(t, err)
}

func postLogin(s *Server, username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.handleLogin(rec, req)
	return rec
}

func TestLoginRejectionReasons(t *testing.T) {
	s := newHandlerTestServer(t)
	seedUser(t, s, "maria", "s3nha-forte", true)
	seedUser(t, s, "carlos", "outra-senha", false)

	tests := []struct {
		name     string
		username string
		password string
		message  string
	}{
		{"unknown user", "ninguem", "qualquer", "Usuário não encontrado"},
		{"inactive account", "carlos", "outra-senha", "Usuário desativado"},
		{"wrong password", "maria", "errada", "Senha inválida"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(s, tt.username, tt.password)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "FLASH:"+tt.message)
			for _, c := range rec.Result().Cookies() {
				assert.NotEqual(t, "auth_token", c.Name)
			}
		})
	}
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	s := newHandlerTestServer(t)
	seedUser(t, s, "maria", "s3nha-forte", true)

	rec := postLogin(s, "maria", "s3nha-forte")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	// The issued cookie passes the auth middleware.
	handler := s.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := getUserClaims(r)
		require.NotNil(t, claims)
		assert.Equal(t, "maria", claims.Username)
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	authRec := httptest.NewRecorder()
	handler.ServeHTTP(authRec, req)
	assert.Equal(t, http.StatusOK, authRec.Code)
}

func TestUpdateSettingsRejectsBadInterval(t *testing.T) {
	s := newHandlerTestServer(t)

	form := url.Values{}
	form.Set("news_interval_sec", "zero")

	req := httptest.NewRequest(http.MethodPost, "/admin/settings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.handleUpdateSettings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "FLASH:Intervalos devem ser números inteiros positivos")
	// The re-rendered form still carries the current values.
	assert.Contains(t, body, "news=10")
}
