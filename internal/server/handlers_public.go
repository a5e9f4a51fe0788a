package server

import (
	"net/http"
	"time"

	"tvcorporativa/internal/repository"
)

func checkPasswordHash(password, hash string) bool {
	return repository.CheckPassword(password, hash)
}

// PageData holds common data for all page templates
type PageData struct {
	Title  string
	Config interface{}
	Year   int
	User   *Claims
	Flash  *FlashMessage
	Data   interface{}
}

// FlashMessage represents a flash message
type FlashMessage struct {
	Type    string // success, error, warning, info
	Message string
}

// newPageData creates a new PageData with common fields
func (s *Server) newPageData(r *http.Request, title string) *PageData {
	return &PageData{
		Title:  title,
		Config: s.config,
		Year:   time.Now().Year(),
		User:   getUserClaims(r),
	}
}

// render renders a template with the given data
func (s *Server) render(w http.ResponseWriter, r *http.Request, template string, data *PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.templates.Render(w, template, data); err != nil {
		http.Error(w, "Error rendering page: "+err.Error(), http.StatusInternalServerError)
	}
}

// handleHome sends visitors to the display screen.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/display", http.StatusSeeOther)
}

// handleLoginPage renders the login page
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Entrar")
	s.render(w, r, "pages/public/login.html", data)
}

// handleLogin processes the login form. Each rejection carries its own
// reason; no session is established on failure.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	fail := func(message string) {
		data := s.newPageData(r, "Entrar")
		data.Flash = &FlashMessage{Type: "error", Message: message}
		s.render(w, r, "pages/public/login.html", data)
	}

	ctx := r.Context()
	user, err := s.repos.Users.GetByUsername(ctx, username)
	if err != nil {
		http.Error(w, "Error loading users", http.StatusInternalServerError)
		return
	}
	if user == nil {
		fail("Usuário não encontrado")
		return
	}
	if !user.Active {
		fail("Usuário desativado")
		return
	}
	if user.PasswordHash == "" || !checkPasswordHash(password, user.PasswordHash) {
		fail("Senha inválida")
		return
	}

	token, err := s.generateToken(user)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	maxAge := s.config.JWT.ExpirationHours * 3600
	s.setAuthCookie(w, token, maxAge)

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout clears the session cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
