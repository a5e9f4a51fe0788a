package server

import (
	"net/http"
	"time"

	"tvcorporativa/internal/domain"

	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	r := s.router

	// Health check endpoint
	r.Get("/health", s.handleHealth)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/", s.handleHome)
		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLogin)
		r.Get("/logout", s.handleLogout)

		// Kiosk display: unauthenticated so a TV can just point at it
		r.Get("/display", s.handleDisplay)
		r.Get("/display/qr.png", s.handleDisplayQR)
	})

	// Admin console
	r.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/", s.handleAdminDashboard)

		r.Group(func(r chi.Router) {
			r.Use(s.permMiddleware(domain.PermNews))
			r.Get("/news", s.handleNewsList)
			r.Get("/news/new", s.handleNewNewsPage)
			r.Post("/news", s.handleCreateNews)
			r.Get("/news/{id}", s.handleEditNewsPage)
			r.Post("/news/{id}", s.handleUpdateNews)
			r.Post("/news/{id}/delete", s.handleDeleteNews)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.permMiddleware(domain.PermBirthdays))
			r.Get("/birthdays", s.handleBirthdaysList)
			r.Get("/birthdays/new", s.handleNewBirthdayPage)
			r.Post("/birthdays", s.handleCreateBirthday)
			r.Get("/birthdays/{id}", s.handleEditBirthdayPage)
			r.Post("/birthdays/{id}", s.handleUpdateBirthday)
			r.Post("/birthdays/{id}/delete", s.handleDeleteBirthday)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.permMiddleware(domain.PermVideos))
			r.Get("/videos", s.handleVideosList)
			r.Get("/videos/new", s.handleNewVideoPage)
			r.Post("/videos", s.handleCreateVideo)
			r.Get("/videos/{id}", s.handleEditVideoPage)
			r.Post("/videos/{id}", s.handleUpdateVideo)
			r.Post("/videos/{id}/delete", s.handleDeleteVideo)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.permMiddleware(domain.PermWeather))
			r.Get("/weather", s.handleWeatherList)
			r.Get("/weather/new", s.handleNewWeatherPage)
			r.Post("/weather", s.handleCreateWeather)
			r.Get("/weather/{id}", s.handleEditWeatherPage)
			r.Post("/weather/{id}", s.handleUpdateWeather)
			r.Post("/weather/{id}/delete", s.handleDeleteWeather)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.permMiddleware(domain.PermClocks))
			r.Get("/clocks", s.handleClocksList)
			r.Get("/clocks/new", s.handleNewClockPage)
			r.Post("/clocks", s.handleCreateClock)
			r.Get("/clocks/{id}", s.handleEditClockPage)
			r.Post("/clocks/{id}", s.handleUpdateClock)
			r.Post("/clocks/{id}/delete", s.handleDeleteClock)
		})

		// Settings are admin-only
		r.Group(func(r chi.Router) {
			r.Use(s.adminOnly)
			r.Get("/settings", s.handleSettings)
			r.Post("/settings", s.handleUpdateSettings)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.permMiddleware(domain.PermUsers))
			r.Get("/users", s.handleUsersList)
			r.Get("/users/new", s.handleNewUserPage)
			r.Post("/users", s.handleCreateUser)
			r.Get("/users/{username}", s.handleEditUserPage)
			r.Post("/users/{username}", s.handleUpdateUser)
			r.Post("/users/{username}/delete", s.handleDeleteUser)
		})
	})
}

// adminOnly restricts a subtree to the admin role.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := getUserClaims(r)
		if claims == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != domain.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}
