package server

import (
	"net/http"
	"strconv"

	"tvcorporativa/internal/domain"
	"tvcorporativa/internal/repository"
)

// formMeta reads the shared row fields out of a submitted form. The
// checkbox carries value="TRUE" so the same truthy parser covers forms
// and stored rows.
func formMeta(r *http.Request, id string) domain.RowMeta {
	return domain.RowMeta{
		ID:     id,
		Active: domain.ParseActive(r.FormValue("is_active")),
		Order:  domain.ParseOrder(r.FormValue("order")),
	}
}

// handleAdminDashboard shows row counts per section.
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	news, _ := s.repos.News.All(ctx)
	birthdays, _ := s.repos.Birthdays.All(ctx)
	videos, _ := s.repos.Videos.All(ctx)
	locations, _ := s.repos.Weather.All(ctx)
	clocks, _ := s.repos.Clocks.All(ctx)
	userCount, _ := s.repos.Users.Count(ctx)

	data := s.newPageData(r, "Painel")
	data.Data = map[string]interface{}{
		"NewsCount":      len(news),
		"BirthdayCount":  len(birthdays),
		"VideoCount":     len(videos),
		"LocationCount":  len(locations),
		"ClockCount":     len(clocks),
		"UserCount":      userCount,
		"NewsActive":     len(domain.ActiveSorted(news)),
		"BirthdayActive": len(domain.ActiveSorted(birthdays)),
		"VideoActive":    len(domain.ActiveSorted(videos)),
	}
	s.render(w, r, "pages/admin/dashboard.html", data)
}

// News

func (s *Server) handleNewsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.repos.News.All(r.Context())
	if err != nil {
		http.Error(w, "Error loading news", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(r, "Notícias")
	data.Data = items
	s.render(w, r, "pages/admin/news.html", data)
}

func (s *Server) handleNewNewsPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Nova Notícia")
	data.Data = map[string]interface{}{"Item": nil}
	s.render(w, r, "pages/admin/news_form.html", data)
}

func (s *Server) handleEditNewsPage(w http.ResponseWriter, r *http.Request) {
	item, err := s.repos.News.Get(r.Context(), getURLParam(r, "id"))
	if err != nil || item == nil {
		http.NotFound(w, r)
		return
	}

	data := s.newPageData(r, "Editar Notícia")
	data.Data = map[string]interface{}{"Item": item}
	s.render(w, r, "pages/admin/news_form.html", data)
}

func (s *Server) handleCreateNews(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	item := domain.NewsItem{
		RowMeta:     formMeta(r, ""),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("image_url"),
	}

	if err := s.repos.News.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error creating news item", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
}

func (s *Server) handleUpdateNews(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	id := getURLParam(r, "id")
	existing, err := s.repos.News.Get(r.Context(), id)
	if err != nil || existing == nil {
		http.NotFound(w, r)
		return
	}

	item := domain.NewsItem{
		RowMeta:     formMeta(r, id),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("image_url"),
	}

	if err := s.repos.News.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error updating news item", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
}

func (s *Server) handleDeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := s.repos.News.Delete(r.Context(), getURLParam(r, "id")); err != nil {
		http.Error(w, "Error deleting news item", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/news", http.StatusSeeOther)
}

// Birthdays

func (s *Server) handleBirthdaysList(w http.ResponseWriter, r *http.Request) {
	items, err := s.repos.Birthdays.All(r.Context())
	if err != nil {
		http.Error(w, "Error loading birthdays", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(r, "Aniversariantes")
	data.Data = items
	s.render(w, r, "pages/admin/birthdays.html", data)
}

func (s *Server) handleNewBirthdayPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Novo Aniversariante")
	data.Data = map[string]interface{}{"Item": nil}
	s.render(w, r, "pages/admin/birthday_form.html", data)
}

func (s *Server) handleEditBirthdayPage(w http.ResponseWriter, r *http.Request) {
	item, err := s.repos.Birthdays.Get(r.Context(), getURLParam(r, "id"))
	if err != nil || item == nil {
		http.NotFound(w, r)
		return
	}

	data := s.newPageData(r, "Editar Aniversariante")
	data.Data = map[string]interface{}{"Item": item}
	s.render(w, r, "pages/admin/birthday_form.html", data)
}

func (s *Server) handleCreateBirthday(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	item := domain.Birthday{
		RowMeta:  formMeta(r, ""),
		Name:     r.FormValue("name"),
		Sector:   r.FormValue("sector"),
		Day:      r.FormValue("day"),
		Month:    r.FormValue("month"),
		PhotoURL: r.FormValue("photo_url"),
	}

	if err := s.repos.Birthdays.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error creating birthday", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/birthdays", http.StatusSeeOther)
}

func (s *Server) handleUpdateBirthday(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	id := getURLParam(r, "id")
	existing, err := s.repos.Birthdays.Get(r.Context(), id)
	if err != nil || existing == nil {
		http.NotFound(w, r)
		return
	}

	item := domain.Birthday{
		RowMeta:  formMeta(r, id),
		Name:     r.FormValue("name"),
		Sector:   r.FormValue("sector"),
		Day:      r.FormValue("day"),
		Month:    r.FormValue("month"),
		PhotoURL: r.FormValue("photo_url"),
	}

	if err := s.repos.Birthdays.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error updating birthday", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/birthdays", http.StatusSeeOther)
}

func (s *Server) handleDeleteBirthday(w http.ResponseWriter, r *http.Request) {
	if err := s.repos.Birthdays.Delete(r.Context(), getURLParam(r, "id")); err != nil {
		http.Error(w, "Error deleting birthday", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/birthdays", http.StatusSeeOther)
}

// Videos

func (s *Server) handleVideosList(w http.ResponseWriter, r *http.Request) {
	items, err := s.repos.Videos.All(r.Context())
	if err != nil {
		http.Error(w, "Error loading videos", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(r, "Vídeos")
	data.Data = items
	s.render(w, r, "pages/admin/videos.html", data)
}

func (s *Server) handleNewVideoPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Novo Vídeo")
	data.Data = map[string]interface{}{"Item": nil}
	s.render(w, r, "pages/admin/video_form.html", data)
}

func (s *Server) handleEditVideoPage(w http.ResponseWriter, r *http.Request) {
	item, err := s.repos.Videos.Get(r.Context(), getURLParam(r, "id"))
	if err != nil || item == nil {
		http.NotFound(w, r)
		return
	}

	data := s.newPageData(r, "Editar Vídeo")
	data.Data = map[string]interface{}{"Item": item}
	s.render(w, r, "pages/admin/video_form.html", data)
}

func (s *Server) handleCreateVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	duration, _ := strconv.Atoi(r.FormValue("duration_sec"))
	item := domain.Video{
		RowMeta:     formMeta(r, ""),
		Title:       r.FormValue("title"),
		URL:         r.FormValue("url"),
		DurationSec: duration,
	}

	if err := s.repos.Videos.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error creating video", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/videos", http.StatusSeeOther)
}

func (s *Server) handleUpdateVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	id := getURLParam(r, "id")
	existing, err := s.repos.Videos.Get(r.Context(), id)
	if err != nil || existing == nil {
		http.NotFound(w, r)
		return
	}

	duration, _ := strconv.Atoi(r.FormValue("duration_sec"))
	item := domain.Video{
		RowMeta:     formMeta(r, id),
		Title:       r.FormValue("title"),
		URL:         r.FormValue("url"),
		DurationSec: duration,
	}

	if err := s.repos.Videos.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error updating video", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/videos", http.StatusSeeOther)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.repos.Videos.Delete(r.Context(), getURLParam(r, "id")); err != nil {
		http.Error(w, "Error deleting video", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/videos", http.StatusSeeOther)
}

// Weather locations

func (s *Server) handleWeatherList(w http.ResponseWriter, r *http.Request) {
	items, err := s.repos.Weather.All(r.Context())
	if err != nil {
		http.Error(w, "Error loading weather locations", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(r, "Locais do Tempo")
	data.Data = items
	s.render(w, r, "pages/admin/weather.html", data)
}

func (s *Server) handleNewWeatherPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Novo Local")
	data.Data = map[string]interface{}{"Item": nil}
	s.render(w, r, "pages/admin/weather_form.html", data)
}

func (s *Server) handleEditWeatherPage(w http.ResponseWriter, r *http.Request) {
	item, err := s.repos.Weather.Get(r.Context(), getURLParam(r, "id"))
	if err != nil || item == nil {
		http.NotFound(w, r)
		return
	}

	data := s.newPageData(r, "Editar Local")
	data.Data = map[string]interface{}{"Item": item}
	s.render(w, r, "pages/admin/weather_form.html", data)
}

func (s *Server) handleCreateWeather(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	lat, _ := strconv.ParseFloat(r.FormValue("lat"), 64)
	lon, _ := strconv.ParseFloat(r.FormValue("lon"), 64)
	item := domain.WeatherLocation{
		RowMeta: formMeta(r, ""),
		Label:   r.FormValue("label"),
		Lat:     lat,
		Lon:     lon,
	}

	if err := s.repos.Weather.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error creating weather location", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/weather", http.StatusSeeOther)
}

func (s *Server) handleUpdateWeather(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	id := getURLParam(r, "id")
	existing, err := s.repos.Weather.Get(r.Context(), id)
	if err != nil || existing == nil {
		http.NotFound(w, r)
		return
	}

	lat, _ := strconv.ParseFloat(r.FormValue("lat"), 64)
	lon, _ := strconv.ParseFloat(r.FormValue("lon"), 64)
	item := domain.WeatherLocation{
		RowMeta: formMeta(r, id),
		Label:   r.FormValue("label"),
		Lat:     lat,
		Lon:     lon,
	}

	if err := s.repos.Weather.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error updating weather location", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/weather", http.StatusSeeOther)
}

func (s *Server) handleDeleteWeather(w http.ResponseWriter, r *http.Request) {
	if err := s.repos.Weather.Delete(r.Context(), getURLParam(r, "id")); err != nil {
		http.Error(w, "Error deleting weather location", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/weather", http.StatusSeeOther)
}

// Clocks

func (s *Server) handleClocksList(w http.ResponseWriter, r *http.Request) {
	items, err := s.repos.Clocks.All(r.Context())
	if err != nil {
		http.Error(w, "Error loading clocks", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(r, "Relógios")
	data.Data = items
	s.render(w, r, "pages/admin/clocks.html", data)
}

func (s *Server) handleNewClockPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Novo Relógio")
	data.Data = map[string]interface{}{"Item": nil}
	s.render(w, r, "pages/admin/clock_form.html", data)
}

func (s *Server) handleEditClockPage(w http.ResponseWriter, r *http.Request) {
	item, err := s.repos.Clocks.Get(r.Context(), getURLParam(r, "id"))
	if err != nil || item == nil {
		http.NotFound(w, r)
		return
	}

	data := s.newPageData(r, "Editar Relógio")
	data.Data = map[string]interface{}{"Item": item}
	s.render(w, r, "pages/admin/clock_form.html", data)
}

func (s *Server) handleCreateClock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	item := domain.Clock{
		RowMeta:  formMeta(r, ""),
		Label:    r.FormValue("label"),
		Timezone: r.FormValue("tz"),
	}

	if err := s.repos.Clocks.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error creating clock", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/clocks", http.StatusSeeOther)
}

func (s *Server) handleUpdateClock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	id := getURLParam(r, "id")
	existing, err := s.repos.Clocks.Get(r.Context(), id)
	if err != nil || existing == nil {
		http.NotFound(w, r)
		return
	}

	item := domain.Clock{
		RowMeta:  formMeta(r, id),
		Label:    r.FormValue("label"),
		Timezone: r.FormValue("tz"),
	}

	if err := s.repos.Clocks.Upsert(r.Context(), item); err != nil {
		http.Error(w, "Error updating clock", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/clocks", http.StatusSeeOther)
}

func (s *Server) handleDeleteClock(w http.ResponseWriter, r *http.Request) {
	if err := s.repos.Clocks.Delete(r.Context(), getURLParam(r, "id")); err != nil {
		http.Error(w, "Error deleting clock", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/clocks", http.StatusSeeOther)
}

// Settings

func (s *Server) settingsPageData(r *http.Request) map[string]interface{} {
	ctx := r.Context()
	return map[string]interface{}{
		"NewsInterval":     s.repos.Settings.Int(ctx, domain.SettingNewsInterval, domain.DefaultNewsIntervalSec),
		"BirthdayInterval": s.repos.Settings.Int(ctx, domain.SettingBirthdayInterval, domain.DefaultBirthdayIntervalSec),
		"VideoInterval":    s.repos.Settings.Int(ctx, domain.SettingVideoInterval, domain.DefaultVideoIntervalSec),
		"DisplayLink":      s.settingOrEmpty(r, domain.SettingDisplayLink),
	}
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Configurações")
	data.Data = s.settingsPageData(r)
	s.render(w, r, "pages/admin/settings.html", data)
}

func (s *Server) settingOrEmpty(r *http.Request, key string) string {
	v, err := s.repos.Settings.Get(r.Context(), key)
	if err != nil {
		return ""
	}
	return v
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	intervals := map[string]string{
		domain.SettingNewsInterval:     r.FormValue("news_interval_sec"),
		domain.SettingBirthdayInterval: r.FormValue("birthdays_interval_sec"),
		domain.SettingVideoInterval:    r.FormValue("video_interval_sec"),
	}
	for key, value := range intervals {
		if value == "" {
			continue
		}
		if n, err := strconv.Atoi(value); err != nil || n < 1 {
			data := s.newPageData(r, "Configurações")
			data.Data = s.settingsPageData(r)
			data.Flash = &FlashMessage{Type: "error", Message: "Intervalos devem ser números inteiros positivos"}
			s.render(w, r, "pages/admin/settings.html", data)
			return
		}
		if err := s.repos.Settings.Set(ctx, key, value); err != nil {
			http.Error(w, "Error saving settings", http.StatusInternalServerError)
			return
		}
	}

	if link := r.FormValue("display_link"); link != "" {
		if err := s.repos.Settings.Set(ctx, domain.SettingDisplayLink, link); err != nil {
			http.Error(w, "Error saving settings", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

// Users

func formPerms(r *http.Request) domain.Perms {
	return domain.Perms{
		News:      domain.ParseActive(r.FormValue("can_news")),
		Videos:    domain.ParseActive(r.FormValue("can_videos")),
		Birthdays: domain.ParseActive(r.FormValue("can_birthdays")),
		Weather:   domain.ParseActive(r.FormValue("can_weather")),
		Rates:     domain.ParseActive(r.FormValue("can_rates")),
		Clocks:    domain.ParseActive(r.FormValue("can_clocks")),
		Users:     domain.ParseActive(r.FormValue("can_users")),
	}
}

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	users, err := s.repos.Users.All(r.Context())
	if err != nil {
		http.Error(w, "Error loading users", http.StatusInternalServerError)
		return
	}

	data := s.newPageData(r, "Usuários")
	data.Data = users
	s.render(w, r, "pages/admin/users.html", data)
}

func (s *Server) handleNewUserPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Novo Usuário")
	data.Data = map[string]interface{}{"User": nil}
	s.render(w, r, "pages/admin/user_form.html", data)
}

func (s *Server) handleEditUserPage(w http.ResponseWriter, r *http.Request) {
	user, err := s.repos.Users.GetByUsername(r.Context(), getURLParam(r, "username"))
	if err != nil || user == nil {
		http.NotFound(w, r)
		return
	}

	data := s.newPageData(r, "Editar Usuário")
	data.Data = map[string]interface{}{"User": user}
	s.render(w, r, "pages/admin/user_form.html", data)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		data := s.newPageData(r, "Novo Usuário")
		data.Data = map[string]interface{}{"User": nil}
		data.Flash = &FlashMessage{Type: "error", Message: "Usuário e senha são obrigatórios"}
		s.render(w, r, "pages/admin/user_form.html", data)
		return
	}

	existing, _ := s.repos.Users.GetByUsername(ctx, username)
	if existing != nil {
		data := s.newPageData(r, "Novo Usuário")
		data.Data = map[string]interface{}{"User": nil}
		data.Flash = &FlashMessage{Type: "error", Message: "Usuário já existe"}
		s.render(w, r, "pages/admin/user_form.html", data)
		return
	}

	hash, err := repository.HashPassword(password)
	if err != nil {
		http.Error(w, "Error processing password", http.StatusInternalServerError)
		return
	}

	user := domain.User{
		Username:     username,
		DisplayName:  r.FormValue("display_name"),
		PasswordHash: hash,
		Role:         normalizeRole(r.FormValue("role")),
		Perms:        formPerms(r),
		Active:       domain.ParseActive(r.FormValue("is_active")),
	}

	if err := s.repos.Users.Upsert(ctx, user); err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	user, err := s.repos.Users.GetByUsername(ctx, getURLParam(r, "username"))
	if err != nil || user == nil {
		http.NotFound(w, r)
		return
	}

	user.DisplayName = r.FormValue("display_name")
	user.Role = normalizeRole(r.FormValue("role"))
	user.Perms = formPerms(r)
	user.Active = domain.ParseActive(r.FormValue("is_active"))

	// Password only changes when a new one is submitted.
	if password := r.FormValue("password"); password != "" {
		hash, err := repository.HashPassword(password)
		if err != nil {
			http.Error(w, "Error processing password", http.StatusInternalServerError)
			return
		}
		user.PasswordHash = hash
	}

	if err := s.repos.Users.Upsert(ctx, *user); err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	claims := getUserClaims(r)
	username := getURLParam(r, "username")

	// Deleting yourself would orphan the session mid-flight.
	if claims != nil && claims.Username == username {
		http.Error(w, "Cannot delete the logged-in user", http.StatusBadRequest)
		return
	}

	if err := s.repos.Users.Delete(r.Context(), username); err != nil {
		http.Error(w, "Error deleting user", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func normalizeRole(role string) string {
	if role == domain.RoleAdmin {
		return domain.RoleAdmin
	}
	return domain.RoleEditor
}
