package server

import (
	"log"
	"net/http"
	"time"

	"tvcorporativa/internal/domain"
	"tvcorporativa/internal/providers"
	"tvcorporativa/internal/videosource"

	"github.com/skip2/go-qrcode"
)

// WeatherEntry is one location in the ticker.
type WeatherEntry struct {
	Label    string
	Forecast providers.Forecast
}

// ClockEntry is one world-clock tile.
type ClockEntry struct {
	Label string
	Time  string
}

// handleDisplay composes the kiosk screen. Every external dependency
// degrades to a placeholder: a failed table read shows an empty section,
// a failed quote shows "--". The page never 500s over upstream trouble.
func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	news := domain.ActiveSorted(s.loadNews(r))
	birthdays := domain.ActiveSorted(s.loadBirthdays(r))
	videos := domain.ActiveSorted(s.loadVideos(r))
	locations := domain.ActiveSorted(s.loadWeatherLocations(r))
	clocks := domain.ActiveSorted(s.loadClocks(r))

	newsInterval := time.Duration(s.repos.Settings.Int(ctx, domain.SettingNewsInterval, domain.DefaultNewsIntervalSec)) * time.Second
	birthdayInterval := time.Duration(s.repos.Settings.Int(ctx, domain.SettingBirthdayInterval, domain.DefaultBirthdayIntervalSec)) * time.Second
	videoInterval := time.Duration(s.repos.Settings.Int(ctx, domain.SettingVideoInterval, domain.DefaultVideoIntervalSec)) * time.Second

	// One shared refresh timer at the fastest interval; each category
	// advances only when its own interval has elapsed.
	now := time.Now()
	cursors := domain.ParseCursors(r.URL.Query())

	var currentNews *domain.NewsItem
	if idx, ok := cursors.News.Tick(now, newsInterval, len(news)); ok {
		currentNews = &news[idx]
	}

	var currentBirthday *domain.Birthday
	if idx, ok := cursors.Birthdays.Tick(now, birthdayInterval, len(birthdays)); ok {
		currentBirthday = &birthdays[idx]
	}

	var currentVideo *domain.Video
	var videoSource videosource.Source
	if idx, ok := cursors.Videos.Tick(now, videoInterval, len(videos)); ok {
		currentVideo = &videos[idx]
		videoSource = s.videos.Resolve(ctx, currentVideo.URL)
	}

	weather := make([]WeatherEntry, 0, len(locations))
	for _, loc := range locations {
		weather = append(weather, WeatherEntry{
			Label:    loc.Label,
			Forecast: s.providers.Weather(ctx, loc.Lat, loc.Lon),
		})
	}

	clockEntries := make([]ClockEntry, 0, len(clocks))
	for _, c := range clocks {
		clockEntries = append(clockEntries, ClockEntry{
			Label: c.Label,
			Time:  providers.LocalTime(c.Timezone),
		})
	}

	fx := s.providers.FXRates(ctx)
	crypto := s.providers.CryptoRates(ctx)

	refresh := minInterval(newsInterval, birthdayInterval, videoInterval)
	refreshURL := "/display?" + cursors.Encode().Encode()

	data := s.newPageData(r, s.config.Branding.Name)
	data.Data = map[string]interface{}{
		"News":        currentNews,
		"NewsCount":   len(news),
		"Birthday":    currentBirthday,
		"BdayCount":   len(birthdays),
		"Video":       currentVideo,
		"VideoSource": videoSource,
		"VideoCount":  len(videos),
		"Weather":     weather,
		"Clocks":      clockEntries,
		"FX":          fx,
		"Crypto":      crypto,
		"RefreshSec":  int(refresh.Seconds()),
		"RefreshURL":  refreshURL,
	}
	s.render(w, r, "pages/display/screen.html", data)
}

// handleDisplayQR serves a QR code pointing kiosks (or phones) at the
// display. The target defaults to this server's own display URL and can
// be overridden with the display_link setting.
func (s *Server) handleDisplayQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	link, err := s.repos.Settings.Get(ctx, domain.SettingDisplayLink)
	if err != nil || link == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		link = scheme + "://" + r.Host + "/display"
	}

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Error generating QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func minInterval(intervals ...time.Duration) time.Duration {
	min := intervals[0]
	for _, d := range intervals[1:] {
		if d < min {
			min = d
		}
	}
	if min < time.Second {
		min = time.Second
	}
	return min
}

// The load helpers log and return nil on storage errors so the display
// renders an empty section instead of crashing.

func (s *Server) loadNews(r *http.Request) []domain.NewsItem {
	items, err := s.repos.News.All(r.Context())
	if err != nil {
		log.Printf("display: news unavailable: %v", err)
		return nil
	}
	return items
}

func (s *Server) loadBirthdays(r *http.Request) []domain.Birthday {
	items, err := s.repos.Birthdays.All(r.Context())
	if err != nil {
		log.Printf("display: birthdays unavailable: %v", err)
		return nil
	}
	return items
}

func (s *Server) loadVideos(r *http.Request) []domain.Video {
	items, err := s.repos.Videos.All(r.Context())
	if err != nil {
		log.Printf("display: videos unavailable: %v", err)
		return nil
	}
	return items
}

func (s *Server) loadWeatherLocations(r *http.Request) []domain.WeatherLocation {
	items, err := s.repos.Weather.All(r.Context())
	if err != nil {
		log.Printf("display: weather locations unavailable: %v", err)
		return nil
	}
	return items
}

func (s *Server) loadClocks(r *http.Request) []domain.Clock {
	items, err := s.repos.Clocks.All(r.Context())
	if err != nil {
		log.Printf("display: clocks unavailable: %v", err)
		return nil
	}
	return items
}
