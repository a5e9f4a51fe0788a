// Package domain defines core business entities
package domain

// RowMeta holds the fields shared by every content row.
type RowMeta struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
	Order  int    `json:"order"`
}

// IsActive reports whether the row should appear on the display.
func (m RowMeta) IsActive() bool { return m.Active }

// SortOrder returns the row's sort key within its table.
func (m RowMeta) SortOrder() int { return m.Order }

// NewsItem represents a news card shown on the display.
type NewsItem struct {
	RowMeta
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Birthday represents a birthday-of-the-month entry.
type Birthday struct {
	RowMeta
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Day      string `json:"day"`   // raw value, shown as-is when non-numeric
	Month    string `json:"month"` // raw value, shown as-is when non-numeric
	PhotoURL string `json:"photoUrl,omitempty"`
}

// Video represents an institutional video in the display loop.
type Video struct {
	RowMeta
	Title       string `json:"title"`
	URL         string `json:"url"`
	DurationSec int    `json:"durationSec"`
}

// WeatherLocation represents a place shown in the weather ticker.
type WeatherLocation struct {
	RowMeta
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Clock represents a world-clock tile.
type Clock struct {
	RowMeta
	Label    string `json:"label"`
	Timezone string `json:"tz"`
}

// User represents an admin console account.
type User struct {
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // editor, admin
	Perms        Perms  `json:"perms"`
	Active       bool   `json:"active"`
}

// Perms holds per-section editing permissions.
type Perms struct {
	News      bool `json:"news"`
	Videos    bool `json:"videos"`
	Birthdays bool `json:"birthdays"`
	Weather   bool `json:"weather"`
	Rates     bool `json:"rates"`
	Clocks    bool `json:"clocks"`
	Users     bool `json:"users"`
}

// User roles
const (
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// Permission keys, matching the admin section names.
const (
	PermNews      = "news"
	PermVideos    = "videos"
	PermBirthdays = "birthdays"
	PermWeather   = "weather"
	PermRates     = "rates"
	PermClocks    = "clocks"
	PermUsers     = "users"
)

// Can reports whether the user may edit the given section.
// Admins can edit everything.
func (u *User) Can(perm string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	switch perm {
	case PermNews:
		return u.Perms.News
	case PermVideos:
		return u.Perms.Videos
	case PermBirthdays:
		return u.Perms.Birthdays
	case PermWeather:
		return u.Perms.Weather
	case PermRates:
		return u.Perms.Rates
	case PermClocks:
		return u.Perms.Clocks
	case PermUsers:
		return u.Perms.Users
	}
	return false
}

// Setting keys used by the display.
const (
	SettingNewsInterval     = "news_interval_sec"
	SettingBirthdayInterval = "birthdays_interval_sec"
	SettingVideoInterval    = "video_interval_sec"
	SettingDisplayLink      = "display_link"
)

// Default rotation intervals in seconds.
const (
	DefaultNewsIntervalSec     = 10
	DefaultBirthdayIntervalSec = 10
	DefaultVideoIntervalSec    = 45
)
