// Package repository defines interfaces for data persistence
package repository

import (
	"context"
)

// Row is one table row, keyed by column name. Values are always strings,
// mirroring the spreadsheet the original deployment synced against.
type Row map[string]string

// TableStore is the generic row-oriented store backing every content
// table. Reads return rows in their stored order with missing columns
// defaulted to empty; writes overwrite the whole data region of the table
// and rewrite its header to match the given schema. There are no row-level
// patches: concurrent writers race and the last full write wins.
type TableStore interface {
	ReadTable(ctx context.Context, name string, columns []string) ([]Row, error)
	WriteTable(ctx context.Context, name string, columns []string, rows []Row) error
}

// Table names.
const (
	TableNews      = "news"
	TableBirthdays = "birthdays"
	TableVideos    = "videos"
	TableWeather   = "weather"
	TableClocks    = "clocks"
	TableSettings  = "settings"
	TableUsers     = "users"
)

// Column schemas, one per table. The header row is rewritten to match on
// every save.
var (
	NewsColumns     = []string{"id", "title", "description", "image_url", "is_active", "order"}
	BirthdayColumns = []string{"id", "name", "sector", "day", "month", "photo_url", "is_active", "order"}
	VideoColumns    = []string{"id", "title", "url", "duration_sec", "is_active", "order"}
	WeatherColumns  = []string{"id", "label", "lat", "lon", "is_active", "order"}
	ClockColumns    = []string{"id", "label", "tz", "is_active", "order"}
	SettingColumns  = []string{"key", "value"}
	UserColumns     = []string{
		"username", "display_name", "password_hash", "role",
		"can_news", "can_videos", "can_birthdays", "can_weather",
		"can_rates", "can_clocks", "can_users", "is_active",
	}
)

// Repositories bundles the typed repositories handed to the server.
type Repositories struct {
	News      *NewsRepo
	Birthdays *BirthdayRepo
	Videos    *VideoRepo
	Weather   *WeatherRepo
	Clocks    *ClockRepo
	Settings  *SettingsRepo
	Users     *UserRepo
}

// New builds the repository bundle on top of a table store.
func New(store TableStore) *Repositories {
	return &Repositories{
		News:      &NewsRepo{store: store},
		Birthdays: &BirthdayRepo{store: store},
		Videos:    &VideoRepo{store: store},
		Weather:   &WeatherRepo{store: store},
		Clocks:    &ClockRepo{store: store},
		Settings:  &SettingsRepo{store: store},
		Users:     &UserRepo{store: store},
	}
}
