package repository

import (
	"context"
	"fmt"
	"strconv"

	"tvcorporativa/internal/domain"

	"github.com/google/uuid"
)

// formatBool writes a boolean the way the table store spells it. Reads
// accept the wider truthy set via domain.ParseActive.
func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func parseMeta(row Row) domain.RowMeta {
	return domain.RowMeta{
		ID:     row["id"],
		Active: domain.ParseActive(row["is_active"]),
		Order:  domain.ParseOrder(row["order"]),
	}
}

func metaRow(m domain.RowMeta) Row {
	return Row{
		"id":        m.ID,
		"is_active": formatBool(m.Active),
		"order":     strconv.Itoa(m.Order),
	}
}

// NewsRepo manages the news table.
type NewsRepo struct {
	store TableStore
}

func (r *NewsRepo) All(ctx context.Context) ([]domain.NewsItem, error) {
	rows, err := r.store.ReadTable(ctx, TableNews, NewsColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to read news: %w", err)
	}
	items := make([]domain.NewsItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.NewsItem{
			RowMeta:     parseMeta(row),
			Title:       row["title"],
			Description: row["description"],
			ImageURL:    row["image_url"],
		})
	}
	return items, nil
}

func (r *NewsRepo) SaveAll(ctx context.Context, items []domain.NewsItem) error {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := metaRow(it.RowMeta)
		row["title"] = it.Title
		row["description"] = it.Description
		row["image_url"] = it.ImageURL
		rows = append(rows, row)
	}
	if err := r.store.WriteTable(ctx, TableNews, NewsColumns, rows); err != nil {
		return fmt.Errorf("failed to save news: %w", err)
	}
	return nil
}

func (r *NewsRepo) Get(ctx context.Context, id string) (*domain.NewsItem, error) {
	items, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Upsert replaces the item with the same id, or appends it. A blank id
// gets a generated one. The whole table is rewritten either way.
func (r *NewsRepo) Upsert(ctx context.Context, item domain.NewsItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = upsertByID(items, item, func(it domain.NewsItem) string { return it.ID })
	return r.SaveAll(ctx, items)
}

func (r *NewsRepo) Delete(ctx context.Context, id string) error {
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = deleteByID(items, id, func(it domain.NewsItem) string { return it.ID })
	return r.SaveAll(ctx, items)
}

// BirthdayRepo manages the birthdays table.
type BirthdayRepo struct {
	store TableStore
}

func (r *BirthdayRepo) All(ctx context.Context) ([]domain.Birthday, error) {
	rows, err := r.store.ReadTable(ctx, TableBirthdays, BirthdayColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to read birthdays: %w", err)
	}
	items := make([]domain.Birthday, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.Birthday{
			RowMeta:  parseMeta(row),
			Name:     row["name"],
			Sector:   row["sector"],
			Day:      row["day"],
			Month:    row["month"],
			PhotoURL: row["photo_url"],
		})
	}
	return items, nil
}

func (r *BirthdayRepo) SaveAll(ctx context.Context, items []domain.Birthday) error {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := metaRow(it.RowMeta)
		row["name"] = it.Name
		row["sector"] = it.Sector
		row["day"] = it.Day
		row["month"] = it.Month
		row["photo_url"] = it.PhotoURL
		rows = append(rows, row)
	}
	if err := r.store.WriteTable(ctx, TableBirthdays, BirthdayColumns, rows); err != nil {
		return fmt.Errorf("failed to save birthdays: %w", err)
	}
	return nil
}

func (r *BirthdayRepo) Get(ctx context.Context, id string) (*domain.Birthday, error) {
	items, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *BirthdayRepo) Upsert(ctx context.Context, item domain.Birthday) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = upsertByID(items, item, func(it domain.Birthday) string { return it.ID })
	return r.SaveAll(ctx, items)
}

func (r *BirthdayRepo) Delete(ctx context.Context, id string) error {
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = deleteByID(items, id, func(it domain.Birthday) string { return it.ID })
	return r.SaveAll(ctx, items)
}

// VideoRepo manages the videos table.
type VideoRepo struct {
	store TableStore
}

func (r *VideoRepo) All(ctx context.Context) ([]domain.Video, error) {
	rows, err := r.store.ReadTable(ctx, TableVideos, VideoColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}
	items := make([]domain.Video, 0, len(rows))
	for _, row := range rows {
		dur, _ := strconv.Atoi(row["duration_sec"])
		items = append(items, domain.Video{
			RowMeta:     parseMeta(row),
			Title:       row["title"],
			URL:         row["url"],
			DurationSec: dur,
		})
	}
	return items, nil
}

func (r *VideoRepo) SaveAll(ctx context.Context, items []domain.Video) error {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := metaRow(it.RowMeta)
		row["title"] = it.Title
		row["url"] = it.URL
		row["duration_sec"] = strconv.Itoa(it.DurationSec)
		rows = append(rows, row)
	}
	if err := r.store.WriteTable(ctx, TableVideos, VideoColumns, rows); err != nil {
		return fmt.Errorf("failed to save videos: %w", err)
	}
	return nil
}

func (r *VideoRepo) Get(ctx context.Context, id string) (*domain.Video, error) {
	items, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *VideoRepo) Upsert(ctx context.Context, item domain.Video) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = upsertByID(items, item, func(it domain.Video) string { return it.ID })
	return r.SaveAll(ctx, items)
}

func (r *VideoRepo) Delete(ctx context.Context, id string) error {
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = deleteByID(items, id, func(it domain.Video) string { return it.ID })
	return r.SaveAll(ctx, items)
}

// WeatherRepo manages the weather locations table.
type WeatherRepo struct {
	store TableStore
}

func (r *WeatherRepo) All(ctx context.Context) ([]domain.WeatherLocation, error) {
	rows, err := r.store.ReadTable(ctx, TableWeather, WeatherColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather locations: %w", err)
	}
	items := make([]domain.WeatherLocation, 0, len(rows))
	for _, row := range rows {
		lat, _ := strconv.ParseFloat(row["lat"], 64)
		lon, _ := strconv.ParseFloat(row["lon"], 64)
		items = append(items, domain.WeatherLocation{
			RowMeta: parseMeta(row),
			Label:   row["label"],
			Lat:     lat,
			Lon:     lon,
		})
	}
	return items, nil
}

func (r *WeatherRepo) SaveAll(ctx context.Context, items []domain.WeatherLocation) error {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := metaRow(it.RowMeta)
		row["label"] = it.Label
		row["lat"] = strconv.FormatFloat(it.Lat, 'f', -1, 64)
		row["lon"] = strconv.FormatFloat(it.Lon, 'f', -1, 64)
		rows = append(rows, row)
	}
	if err := r.store.WriteTable(ctx, TableWeather, WeatherColumns, rows); err != nil {
		return fmt.Errorf("failed to save weather locations: %w", err)
	}
	return nil
}

func (r *WeatherRepo) Get(ctx context.Context, id string) (*domain.WeatherLocation, error) {
	items, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *WeatherRepo) Upsert(ctx context.Context, item domain.WeatherLocation) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = upsertByID(items, item, func(it domain.WeatherLocation) string { return it.ID })
	return r.SaveAll(ctx, items)
}

func (r *WeatherRepo) Delete(ctx context.Context, id string) error {
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = deleteByID(items, id, func(it domain.WeatherLocation) string { return it.ID })
	return r.SaveAll(ctx, items)
}

// ClockRepo manages the clocks table.
type ClockRepo struct {
	store TableStore
}

func (r *ClockRepo) All(ctx context.Context) ([]domain.Clock, error) {
	rows, err := r.store.ReadTable(ctx, TableClocks, ClockColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to read clocks: %w", err)
	}
	items := make([]domain.Clock, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.Clock{
			RowMeta:  parseMeta(row),
			Label:    row["label"],
			Timezone: row["tz"],
		})
	}
	return items, nil
}

func (r *ClockRepo) SaveAll(ctx context.Context, items []domain.Clock) error {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := metaRow(it.RowMeta)
		row["label"] = it.Label
		row["tz"] = it.Timezone
		rows = append(rows, row)
	}
	if err := r.store.WriteTable(ctx, TableClocks, ClockColumns, rows); err != nil {
		return fmt.Errorf("failed to save clocks: %w", err)
	}
	return nil
}

func (r *ClockRepo) Get(ctx context.Context, id string) (*domain.Clock, error) {
	items, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *ClockRepo) Upsert(ctx context.Context, item domain.Clock) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = upsertByID(items, item, func(it domain.Clock) string { return it.ID })
	return r.SaveAll(ctx, items)
}

func (r *ClockRepo) Delete(ctx context.Context, id string) error {
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	items = deleteByID(items, id, func(it domain.Clock) string { return it.ID })
	return r.SaveAll(ctx, items)
}

func upsertByID[T any](items []T, item T, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func deleteByID[T any](items []T, target string, id func(T) string) []T {
	out := items[:0]
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}
