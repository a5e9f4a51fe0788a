package repository

import (
	"context"
	"fmt"
	"strconv"
)

// SettingsRepo manages the key/value settings table.
type SettingsRepo struct {
	store TableStore
}

// All returns every setting as a key→value map.
func (r *SettingsRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.store.ReadTable(ctx, TableSettings, SettingColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if row["key"] != "" {
			out[row["key"]] = row["value"]
		}
	}
	return out, nil
}

// Get returns the raw value for key, or "" when absent.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	all, err := r.All(ctx)
	if err != nil {
		return "", err
	}
	return all[key], nil
}

// Int parses the value for key as an integer, falling back to def on
// absence, parse failure, or any read error.
func (r *SettingsRepo) Int(ctx context.Context, key string, def int) int {
	v, err := r.Get(ctx, key)
	if err != nil || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Set writes key to value, creating or replacing the row.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	rows, err := r.store.ReadTable(ctx, TableSettings, SettingColumns)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	found := false
	for _, row := range rows {
		if row["key"] == key {
			row["value"] = value
			found = true
			break
		}
	}
	if !found {
		rows = append(rows, Row{"key": key, "value": value})
	}
	if err := r.store.WriteTable(ctx, TableSettings, SettingColumns, rows); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
