package repository

import (
	"context"
	"fmt"
	"strings"

	"tvcorporativa/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// UserRepo manages the users table.
type UserRepo struct {
	store TableStore
}

func parseUser(row Row) domain.User {
	return domain.User{
		Username:     row["username"],
		DisplayName:  row["display_name"],
		PasswordHash: row["password_hash"],
		Role:         strings.ToLower(row["role"]),
		Perms: domain.Perms{
			News:      domain.ParseActive(row["can_news"]),
			Videos:    domain.ParseActive(row["can_videos"]),
			Birthdays: domain.ParseActive(row["can_birthdays"]),
			Weather:   domain.ParseActive(row["can_weather"]),
			Rates:     domain.ParseActive(row["can_rates"]),
			Clocks:    domain.ParseActive(row["can_clocks"]),
			Users:     domain.ParseActive(row["can_users"]),
		},
		Active: domain.ParseActive(row["is_active"]),
	}
}

func userRow(u domain.User) Row {
	return Row{
		"username":      u.Username,
		"display_name":  u.DisplayName,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
		"can_news":      formatBool(u.Perms.News),
		"can_videos":    formatBool(u.Perms.Videos),
		"can_birthdays": formatBool(u.Perms.Birthdays),
		"can_weather":   formatBool(u.Perms.Weather),
		"can_rates":     formatBool(u.Perms.Rates),
		"can_clocks":    formatBool(u.Perms.Clocks),
		"can_users":     formatBool(u.Perms.Users),
		"is_active":     formatBool(u.Active),
	}
}

func (r *UserRepo) All(ctx context.Context) ([]domain.User, error) {
	rows, err := r.store.ReadTable(ctx, TableUsers, UserColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, parseUser(row))
	}
	return users, nil
}

// GetByUsername returns the user with the given username, matched
// case-insensitively, or nil when absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *UserRepo) SaveAll(ctx context.Context, users []domain.User) error {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow(u))
	}
	if err := r.store.WriteTable(ctx, TableUsers, UserColumns, rows); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

// Upsert replaces the user with the same username (case-insensitive) or
// appends a new one.
func (r *UserRepo) Upsert(ctx context.Context, user domain.User) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range users {
		if strings.EqualFold(users[i].Username, user.Username) {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}
	return r.SaveAll(ctx, users)
}

func (r *UserRepo) Delete(ctx context.Context, username string) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	out := users[:0]
	for _, u := range users {
		if !strings.EqualFold(u.Username, username) {
			out = append(out, u)
		}
	}
	return r.SaveAll(ctx, out)
}

// Count returns the number of user rows.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	users, err := r.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
