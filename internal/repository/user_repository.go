// Package repository contains the SQL persistence layer.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lnpeers/tplbot/internal/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateLastActive(ctx context.Context, telegramID int64) error
}

type userRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewUserRepository creates a SQL-backed user repository.
func NewUserRepository(db *sql.DB, log *slog.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

// FindByTelegramID retrieves a user by their Telegram identifier.
// Returns sql.ErrNoRows when the user is unknown.
func (r *userRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	const query = `
		SELECT id, telegram_id, first_name, last_name, username, COALESCE(default_community_id, ''), created_at, last_active_at
		FROM users
		WHERE telegram_id = $1
	`

	row := r.db.QueryRowContext(ctx, query, telegramID)

	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.DefaultCommunityID,
		&user.CreatedAt,
		&user.LastActiveAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}

		if r.log != nil {
			r.log.Error("failed to fetch user", slog.Int64("telegram_id", telegramID), slog.Any("error", err))
		}
		return nil, fmt.Errorf("select user by telegram id: %w", err)
	}

	return &user, nil
}

// Create persists a new user record and fills in its generated id.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
		INSERT INTO users (telegram_id, first_name, last_name, username, created_at, last_active_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.TelegramID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.CreatedAt,
	).Scan(&user.ID); err != nil {
		if r.log != nil {
			r.log.Error("failed to create user", slog.Int64("telegram_id", user.TelegramID), slog.Any("error", err))
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// UpdateLastActive stamps the user's last activity time.
func (r *userRepository) UpdateLastActive(ctx context.Context, telegramID int64) error {
	const query = `UPDATE users SET last_active_at = NOW() WHERE telegram_id = $1`

	if _, err := r.db.ExecContext(ctx, query, telegramID); err != nil {
		return fmt.Errorf("update last active: %w", err)
	}

	return nil
}
