// Package user resolves and maintains the bot's user records.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/repository"
)

// Cache fronts the user repository for sender lookups. Get returns
// (nil, nil) on a miss; both calls are best-effort.
type Cache interface {
	Get(ctx context.Context, telegramID int64) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
}

// Service resolves Telegram senders to user records, creating them on
// first contact.
type Service struct {
	repo  repository.UserRepository
	cache Cache
	log   *slog.Logger
}

// NewService creates a user Service. cache may be nil.
func NewService(repo repository.UserRepository, cache Cache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Ensure returns the user record for a Telegram sender, creating one
// when the sender is seen for the first time. Cache failures fall
// through to the repository.
func (s *Service) Ensure(ctx context.Context, telegramID int64, firstName, lastName, username string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, telegramID)
		if err != nil {
			s.log.Warn("user cache lookup failed", slog.Int64("telegram_id", telegramID), slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByTelegramID(ctx, telegramID)
	if err == nil {
		s.cacheUser(ctx, user)
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	user = &domain.User{
		TelegramID: telegramID,
		FirstName:  firstName,
		LastName:   lastName,
		Username:   username,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	s.log.Info("created new user", slog.Int64("telegram_id", telegramID))
	s.cacheUser(ctx, user)
	return user, nil
}

// UpdateLastActive records user activity without blocking the caller's
// flow; failures are logged only.
func (s *Service) UpdateLastActive(ctx context.Context, telegramID int64) error {
	if err := s.repo.UpdateLastActive(ctx, telegramID); err != nil {
		s.log.Warn("failed to update last active", slog.Int64("telegram_id", telegramID), slog.Any("error", err))
		return err
	}

	return nil
}

func (s *Service) cacheUser(ctx context.Context, user *domain.User) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, user); err != nil {
		s.log.Warn("user cache store failed", slog.Int64("telegram_id", user.TelegramID), slog.Any("error", err))
	}
}
