package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/clock"
)

// Service wraps the repository with find-or-create and settings validation.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("user")}
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, nil
}

// GetMany returns the users that exist among ids, keyed by id.
func (s *Service) GetMany(ctx context.Context, ids []int64) (map[int64]*User, error) {
	users, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}

// FindByAccount returns the user linked to accountID, or nil when there is none.
func (s *Service) FindByAccount(ctx context.Context, accountID string) (*User, error) {
	return s.repo.FindByChannelAccountID(ctx, accountID)
}

// FindOrCreate returns the user linked to accountID, creating one with default settings on first contact.
func (s *Service) FindOrCreate(ctx context.Context, accountID, displayName string) (*User, bool, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, false, errors.New("channel account id is empty")
	}
	u, err := s.repo.FindByChannelAccountID(ctx, accountID)
	if err != nil {
		return nil, false, err
	}
	if u != nil {
		return u, false, nil
	}

	u = &User{
		ChannelAccountID:    accountID,
		DisplayName:         displayName,
		NotificationEnabled: true,
		NotificationTime:    DefaultNotificationTime,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if !errors.Is(err, ErrDuplicateAccount) {
			return nil, false, err
		}
		// a concurrent first contact won the insert
		existing, err := s.repo.FindByChannelAccountID(ctx, accountID)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, fmt.Errorf("channel account %q: %w", accountID, ErrNotFound)
		}
		return existing, false, nil
	}
	s.logger.Info("user created", zap.Int64("user_id", u.ID))
	return u, true, nil
}

// Settings is a partial update; nil fields are left unchanged.
type Settings struct {
	Enabled *bool
	Time    *string
}

func (s *Service) UpdateSettings(ctx context.Context, id int64, settings Settings) (*User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if settings.Enabled != nil {
		u.NotificationEnabled = *settings.Enabled
	}
	if settings.Time != nil {
		mins, err := clock.ParseHHMM(*settings.Time)
		if err != nil {
			return nil, err
		}
		u.NotificationTime = clock.FormatMinutes(mins)
	}
	if err := s.repo.UpdateNotificationSettings(ctx, u.ID, u.NotificationEnabled, u.NotificationTime); err != nil {
		return nil, err
	}
	return u, nil
}
