package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/memoquiz/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/user/mock_repository.go -package=mock_user

const selectUsers = "SELECT id, COALESCE(channel_account_id, '') AS channel_account_id, display_name, notification_enabled, notification_time, created_at, updated_at FROM users"

type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]User, error)
	FindByChannelAccountID(ctx context.Context, accountID string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateNotificationSettings(ctx context.Context, id int64, enabled bool, notificationTime string) error
}

type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, selectUsers+" WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext(user %d) > %w", id, err)
	}
	return &u, nil
}

func (r *DBRepository) FindByIDs(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(selectUsers+" WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In() > %w", err)
	}
	var users []User
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(%d users by id) > %w", len(ids), err)
	}
	return users, nil
}

func (r *DBRepository) FindByChannelAccountID(ctx context.Context, accountID string) (*User, error) {
	var u User
	if err := r.db.GetContext(ctx, &u, selectUsers+" WHERE channel_account_id = ?", accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext(user by channel account) > %w", err)
	}
	return &u, nil
}

// Create stores an unlinked user's empty account id as NULL so the unique index only covers linked accounts.
func (r *DBRepository) Create(ctx context.Context, u *User) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (channel_account_id, display_name, notification_enabled, notification_time) VALUES (NULLIF(?, ''), ?, ?, ?)",
		u.ChannelAccountID, u.DisplayName, u.NotificationEnabled, u.NotificationTime,
	)
	if err != nil {
		if database.IsDuplicateEntry(err) {
			return fmt.Errorf("channel account %q: %w", u.ChannelAccountID, ErrDuplicateAccount)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("LastInsertId() > %w", err)
	}
	u.ID = id
	return nil
}

func (r *DBRepository) UpdateNotificationSettings(ctx context.Context, id int64, enabled bool, notificationTime string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET notification_enabled = ?, notification_time = ? WHERE id = ?",
		enabled, notificationTime, id,
	)
	if err != nil {
		return fmt.Errorf("update user %d settings: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL reports 0 for unchanged rows too, so confirm the user exists
		u, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
	}
	return nil
}
