// Package user stores learners and their notification preferences.
package user

import (
	"errors"
	"strings"
	"time"
)

const DefaultNotificationTime = "09:00"

var ErrNotFound = errors.New("user not found")

// ErrDuplicateAccount is returned by Create when another user is already linked to the account.
var ErrDuplicateAccount = errors.New("channel account already linked")

type User struct {
	ID                  int64     `db:"id"`
	ChannelAccountID    string    `db:"channel_account_id"`
	DisplayName         string    `db:"display_name"`
	NotificationEnabled bool      `db:"notification_enabled"`
	NotificationTime    string    `db:"notification_time"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// Linked reports whether the user can be reached on the messaging channel.
func (u *User) Linked() bool {
	return strings.TrimSpace(u.ChannelAccountID) != ""
}
