package user_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/clock"
	mock_user "github.com/at-ishikawa/memoquiz/internal/mocks/user"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

func TestService_FindOrCreate(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(repo *mock_user.MockRepository)
		wantCreated bool
		wantID      int64
	}{
		{
			name: "existing user",
			setup: func(repo *mock_user.MockRepository) {
				repo.EXPECT().FindByChannelAccountID(gomock.Any(), "U123").Return(&user.User{ID: 5, ChannelAccountID: "U123"}, nil)
			},
			wantID: 5,
		},
		{
			name: "first contact creates a user with default settings",
			setup: func(repo *mock_user.MockRepository) {
				repo.EXPECT().FindByChannelAccountID(gomock.Any(), "U123").Return(nil, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
					assert.Equal(t, "U123", u.ChannelAccountID)
					assert.Equal(t, "Aki", u.DisplayName)
					assert.True(t, u.NotificationEnabled)
					assert.Equal(t, user.DefaultNotificationTime, u.NotificationTime)
					u.ID = 8
					return nil
				})
			},
			wantCreated: true,
			wantID:      8,
		},
		{
			name: "concurrent first contact returns the winning user",
			setup: func(repo *mock_user.MockRepository) {
				gomock.InOrder(
					repo.EXPECT().FindByChannelAccountID(gomock.Any(), "U123").Return(nil, nil),
					repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(fmt.Errorf("channel account %q: %w", "U123", user.ErrDuplicateAccount)),
					repo.EXPECT().FindByChannelAccountID(gomock.Any(), "U123").Return(&user.User{ID: 9, ChannelAccountID: "U123"}, nil),
				)
			},
			wantID: 9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_user.NewMockRepository(ctrl)
			tt.setup(repo)

			got, created, err := user.NewService(repo, zap.NewNop()).FindOrCreate(context.Background(), "U123", "Aki")
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}

	t.Run("empty account id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		_, _, err := user.NewService(mock_user.NewMockRepository(ctrl), zap.NewNop()).FindOrCreate(context.Background(), " ", "")
		assert.Error(t, err)
	})
}

func TestService_UpdateSettings(t *testing.T) {
	enabled := false
	valid := "7:05"
	invalid := "25:00"

	t.Run("normalizes time and applies partial update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_user.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(5)).Return(&user.User{ID: 5, NotificationEnabled: true, NotificationTime: "09:00"}, nil)
		repo.EXPECT().UpdateNotificationSettings(gomock.Any(), int64(5), false, "07:05").Return(nil)

		got, err := user.NewService(repo, zap.NewNop()).UpdateSettings(context.Background(), 5, user.Settings{Enabled: &enabled, Time: &valid})
		require.NoError(t, err)
		assert.Equal(t, "07:05", got.NotificationTime)
		assert.False(t, got.NotificationEnabled)
	})

	t.Run("rejects invalid time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_user.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(5)).Return(&user.User{ID: 5}, nil)

		_, err := user.NewService(repo, zap.NewNop()).UpdateSettings(context.Background(), 5, user.Settings{Time: &invalid})
		assert.ErrorIs(t, err, clock.ErrInvalidTimeOfDay)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_user.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(5)).Return(nil, nil)

		_, err := user.NewService(repo, zap.NewNop()).UpdateSettings(context.Background(), 5, user.Settings{})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestService_GetMany(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_user.NewMockRepository(ctrl)
	repo.EXPECT().FindByIDs(gomock.Any(), []int64{1, 2}).Return([]user.User{{ID: 1}, {ID: 2}}, nil)

	got, err := user.NewService(repo, zap.NewNop()).GetMany(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestService_FindByAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_user.NewMockRepository(ctrl)
	repo.EXPECT().FindByChannelAccountID(gomock.Any(), "U404").Return(nil, nil)

	got, err := user.NewService(repo, zap.NewNop()).FindByAccount(context.Background(), "U404")
	require.NoError(t, err)
	assert.Nil(t, got)
}
