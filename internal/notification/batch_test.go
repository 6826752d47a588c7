package notification_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/user"
)

func TestDispatcher_DispatchManyIsolatesFailures(t *testing.T) {
	f := newFixture(t, at(9, 0))
	users := map[int64]*user.User{
		1: {ID: 1, ChannelAccountID: "UA", NotificationEnabled: true, NotificationTime: "09:00"},
		2: {ID: 2, ChannelAccountID: "UB", NotificationEnabled: true, NotificationTime: "09:00"},
		3: {ID: 3, ChannelAccountID: "UC", NotificationEnabled: true, NotificationTime: "09:00"},
	}
	f.logs.EXPECT().HasSentSince(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(3)
	f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(3)
	f.claimer.EXPECT().Release(gomock.Any(), "11:2:2026-03-10").Return(nil)
	f.tokens.EXPECT().Issue(gomock.Any(), gomock.Any()).Return("tok", nil).Times(3)
	f.sender.EXPECT().Send(gomock.Any(), "UA", gomock.Any()).Return(nil)
	f.sender.EXPECT().Send(gomock.Any(), "UB", gomock.Any()).Return(errors.New("user blocked the bot"))
	f.sender.EXPECT().Send(gomock.Any(), "UC", gomock.Any()).Return(nil)
	var statuses []notification.LogStatus
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *notification.Log) error {
		statuses = append(statuses, l.Status)
		return nil
	}).Times(3)

	targets := []notification.Target{
		{Quiz: todayQuiz(10, 1), User: users[1]},
		{Quiz: todayQuiz(11, 2), User: users[2]},
		{Quiz: todayQuiz(12, 3), User: users[3]},
	}
	got := f.d.DispatchMany(context.Background(), targets, notification.Options{})

	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Successful)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, 0, got.Skipped)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0], "quiz 11 user 2")
	assert.Equal(t, []notification.LogStatus{notification.LogStatusSent, notification.LogStatusFailed, notification.LogStatusSent}, statuses)
}

func TestDispatcher_DispatchManyCountsSkipsAndUnresolved(t *testing.T) {
	f := newFixture(t, at(12, 0))
	targets := []notification.Target{
		{Quiz: todayQuiz(10, 1), User: learner(1)},
		{Quiz: todayQuiz(11, 9), Err: errors.New("user 9 not found")},
	}

	got := f.d.DispatchMany(context.Background(), targets, notification.Options{})
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Skipped)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, map[notification.SkipReason]int{notification.ReasonOutsideWindow: 1}, got.SkipReasons)
	assert.Equal(t, []string{"quiz 11 user 9: user 9 not found"}, got.Errors)
}

func TestDispatcher_DispatchManyBoundsErrors(t *testing.T) {
	f := newFixture(t, at(9, 0))
	var targets []notification.Target
	for i := int64(1); i <= 5; i++ {
		targets = append(targets, notification.Target{Quiz: todayQuiz(i, i), Err: fmt.Errorf("user %d not found", i)})
	}

	got := f.d.DispatchMany(context.Background(), targets, notification.Options{})
	assert.Equal(t, 5, got.Failed)
	assert.Len(t, got.Errors, 2)
	assert.Equal(t, 3, got.ErrorsOmitted)
}

func TestDispatcher_DispatchManyStopsOnCancel(t *testing.T) {
	f := newFixture(t, at(9, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := f.d.DispatchMany(ctx, []notification.Target{
		{Quiz: todayQuiz(1, 1), User: learner(1)},
		{Quiz: todayQuiz(2, 2), User: learner(2)},
	}, notification.Options{})
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 2, got.Failed)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0], "context canceled")
}

func TestDispatcher_RetryMany(t *testing.T) {
	f := newFixture(t, at(11, 0))
	msg := "timeout"
	failed := &notification.Log{ID: 70, QuizID: 1, UserID: 5, Status: notification.LogStatusFailed, ErrorMessage: &msg, SentAt: at(9, 0)}
	orphan := &notification.Log{ID: 71, QuizID: 2, UserID: 6, Status: notification.LogStatusFailed, ErrorMessage: &msg, SentAt: at(9, 0)}

	f.logs.EXPECT().HasSentSince(gomock.Any(), int64(1), int64(5), gomock.Any()).Return(false, nil)
	f.claimer.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.tokens.EXPECT().Issue(int64(1), int64(5)).Return("tok", nil)
	f.sender.EXPECT().Send(gomock.Any(), "U5", gomock.Any()).Return(nil)
	f.logs.EXPECT().MarkRetried(gomock.Any(), gomock.Any(), 0).Return(nil)

	got := f.d.RetryMany(context.Background(), []notification.RetryTarget{
		{Log: failed, Quiz: todayQuiz(1, 5), User: learner(5)},
		{Log: orphan, Err: errors.New("quiz 2 not found")},
	})
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Successful)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, []string{"quiz 2 user 6: quiz 2 not found"}, got.Errors)
}
