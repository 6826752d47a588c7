package notification

import "context"

//go:generate mockgen -source=sender.go -destination=../mocks/notification/mock_sender.go -package=mock_notification

// Sender pushes a message to an account on one messaging channel.
type Sender interface {
	Channel() Channel
	Send(ctx context.Context, to string, msg Message) error
}

// TokenIssuer mints the access token embedded in quiz links.
type TokenIssuer interface {
	Issue(quizID, userID int64) (string, error)
}
