package quiz

import "context"

//go:generate mockgen -source=generator.go -destination=../mocks/quiz/mock_generator.go -package=mock_quiz

// Generator turns memo text into a question.
type Generator interface {
	Generate(ctx context.Context, text string) (*Generated, error)
}
