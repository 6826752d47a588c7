package memo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/clock"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
)

var ErrEmptyMemo = errors.New("memo body is empty")

type Input struct {
	UserID    int64
	Title     string
	Body      string
	SourceRef string
	// Quizzes are written by hand. When empty, one quiz is generated from Body.
	Quizzes []quiz.Generated
}

type Service struct {
	repo      Repository
	generator quiz.Generator
	clock     clock.Clock
	logger    *zap.Logger
}

// NewService accepts a nil generator; memos without hand-written quizzes are then rejected.
func NewService(repo Repository, generator quiz.Generator, clk clock.Clock, logger *zap.Logger) *Service {
	return &Service{repo: repo, generator: generator, clock: clk, logger: logger.Named("memo")}
}

// Exists reports whether the user already has a memo for sourceRef.
func (s *Service) Exists(ctx context.Context, userID int64, sourceRef string) (bool, error) {
	if sourceRef == "" {
		return false, nil
	}
	m, err := s.repo.FindBySourceRef(ctx, userID, sourceRef)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// CreateWithQuizzes saves a memo together with its quizzes, all starting in the today stage.
func (s *Service) CreateWithQuizzes(ctx context.Context, in Input) (*Memo, []*quiz.Quiz, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, nil, ErrEmptyMemo
	}

	generated := in.Quizzes
	if len(generated) == 0 {
		if s.generator == nil {
			return nil, nil, errors.New("no quizzes given and no generator configured")
		}
		g, err := s.generator.Generate(ctx, in.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("generate quiz: %w", err)
		}
		generated = []quiz.Generated{*g}
	}

	now := s.clock.Now()
	quizzes := make([]*quiz.Quiz, 0, len(generated))
	for i, g := range generated {
		q, err := quiz.New(0, in.UserID, g, now)
		if err != nil {
			return nil, nil, fmt.Errorf("quiz %d: %w", i, err)
		}
		quizzes = append(quizzes, q)
	}

	m := &Memo{
		UserID:    in.UserID,
		Title:     in.Title,
		Body:      in.Body,
		SourceRef: in.SourceRef,
	}
	if err := s.repo.CreateWithQuizzes(ctx, m, quizzes); err != nil {
		return nil, nil, err
	}
	s.logger.Info("memo created", zap.Int64("memo_id", m.ID), zap.Int("quizzes", len(quizzes)))
	return m, quizzes, nil
}
