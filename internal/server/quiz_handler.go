package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/assets"
	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/token"
)

type QuizResponse struct {
	QuizID      int64       `json:"quiz_id"`
	Type        quiz.Type   `json:"type"`
	Stem        string      `json:"stem"`
	Choices     []string    `json:"choices,omitempty"`
	Status      quiz.Status `json:"status"`
	ScheduledAt time.Time   `json:"scheduled_at"`
}

type AnswerRequest struct {
	Token string `json:"token" binding:"required"`
	// QuizID is optional. When set, the token must have been issued for this quiz.
	QuizID int64  `json:"quiz_id"`
	Answer string `json:"answer"`
}

type AnswerResponse struct {
	AttemptID       int64       `json:"attempt_id"`
	IsCorrect       bool        `json:"is_correct"`
	CorrectAnswer   string      `json:"correct_answer"`
	Status          quiz.Status `json:"status"`
	NextScheduledAt time.Time   `json:"next_scheduled_at"`
}

// GetQuiz returns the question behind a token, without its answer. Browsers get the HTML page.
func (s *Server) GetQuiz(c *gin.Context) {
	html := s.page != nil && c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML

	tok := c.Query("token")
	if tok == "" {
		s.quizError(c, html, token.ErrMalformed)
		return
	}
	subject, err := s.tokens.Verify(tok)
	if err != nil {
		s.logger.Info("quiz access denied", zap.Error(err))
		s.quizError(c, html, err)
		return
	}

	q, err := s.quizzes.GetForUser(c.Request.Context(), subject.QuizID, subject.UserID)
	if err != nil {
		s.quizError(c, html, err)
		return
	}
	if html {
		c.HTML(http.StatusOK, assets.QuizPageName, assets.QuizPage{
			Title:     notification.StageTitle(q.Status),
			Stem:      q.Stem,
			Choices:   q.Choices,
			QuizID:    q.ID,
			Token:     tok,
			AnswerURL: "/quiz/answer",
		})
		return
	}
	Success(c, QuizResponse{
		QuizID:      q.ID,
		Type:        q.Type,
		Stem:        q.Stem,
		Choices:     q.Choices,
		Status:      q.Status,
		ScheduledAt: q.ScheduledAt,
	})
}

func (s *Server) quizError(c *gin.Context, html bool, err error) {
	if !html {
		Error(c, err)
		return
	}
	status, message := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, token.ErrInvalid):
		status, message = http.StatusForbidden, MsgQuizForbidden
	case errors.Is(err, quiz.ErrNotFound):
		status, message = http.StatusNotFound, "quiz not found"
	default:
		_ = c.Error(err)
	}
	c.HTML(status, assets.QuizPageName, assets.QuizPage{Title: "Memo Quiz", Error: message})
}

// Answer records the learner's answer for the quiz the token grants.
func (s *Server) Answer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Forbidden(c, MsgQuizForbidden)
		return
	}
	var subject token.Subject
	var err error
	if req.QuizID != 0 {
		subject, err = s.tokens.Authorize(req.Token, req.QuizID)
	} else {
		subject, err = s.tokens.Verify(req.Token)
	}
	if err != nil {
		s.logger.Info("quiz answer denied", zap.Error(err))
		Error(c, err)
		return
	}

	res, err := s.answers.Record(c.Request.Context(), subject.QuizID, subject.UserID, req.Answer)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, AnswerResponse{
		AttemptID:       res.Attempt.ID,
		IsCorrect:       res.IsCorrect,
		CorrectAnswer:   res.CanonicalAnswer,
		Status:          res.Status,
		NextScheduledAt: res.ScheduledAt,
	})
}
