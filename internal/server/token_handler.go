package server

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/at-ishikawa/memoquiz/internal/token"
)

type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type VerifyTokenResponse struct {
	Valid     bool       `json:"valid"`
	QuizID    int64      `json:"quiz_id,omitempty"`
	UserID    int64      `json:"user_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// VerifyToken reports whether a quiz access token is valid. Operators get the failure reason.
// @Router /api/tokens/verify [post]
func (s *Server) VerifyToken(c *gin.Context) {
	var req VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	subject, err := s.tokens.Verify(req.Token)
	if err != nil {
		if !errors.Is(err, token.ErrInvalid) {
			InternalError(c, err)
			return
		}
		Success(c, VerifyTokenResponse{Valid: false, Reason: invalidReason(err)})
		return
	}
	expiresAt := subject.ExpiresAt
	Success(c, VerifyTokenResponse{
		Valid:     true,
		QuizID:    subject.QuizID,
		UserID:    subject.UserID,
		ExpiresAt: &expiresAt,
	})
}

func invalidReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrSignature):
		return "signature"
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
