package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/at-ishikawa/memoquiz/internal/notification"
	"github.com/at-ishikawa/memoquiz/internal/quiz"
	"github.com/at-ishikawa/memoquiz/internal/scheduler"
)

type NotifyRequest struct {
	QuizID int64 `json:"quiz_id" binding:"required,gt=0"`
	UserID int64 `json:"user_id" binding:"required,gt=0"`
	Force  bool  `json:"force"`
}

type NotifyResponse struct {
	QuizID  int64                   `json:"quiz_id"`
	UserID  int64                   `json:"user_id"`
	Outcome notification.Outcome    `json:"outcome"`
	Reason  notification.SkipReason `json:"reason,omitempty"`
	Error   string                  `json:"error,omitempty"`
	LogID   int64                   `json:"log_id,omitempty"`
}

type SweepRequest struct {
	Status         string `json:"status" binding:"required"`
	WindowMinutes  int    `json:"window_minutes" binding:"gte=0,lte=720"`
	IncludeOverdue bool   `json:"include_overdue"`
}

func newNotifyResponse(res notification.Result) NotifyResponse {
	out := NotifyResponse{
		QuizID:  res.QuizID,
		UserID:  res.UserID,
		Outcome: res.Outcome,
		Reason:  res.Reason,
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	if res.Log != nil {
		out.LogID = res.Log.ID
	}
	return out
}

// Notify godoc
// @Summary Send the notification for one quiz
// @Router /api/notifications/notify [post]
func (s *Server) Notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	res, err := s.scheduler.Notify(c.Request.Context(), req.QuizID, req.UserID, req.Force)
	if err != nil {
		Error(c, err)
		return
	}
	s.logger.Info("single notification",
		zap.Int64("quiz_id", req.QuizID),
		zap.Int64("user_id", req.UserID),
		zap.Bool("force", req.Force),
		zap.String("outcome", string(res.Outcome)),
	)
	Success(c, newNotifyResponse(res))
}

// Sweep godoc
// @Summary Notify every quiz of a status scheduled around now
// @Router /api/notifications/sweep [post]
func (s *Server) Sweep(c *gin.Context) {
	var req SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	status, err := quiz.ParseStatus(req.Status)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	res, err := s.scheduler.Sweep(c.Request.Context(), scheduler.SweepOptions{
		Status:         status,
		Window:         time.Duration(req.WindowMinutes) * time.Minute,
		IncludeOverdue: req.IncludeOverdue,
	})
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, res)
}

// Retry godoc
// @Summary Resend recent failed notifications
// @Router /api/notifications/retry [post]
func (s *Server) Retry(c *gin.Context) {
	res, err := s.scheduler.RetryFailed(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, res)
}
