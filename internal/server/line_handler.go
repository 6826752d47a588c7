package server

import (
	"github.com/gin-gonic/gin"
)

// LineWebhook handles LINE platform callbacks. Per-event failures are logged by the webhook
// and still acknowledged so that LINE does not redeliver.
func (s *Server) LineWebhook(c *gin.Context) {
	if err := s.webhook.Handle(c.Request.Context(), c.Request); err != nil {
		Error(c, err)
		return
	}
	Success(c, nil)
}
