package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/examprep/internal/model"
	"github.com/xxxsen/examprep/internal/pkg/response"
	"github.com/xxxsen/examprep/internal/service"
)

type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Save(c *gin.Context) {
	var req model.StudySession
	if !bindJSON(c, &req) {
		return
	}
	saved := h.sessions.Save(c.Request.Context(), req)
	response.Success(c, gin.H{"message": "Session saved successfully", "session": saved})
}

func (h *SessionHandler) List(c *gin.Context) {
	response.Success(c, gin.H{"sessions": h.sessions.List(c.Request.Context())})
}
