package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/examprep/internal/pkg/response"
	"github.com/xxxsen/examprep/internal/service"
)

type ScheduleHandler struct {
	schedule *service.ScheduleService
}

func NewScheduleHandler(schedule *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	text, err := h.schedule.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"schedule": text})
}

func (h *ScheduleHandler) Stream(c *gin.Context) {
	var req service.ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := streamContext(c)
	defer cancel()
	fragments, err := h.schedule.Stream(ctx, req)
	if err != nil {
		handleError(c, err)
		return
	}
	relaySSE(c, ctx, fragments)
}
