package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/examprep/internal/pkg/response"
	"github.com/xxxsen/examprep/internal/service"
)

type SubjectHandler struct {
	subjects *service.SubjectService
}

func NewSubjectHandler(subjects *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

func (h *SubjectHandler) List(c *gin.Context) {
	items, err := h.subjects.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"subjects": items})
}

func (h *SubjectHandler) PYQs(c *gin.Context) {
	res, err := h.subjects.PYQs(c.Request.Context(), c.Query("subject_code"), c.Query("exam_type"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, res)
}

func (h *SubjectHandler) Resources(c *gin.Context) {
	response.Success(c, gin.H{"resources": h.subjects.Resources(c.Request.Context())})
}
