package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/examprep/internal/pkg/errors"
	"github.com/xxxsen/examprep/internal/pkg/response"
	"github.com/xxxsen/examprep/internal/service"
	"github.com/xxxsen/examprep/internal/stream"
)

type StudyHandler struct {
	study *service.StudyService
}

func NewStudyHandler(study *service.StudyService) *StudyHandler {
	return &StudyHandler{study: study}
}

type studyRequest struct {
	SubjectCode string `json:"subject_code"`
	ExamType    string `json:"exam_type"`
}

func (r studyRequest) code() string {
	return strings.ToUpper(strings.TrimSpace(r.SubjectCode))
}

func (h *StudyHandler) GenerateContent(c *gin.Context) {
	var req studyRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.study.GenerateContent(c.Request.Context(), req.code(), req.ExamType)
	if appErr.IsNotFound(err) {
		subjectNotFound(c, req.code())
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, out)
}

// NotesStream sends a subject_name frame before the note fragments.
func (h *StudyHandler) NotesStream(c *gin.Context) {
	var req studyRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := streamContext(c)
	defer cancel()
	name, fragments, err := h.study.NotesStream(ctx, req.code(), req.ExamType)
	if appErr.IsNotFound(err) {
		subjectNotFound(c, req.code())
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	relaySSE(c, ctx, fragments, stream.SubjectFrame(name))
}
