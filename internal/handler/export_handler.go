package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/examprep/internal/service"
)

type ExportHandler struct {
	export *service.ExportService
}

func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// DownloadPDF keeps the original single-format endpoint.
func (h *ExportHandler) DownloadPDF(c *gin.Context) {
	h.notes(c, "pdf")
}

func (h *ExportHandler) DownloadNotes(c *gin.Context) {
	h.notes(c, c.DefaultQuery("format", "pdf"))
}

func (h *ExportHandler) notes(c *gin.Context, format string) {
	var req service.ExportRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.export.Notes(c.Request.Context(), req, format)
	if err != nil {
		handleError(c, err)
		return
	}
	sendDocument(c, doc)
}

func (h *ExportHandler) Flashcards(c *gin.Context) {
	var req service.FlashcardExportRequest
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.export.Flashcards(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	sendDocument(c, doc)
}
