package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/examprep/internal/ai"
	"github.com/xxxsen/examprep/internal/document"
	"github.com/xxxsen/examprep/internal/middleware"
	"github.com/xxxsen/examprep/internal/pkg/errcode"
	appErr "github.com/xxxsen/examprep/internal/pkg/errors"
	"github.com/xxxsen/examprep/internal/pkg/response"
	"github.com/xxxsen/examprep/internal/stream"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var vErr *appErr.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, vErr.Msg)
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, errcode.ErrNotFound, "not found")
	default:
		requestID := c.GetString(middleware.ContextRequestIDKey)
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, errcode.ErrInternal, "internal error")
	}
}

func subjectNotFound(c *gin.Context, code string) {
	response.Error(c, http.StatusNotFound, errcode.ErrNotFound, fmt.Sprintf("Subject %s not found in database", code))
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return false
	}
	return true
}

// streamContext is cancelled when the handler returns so a producer never
// outlives its client.
func streamContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(c.Request.Context())
}

func relaySSE(c *gin.Context, ctx context.Context, fragments <-chan ai.Fragment, header ...stream.Frame) {
	c.Status(http.StatusOK)
	err := stream.Relay(ctx, fragments, stream.NewSSESink(c.Writer), header...)
	if err != nil && !errors.Is(err, stream.ErrGenerationFailed) {
		logutil.GetLogger(ctx).Debug("stream ended early", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
}

func sendDocument(c *gin.Context, doc *document.Document) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.MIME, doc.Data)
}
