package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/xxxsen/examprep/internal/pkg/errors"
	"github.com/xxxsen/examprep/internal/pkg/response"
	"github.com/xxxsen/examprep/internal/service"
	"github.com/xxxsen/examprep/internal/stream"
)

type ChatHandler struct {
	chat           *service.ChatService
	originPatterns []string
}

func NewChatHandler(chat *service.ChatService, originPatterns []string) *ChatHandler {
	return &ChatHandler{chat: chat, originPatterns: originPatterns}
}

func (h *ChatHandler) Reply(c *gin.Context) {
	var req service.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	text, err := h.chat.Reply(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"response": text})
}

func (h *ChatHandler) Stream(c *gin.Context) {
	var req service.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := streamContext(c)
	defer cancel()
	fragments, err := h.chat.Stream(ctx, req)
	if err != nil {
		handleError(c, err)
		return
	}
	relaySSE(c, ctx, fragments)
}

// WebSocket serves chat over one connection: each JSON request message is
// answered with the same frames the SSE endpoint sends.
func (h *ChatHandler) WebSocket(c *gin.Context) {
	conn, err := websocket.Accept(unwrapWriter(c.Writer), c.Request, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		logutil.GetLogger(c.Request.Context()).Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx := c.Request.Context()
	sink := stream.NewWSSink(conn)
	for {
		var req service.ChatRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				return
			}
			logutil.GetLogger(ctx).Debug("websocket read ended", zap.Error(err))
			return
		}
		if err := h.serveMessage(ctx, sink, req); err != nil {
			return
		}
	}
}

func (h *ChatHandler) serveMessage(ctx context.Context, sink stream.Sink, req service.ChatRequest) error {
	msgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	fragments, err := h.chat.Stream(msgCtx, req)
	if err != nil {
		var vErr *appErr.ValidationError
		if errors.As(err, &vErr) {
			return sink.Send(msgCtx, stream.ErrorFrame(vErr.Msg))
		}
		return sink.Send(msgCtx, stream.ErrorFrame("internal error"))
	}
	err = stream.Relay(msgCtx, fragments, sink)
	if err != nil && !errors.Is(err, stream.ErrGenerationFailed) {
		return err
	}
	return nil
}

// unwrapWriter returns the net/http writer under gin's. The websocket
// handshake writes the header before hijacking, and gin refuses to hijack
// a writer whose header has already gone out.
func unwrapWriter(w gin.ResponseWriter) http.ResponseWriter {
	if u, ok := w.(interface{ Unwrap() http.ResponseWriter }); ok {
		return u.Unwrap()
	}
	return w
}
