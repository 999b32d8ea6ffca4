package stream

import (
	"context"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// WSSink sends each frame as one JSON text message.
type WSSink struct {
	conn *websocket.Conn
}

func NewWSSink(conn *websocket.Conn) *WSSink {
	return &WSSink{conn: conn}
}

func (s *WSSink) Send(ctx context.Context, f Frame) error {
	return wsjson.Write(ctx, s.conn, f)
}
