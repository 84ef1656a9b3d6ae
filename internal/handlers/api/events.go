package api

import (
	"context"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/device"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// eventStream hands views from the device loop to the socket writer
type eventStream struct {
	// updates holds only the latest view; a slow client skips intermediate ones
	updates chan *device.View
	closed  chan *messaging.GetRoomClosedMessageOutput
}

func newEventStream() *eventStream {
	return &eventStream{
		updates: make(chan *device.View, 1),
		closed:  make(chan *messaging.GetRoomClosedMessageOutput, 1),
	}
}

// update is only called from the device loop, so the send after the drain cannot block
func (s *eventStream) update(view *device.View) {
	select {
	case <-s.updates:
	default:
	}
	s.updates <- view
}

func (s *eventStream) close(notice *messaging.GetRoomClosedMessageOutput) {
	select {
	case s.closed <- notice:
	default:
	}
}

// events streams the caller's view of a room over a WebSocket until the room closes
func (h *Handler) events(c *gin.Context) {
	deviceID := deviceIDFrom(c)
	roomID := c.Param("id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed",
			zap.String("room_id", roomID),
			zap.String("device_id", deviceID),
			zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	stream := newEventStream()
	dev, err := device.New(&device.Config{
		RoomID:             roomID,
		DeviceID:           deviceID,
		Subscriber:         h.subscriber,
		GameService:        h.gameService,
		HistoryService:     h.historyService,
		Messaging:          h.messaging,
		HidePhonesDuration: h.hidePhonesDuration,
		OnUpdate:           stream.update,
		OnRoomClosed:       stream.close,
		Logger:             h.logger,
	})
	if err != nil {
		h.writeEvent(conn, h.errorEvent(ctx, err))
		return
	}

	go h.readPump(conn, cancel)

	runErr := make(chan error, 1)
	go func() {
		runErr <- dev.Run(ctx)
	}()

	h.logger.Debug("Event stream opened",
		zap.String("room_id", roomID),
		zap.String("device_id", deviceID))

	h.writePump(ctx, conn, stream, runErr, deviceID)

	h.logger.Debug("Event stream closed",
		zap.String("room_id", roomID),
		zap.String("device_id", deviceID))
}

// readPump discards client frames and cancels the stream when the client goes away
func (h *Handler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read failed", zap.Error(err))
			}
			return
		}
	}
}

func (h *Handler) writePump(ctx context.Context, conn *websocket.Conn, stream *eventStream, runErr <-chan error, deviceID string) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case view := <-stream.updates:
			if err := h.writeEvent(conn, toView(view, deviceID)); err != nil {
				return
			}
		case notice := <-stream.closed:
			h.writeClosed(conn, notice)
			return
		case err := <-runErr:
			select {
			case notice := <-stream.closed:
				h.writeClosed(conn, notice)
				return
			default:
			}
			if err != nil && ctx.Err() == nil {
				h.writeEvent(conn, h.errorEvent(ctx, err))
			}
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeEvent(conn *websocket.Conn, event interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(event); err != nil {
		h.logger.Debug("WebSocket write failed", zap.Error(err))
		return err
	}
	return nil
}

func (h *Handler) writeClosed(conn *websocket.Conn, notice *messaging.GetRoomClosedMessageOutput) {
	if err := h.writeEvent(conn, &ClosedResponse{
		Type:    "closed",
		Title:   notice.Title,
		Message: notice.Message,
	}); err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, notice.Message),
		time.Now().Add(writeWait))
}

func (h *Handler) errorEvent(ctx context.Context, err error) gin.H {
	event := gin.H{"type": "error", "title": "Error", "message": err.Error()}
	if output, msgErr := h.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err}); msgErr == nil {
		event["title"] = output.Title
		event["message"] = output.Message
	}
	return event
}
