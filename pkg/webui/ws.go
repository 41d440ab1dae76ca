package webui

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"scout/pkg/draft"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type settingsWSEvent struct {
	Type      string      `json:"type"` // "snapshot", "pong"
	Settings  interface{} `json:"settings,omitempty"`
	UpdatedAt int64       `json:"updated_at,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
}

// handleSettingsWS streams settings snapshots to the client: the current
// snapshot on connect, then one event per applied patch.
func (s *Server) handleSettingsWS(c *echo.Context) error {
	// WebSocket clients can't set an Authorization header easily, so the
	// token rides in a query param.
	tokenStr := c.QueryParam("token")
	if tokenStr == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token required"})
	}
	if err := s.validateToken(tokenStr); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Error("Settings WS upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()

	clientID := uuid.NewString()
	s.logger.Debug("Settings WS client connected", zap.String("client", clientID))

	updates, cancel := s.drafts.Subscribe()
	defer cancel()

	// Initial snapshot so the client renders without a round trip.
	snap, ok, err := s.drafts.Get(c.Request().Context())
	if err != nil {
		s.logger.Warn("Settings WS initial load failed", zap.Error(err))
	} else {
		if !ok {
			snap = s.drafts.DefaultSnapshot()
		}
		writeSnapshot(conn, snap)
	}

	// Reader: drain client frames so pong handling works, signal on close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(4096)
		conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			if err := writeSnapshot(conn, snap); err != nil {
				s.logger.Debug("Settings WS write failed",
					zap.String("client", clientID), zap.Error(err))
				return nil
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}

		case <-done:
			s.logger.Debug("Settings WS client disconnected", zap.String("client", clientID))
			return nil
		}
	}
}

func writeSnapshot(conn *websocket.Conn, snap draft.Snapshot) error {
	event := settingsWSEvent{
		Type:      "snapshot",
		Settings:  snap.Search,
		UpdatedAt: snap.UpdatedAt.Unix(),
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, data)
}
