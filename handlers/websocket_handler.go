package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub               *brackets.Hub
	tournamentService services.TournamentService
	upgrader          websocket.Upgrader
	logger            *slog.Logger
}

// NewWebSocketHandler accepts connections from the given origins; "*" allows any.
func NewWebSocketHandler(hub *brackets.Hub, ts services.TournamentService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
		logger:            logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeWs streams BRACKET_UPDATED messages to the client, starting with the
// current snapshot, and accepts MATCH_RESULT messages from it.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade websocket connection", slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: h.hub.Room(),
	}

	select {
	case client.Hub.Register <- client:
	case <-client.Hub.Done():
		conn.Close()
		return
	}

	// The client is in the room before its first snapshot is taken.
	if payload, err := json.Marshal(h.tournamentService.Snapshot()); err == nil {
		if initial, err := json.Marshal(brackets.WebSocketMessage{Type: brackets.MessageBracketUpdated, Payload: payload, RoomID: client.Room}); err == nil {
			client.Mu.Lock()
			if !client.IsClosed {
				select {
				case client.Send <- initial:
				default:
				}
			}
			client.Mu.Unlock()
		}
	}

	go client.WritePump()
	go client.ReadPump()
}
