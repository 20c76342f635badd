package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

var errMissingSessionID = errors.New("session_id is required")

type sessionManager interface {
	CreateSession(ctx context.Context, mode entity.Mode, difficulty entity.Difficulty) (*game.Snapshot, error)
	GetSession(ctx context.Context, id string) (*game.Snapshot, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*game.Snapshot, error)
	RequestAIMove(ctx context.Context, id string) (*game.Snapshot, error)
	ResetRound(ctx context.Context, id string) (*game.Snapshot, error)
	ResetScores(ctx context.Context, id string) (*game.Snapshot, error)
}

type handlerFunc func(ctx context.Context, payload *RequestPayload) (*game.Snapshot, error)

type Server struct {
	logger   *slog.Logger
	manager  sessionManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, manager sessionManager) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSessionNew] = server.handleSessionNew
	server.handlers[actionSessionGet] = server.handleSessionGet
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameAI] = server.handleGameAI
	server.handlers[actionRoundReset] = server.handleRoundReset
	server.handlers[actionScoresReset] = server.handleScoresReset

	return server
}

// Handle upgrades the request and serves messages until the client leaves.
func (that *Server) Handle(c *gin.Context) {
	log := that.logger.With("method", "Handle")

	conn, err := that.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote_addr", conn.RemoteAddr().String())

	if err = that.handleMessages(c.Request.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("WebSocket connection closed")
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.sendError(conn, actionError, "malformed message"); err != nil {
				return err
			}

			continue
		}

		if err = that.sendMessage(conn, message.Action, that.dispatch(ctx, &message)); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, message *Message) ResponsePayload {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		return ResponsePayload{Error: "unknown action"}
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			log.Warn("failed to unmarshal payload", "error", err)
			return ResponsePayload{Error: "malformed payload"}
		}
	}

	snapshot, err := handler(ctx, &payload)
	if isIgnored(err) {
		log.Debug("request ignored", "session_id", payload.SessionID, "reason", err)

		snapshot, err = that.manager.GetSession(ctx, payload.SessionID)
	}

	if err != nil {
		log.Warn("request failed", "session_id", payload.SessionID, "error", err)
		return ResponsePayload{Error: err.Error()}
	}

	return ResponsePayload{Session: snapshot}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action, reason string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: reason})
}
