package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

const (
	actionSessionNew  = "session:new"
	actionSessionGet  = "session:get"
	actionGameTurn    = "game:turn"
	actionGameAI      = "game:ai"
	actionRoundReset  = "round:reset"
	actionScoresReset = "scores:reset"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID  string            `json:"session_id,omitempty"`
	Mode       entity.Mode       `json:"mode,omitempty"`
	Difficulty entity.Difficulty `json:"difficulty,omitempty"`
	Row        *int              `json:"row,omitempty"`
	Col        *int              `json:"col,omitempty"`
}

type ResponsePayload struct {
	Session *game.Snapshot `json:"session,omitempty"`
	Error   string         `json:"error,omitempty"`
}
