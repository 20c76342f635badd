package game

import "github.com/rocketscienceinc/tictactoe-minimax/internal/entity"

// Snapshot is the serializable state of a Session. Presentation layers and the
// repository save it and rebuild the session with Restore.
type Snapshot struct {
	ID           string            `json:"id"`
	Mode         entity.Mode       `json:"mode"`
	Difficulty   entity.Difficulty `json:"difficulty,omitempty"`
	Board        entity.Board      `json:"board"`
	TurnCount    int               `json:"turn_count"`
	CurrentMark  entity.Mark       `json:"current_mark"`
	State        entity.RoundState `json:"state"`
	Outcome      entity.Outcome    `json:"outcome,omitempty"`
	Player1Score int               `json:"player1_score"`
	Player2Score int               `json:"player2_score"`
}

// Session holds one match: the board of the current round, whose turn it is and
// the running scores. It is not safe for concurrent use.
type Session struct {
	id         string
	mode       entity.Mode
	difficulty entity.Difficulty

	board       entity.Board
	turnCount   int
	currentMark entity.Mark
	state       entity.RoundState
	outcome     entity.Outcome

	player1Score int
	player2Score int
}
