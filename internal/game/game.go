package game

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	// minTurnsForWin is the earliest turn on which a line can be completed.
	minTurnsForWin = 5

	// ComputerMark is the computer's side in single-player mode; the human plays X.
	ComputerMark = entity.PlayerO
)

func NewSession(id string, mode entity.Mode, difficulty entity.Difficulty) (*Session, error) {
	if _, err := entity.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	if mode == entity.ModeSinglePlayer {
		if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
			return nil, err
		}
	} else {
		difficulty = ""
	}

	return &Session{
		id:          id,
		mode:        mode,
		difficulty:  difficulty,
		currentMark: entity.PlayerX,
		state:       entity.StateAwaitingMove,
	}, nil
}

// SubmitMove places the current mark at (row, col) and advances the round.
func (that *Session) SubmitMove(row, col int) error {
	if that.state == entity.StateRoundOver {
		return apperror.ErrRoundAlreadyOver
	}

	if err := that.board.Set(row, col, that.currentMark); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	that.turnCount++
	that.updateRoundState()

	return nil
}

// RequestAIMove lets the computer play O in single-player mode.
func (that *Session) RequestAIMove() (entity.Move, error) {
	if that.mode != entity.ModeSinglePlayer {
		return entity.Move{}, fmt.Errorf("%w: session is in %s mode", apperror.ErrInvalidAITurn, that.mode)
	}

	if that.state == entity.StateRoundOver {
		return entity.Move{}, apperror.ErrRoundAlreadyOver
	}

	if that.currentMark != ComputerMark {
		return entity.Move{}, fmt.Errorf("%w: %s to move", apperror.ErrInvalidAITurn, that.currentMark)
	}

	row, col, err := tictactoe.ChooseMove(&that.board, that.turnCount, that.difficulty)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to choose move: %w", err)
	}

	if err = that.SubmitMove(row, col); err != nil {
		return entity.Move{}, err
	}

	return entity.Move{Row: row, Col: col, Mark: ComputerMark}, nil
}

// ResetRound clears the board for a new round. Scores are kept.
func (that *Session) ResetRound() {
	that.board.Reset()
	that.turnCount = 0
	that.currentMark = entity.PlayerX
	that.state = entity.StateAwaitingMove
	that.outcome = entity.OutcomeNone
}

// ResetScores zeroes both scores without touching the current round.
func (that *Session) ResetScores() {
	that.player1Score = 0
	that.player2Score = 0
}

func (that *Session) updateRoundState() {
	switch outcome := tictactoe.Evaluate(&that.board); {
	case outcome.IsWin() && that.turnCount >= minTurnsForWin:
		that.finishRound(outcome)
	case outcome == entity.OutcomeDraw && that.turnCount == entity.CellCount:
		that.finishRound(outcome)
	default:
		that.currentMark = that.currentMark.Opponent()
	}
}

// finishRound records the verdict. X is player 1 (the human in single-player
// mode) and O is player 2 (the computer).
func (that *Session) finishRound(outcome entity.Outcome) {
	that.state = entity.StateRoundOver
	that.outcome = outcome

	switch outcome {
	case entity.OutcomeXWins:
		that.player1Score++
	case entity.OutcomeOWins:
		that.player2Score++
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Mode() entity.Mode {
	return that.mode
}

func (that *Session) Difficulty() entity.Difficulty {
	return that.difficulty
}

// Board returns a copy of the current board.
func (that *Session) Board() entity.Board {
	return that.board
}

func (that *Session) TurnCount() int {
	return that.turnCount
}

func (that *Session) CurrentMark() entity.Mark {
	return that.currentMark
}

func (that *Session) State() entity.RoundState {
	return that.state
}

func (that *Session) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Session) IsRoundOver() bool {
	return that.state == entity.StateRoundOver
}

func (that *Session) Player1Score() int {
	return that.player1Score
}

func (that *Session) Player2Score() int {
	return that.player2Score
}

// IsComputerTurn reports whether the computer is expected to move next.
func (that *Session) IsComputerTurn() bool {
	return that.mode == entity.ModeSinglePlayer &&
		that.state == entity.StateAwaitingMove &&
		that.currentMark == ComputerMark
}
