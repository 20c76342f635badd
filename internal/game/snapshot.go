package game

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func (that *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:           that.id,
		Mode:         that.mode,
		Difficulty:   that.difficulty,
		Board:        that.board,
		TurnCount:    that.turnCount,
		CurrentMark:  that.currentMark,
		State:        that.state,
		Outcome:      that.outcome,
		Player1Score: that.player1Score,
		Player2Score: that.player2Score,
	}
}

// Restore rebuilds a session from a snapshot, rejecting any state that legal
// play could not have produced.
func Restore(snapshot Snapshot) (*Session, error) {
	session, err := NewSession(snapshot.ID, snapshot.Mode, snapshot.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidSnapshot, err)
	}

	if err = validateSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidSnapshot, err)
	}

	session.board = snapshot.Board
	session.turnCount = snapshot.TurnCount
	session.currentMark = snapshot.CurrentMark
	session.state = snapshot.State
	session.outcome = snapshot.Outcome
	session.player1Score = snapshot.Player1Score
	session.player2Score = snapshot.Player2Score

	return session, nil
}

func validateSnapshot(snapshot Snapshot) error {
	if snapshot.Player1Score < 0 || snapshot.Player2Score < 0 {
		return fmt.Errorf("negative score %d:%d", snapshot.Player1Score, snapshot.Player2Score)
	}

	if err := snapshot.State.Validate(); err != nil {
		return err
	}

	if err := snapshot.Outcome.Validate(); err != nil {
		return err
	}

	if !snapshot.CurrentMark.IsPlayer() {
		return fmt.Errorf("%w: current mark %q", apperror.ErrInvalidMark, snapshot.CurrentMark)
	}

	board := snapshot.Board
	var xCount int
	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			switch board.Cells[row][col] {
			case entity.PlayerX:
				xCount++
			case entity.PlayerO, entity.EmptyCell:
			default:
				return fmt.Errorf("%w: cell (%d, %d) holds %q", apperror.ErrInvalidMark, row, col, board.Cells[row][col])
			}
		}
	}

	marks := board.CountMarks()
	oCount := marks - xCount

	if xCount-oCount != 0 && xCount-oCount != 1 {
		return fmt.Errorf("board has %d X and %d O", xCount, oCount)
	}

	if snapshot.TurnCount != marks {
		return fmt.Errorf("turn count %d does not match %d marks", snapshot.TurnCount, marks)
	}

	verdict := tictactoe.Evaluate(&board)

	if snapshot.State == entity.StateAwaitingMove {
		if verdict != entity.OutcomeNone || snapshot.Outcome != entity.OutcomeNone {
			return fmt.Errorf("round is open but the board reads %q", verdict)
		}

		if expected := nextMark(xCount, oCount); snapshot.CurrentMark != expected {
			return fmt.Errorf("%s to move but the board says %s", snapshot.CurrentMark, expected)
		}

		return nil
	}

	if verdict == entity.OutcomeNone || verdict != snapshot.Outcome {
		return fmt.Errorf("round is over with %q but the board reads %q", snapshot.Outcome, verdict)
	}

	if winner := verdict.Winner(); winner != entity.EmptyCell && snapshot.CurrentMark != winner {
		return fmt.Errorf("%s completed the line but %s holds the turn", winner, snapshot.CurrentMark)
	}

	return nil
}

func nextMark(xCount, oCount int) entity.Mark {
	if xCount == oCount {
		return entity.PlayerX
	}

	return entity.PlayerO
}
