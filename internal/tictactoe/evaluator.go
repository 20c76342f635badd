package tictactoe

import "github.com/rocketscienceinc/tictactoe-minimax/internal/entity"

type cell struct {
	row, col int
}

// lines lists every line of three in the order they are examined:
// both diagonals, the rows, then the columns.
var lines = [8][entity.BoardSize]cell{
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
}

// Evaluate returns the verdict for the board. The first complete line wins, so a
// synthetic board holding lines for both sides still gets a single answer.
func Evaluate(board *entity.Board) entity.Outcome {
	for _, line := range lines {
		if outcome := checkLine(board, line); outcome != entity.OutcomeNone {
			return outcome
		}
	}

	if board.IsFull() {
		return entity.OutcomeDraw
	}

	return entity.OutcomeNone
}

func checkLine(board *entity.Board, line [entity.BoardSize]cell) entity.Outcome {
	var xCount, oCount int
	for _, c := range line {
		switch board.Cells[c.row][c.col] {
		case entity.PlayerX:
			xCount++
		case entity.PlayerO:
			oCount++
		}
	}

	switch {
	case xCount == entity.BoardSize:
		return entity.OutcomeXWins
	case oCount == entity.BoardSize:
		return entity.OutcomeOWins
	default:
		return entity.OutcomeNone
	}
}
