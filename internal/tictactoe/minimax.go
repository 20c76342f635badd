package tictactoe

import "github.com/rocketscienceinc/tictactoe-minimax/internal/entity"

const (
	WinScore  = 10
	LossScore = -WinScore
	DrawScore = 0
)

// Score runs an exhaustive minimax over the board with toMove placing next.
// X maximizes and O minimizes. The result is biased by depth: a maximizing node
// returns best-depth and a minimizing node best+depth.
//
// The board is used as scratch space: marks are placed and cleared in place, and
// the board is back in its original state when Score returns.
func Score(board *entity.Board, depth int, toMove entity.Mark) int {
	switch Evaluate(board) {
	case entity.OutcomeXWins:
		return WinScore
	case entity.OutcomeOWins:
		return LossScore
	case entity.OutcomeDraw:
		return DrawScore
	case entity.OutcomeNone:
	}

	if depth >= entity.CellCount {
		return DrawScore
	}

	maximizing := toMove == entity.PlayerX
	best := LossScore - entity.CellCount - 1
	if !maximizing {
		best = WinScore + entity.CellCount + 1
	}

	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			if board.Cells[row][col] != entity.EmptyCell {
				continue
			}

			board.Cells[row][col] = toMove
			childScore := Score(board, depth+1, toMove.Opponent())
			board.Cells[row][col] = entity.EmptyCell

			if maximizing {
				best = max(best, childScore)
			} else {
				best = min(best, childScore)
			}
		}
	}

	if maximizing {
		return best - depth
	}

	return best + depth
}
