package tictactoe

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// ChooseMove picks the computer's cell. turnCount is the number of moves already
// played in the round and seeds the depth of every search.
//
// The board is restored before ChooseMove returns.
func ChooseMove(board *entity.Board, turnCount int, difficulty entity.Difficulty) (int, int, error) {
	candidates := board.EmptyCells()
	if len(candidates) == 0 {
		return 0, 0, ErrNoAvailableMoves
	}

	var move entity.Move
	switch difficulty {
	case entity.DifficultyHard:
		move = chooseHard(board, candidates, turnCount)
	case entity.DifficultyEasy:
		move = chooseEasy(board, candidates, turnCount)
	default:
		return 0, 0, fmt.Errorf("%w: %q", entity.ErrUnknownDifficulty, difficulty)
	}

	return move.Row, move.Col, nil
}

// chooseHard tries O in every empty cell and keeps the one X can do least with.
// A candidate scoring LossScore is a forced win for O and is taken at once.
func chooseHard(board *entity.Board, candidates []entity.Move, turnCount int) entity.Move {
	bestScore := math.MaxInt
	best := candidates[0]

	for _, candidate := range candidates {
		board.Cells[candidate.Row][candidate.Col] = entity.PlayerO
		score := Score(board, turnCount, entity.PlayerX)
		board.Cells[candidate.Row][candidate.Col] = entity.EmptyCell

		if score == LossScore {
			return candidate
		}

		if score < bestScore {
			bestScore = score
			best = candidate
		}
	}

	return best
}

// chooseEasy scores every empty cell as if X had taken it, with O to reply, and
// keeps the cell that is best for X. The computer then plays O there, which is
// what makes this level beatable: it often ignores its own wins and X's threats.
func chooseEasy(board *entity.Board, candidates []entity.Move, turnCount int) entity.Move {
	bestScore := math.MinInt
	best := candidates[0]

	for _, candidate := range candidates {
		board.Cells[candidate.Row][candidate.Col] = entity.PlayerX
		score := Score(board, turnCount, entity.PlayerO)
		board.Cells[candidate.Row][candidate.Col] = entity.EmptyCell

		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	return best
}
