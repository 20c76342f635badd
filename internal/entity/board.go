package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const BoardSize = 3

// CellCount is the number of cells on the board and the longest possible round.
const CellCount = BoardSize * BoardSize

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// IsPlayer reports whether the mark belongs to one of the two sides.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other side's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Mark Mark `json:"mark,omitempty"`
}

// Board is a 3x3 grid addressed by zero-based (row, col).
type Board struct {
	Cells [BoardSize][BoardSize]Mark `json:"cells"`
}

func NewBoard() *Board {
	return &Board{}
}

func ValidateCoordinate(row, col int) error {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCoordinate, row, col)
	}

	return nil
}

func (that *Board) Get(row, col int) (Mark, error) {
	if err := ValidateCoordinate(row, col); err != nil {
		return EmptyCell, err
	}

	return that.Cells[row][col], nil
}

// Set writes mark into an empty cell.
func (that *Board) Set(row, col int, mark Mark) error {
	if err := ValidateCoordinate(row, col); err != nil {
		return err
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that.Cells[row][col] != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.Cells[row][col] = mark

	return nil
}

func (that *Board) IsFull() bool {
	for row := range BoardSize {
		for col := range BoardSize {
			if that.Cells[row][col] == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) Reset() {
	that.Cells = [BoardSize][BoardSize]Mark{}
}

// CountMarks returns the number of non-empty cells.
func (that *Board) CountMarks() int {
	count := 0
	for row := range BoardSize {
		for col := range BoardSize {
			if that.Cells[row][col] != EmptyCell {
				count++
			}
		}
	}

	return count
}

// EmptyCells lists the free cells in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, CellCount)
	for row := range BoardSize {
		for col := range BoardSize {
			if that.Cells[row][col] == EmptyCell {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// String renders the board row by row, using '.' for empty cells.
func (that *Board) String() string {
	out := make([]byte, 0, CellCount+BoardSize)
	for row := range BoardSize {
		if row > 0 {
			out = append(out, '/')
		}
		for col := range BoardSize {
			switch that.Cells[row][col] {
			case PlayerX:
				out = append(out, 'X')
			case PlayerO:
				out = append(out, 'O')
			default:
				out = append(out, '.')
			}
		}
	}

	return string(out)
}
