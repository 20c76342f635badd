// Package boardtest builds boards from compact layouts for tests.
package boardtest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrInvalidLayout = errors.New("invalid board layout")

// Parse builds a board from its String form: three rows of 'X', 'O' or '.'
// separated by '/'. '_' is accepted for an empty cell too.
func Parse(layout string) (*entity.Board, error) {
	board := entity.NewBoard()

	row, col := 0, 0
	for _, symbol := range layout {
		if symbol == '/' {
			if col != entity.BoardSize {
				return nil, fmt.Errorf("%w: short row %d in %q", ErrInvalidLayout, row, layout)
			}
			row, col = row+1, 0
			continue
		}

		if row >= entity.BoardSize || col >= entity.BoardSize {
			return nil, fmt.Errorf("%w: %q is larger than 3x3", ErrInvalidLayout, layout)
		}

		switch symbol {
		case 'X', 'x':
			board.Cells[row][col] = entity.PlayerX
		case 'O', 'o':
			board.Cells[row][col] = entity.PlayerO
		case '.', '_':
		default:
			return nil, fmt.Errorf("%w: unexpected symbol %q", ErrInvalidLayout, symbol)
		}
		col++
	}

	if row != entity.BoardSize-1 || col != entity.BoardSize {
		return nil, fmt.Errorf("%w: %q is smaller than 3x3", ErrInvalidLayout, layout)
	}

	return board, nil
}

// MustParse is Parse for fixed layouts; it fails the test on a malformed one.
func MustParse(t testing.TB, layout string) *entity.Board {
	t.Helper()

	board, err := Parse(layout)
	if err != nil {
		t.Fatalf("bad board layout: %v", err)
	}

	return board
}
