package apperror

import "errors"

var (
	ErrInvalidCoordinate = errors.New("coordinate is outside the board")
	ErrInvalidMark       = errors.New("mark must be X or O")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrRoundAlreadyOver  = errors.New("round is already over")
	ErrInvalidAITurn     = errors.New("it's not the computer's turn")
	ErrNotFound          = errors.New("not found")
	ErrInvalidSnapshot   = errors.New("invalid session snapshot")
)
