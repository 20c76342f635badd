package entity

import (
	"errors"
	"fmt"
)

type Outcome string

const (
	OutcomeNone  Outcome = ""
	OutcomeXWins Outcome = "x_wins"
	OutcomeOWins Outcome = "o_wins"
	OutcomeDraw  Outcome = "draw"
)

// Winner returns the mark of the winning side, or EmptyCell for a draw or an open round.
func (that Outcome) Winner() Mark {
	switch that {
	case OutcomeXWins:
		return PlayerX
	case OutcomeOWins:
		return PlayerO
	default:
		return EmptyCell
	}
}

func (that Outcome) IsWin() bool {
	return that == OutcomeXWins || that == OutcomeOWins
}

type Mode string

const (
	ModeSinglePlayer Mode = "single"
	ModeTwoPlayer    Mode = "two"
)

type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

type RoundState string

const (
	StateAwaitingMove RoundState = "awaiting_move"
	StateRoundOver    RoundState = "round_over"
)

var (
	ErrUnknownMode        = errors.New("unknown game mode")
	ErrUnknownDifficulty  = errors.New("unknown difficulty")
	ErrUnknownRoundState  = errors.New("unknown round state")
	ErrUnknownOutcomeName = errors.New("unknown outcome")
)

func ParseMode(value string) (Mode, error) {
	switch mode := Mode(value); mode {
	case ModeSinglePlayer, ModeTwoPlayer:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(value); difficulty {
	case DifficultyEasy, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}
}

func (that RoundState) Validate() error {
	switch that {
	case StateAwaitingMove, StateRoundOver:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRoundState, that)
	}
}

func (that Outcome) Validate() error {
	switch that {
	case OutcomeNone, OutcomeXWins, OutcomeOWins, OutcomeDraw:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcomeName, that)
	}
}
