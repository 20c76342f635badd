package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

// isIgnored reports errors a client gets no error for: tapping an occupied
// cell and asking the computer to move out of turn just resend the state.
func isIgnored(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrInvalidAITurn)
}

func (that *Server) handleSessionNew(ctx context.Context, payload *RequestPayload) (*game.Snapshot, error) {
	return that.manager.CreateSession(ctx, payload.Mode, payload.Difficulty)
}

func (that *Server) handleSessionGet(ctx context.Context, payload *RequestPayload) (*game.Snapshot, error) {
	if payload.SessionID == "" {
		return nil, errMissingSessionID
	}

	return that.manager.GetSession(ctx, payload.SessionID)
}

func (that *Server) handleGameTurn(ctx context.Context, payload *RequestPayload) (*game.Snapshot, error) {
	if payload.SessionID == "" {
		return nil, errMissingSessionID
	}

	if payload.Row == nil || payload.Col == nil {
		return nil, fmt.Errorf("%w: row and col are required", apperror.ErrInvalidCoordinate)
	}

	return that.manager.MakeTurn(ctx, payload.SessionID, *payload.Row, *payload.Col)
}

func (that *Server) handleGameAI(ctx context.Context, payload *RequestPayload) (*game.Snapshot, error) {
	if payload.SessionID == "" {
		return nil, errMissingSessionID
	}

	return that.manager.RequestAIMove(ctx, payload.SessionID)
}

func (that *Server) handleRoundReset(ctx context.Context, payload *RequestPayload) (*game.Snapshot, error) {
	if payload.SessionID == "" {
		return nil, errMissingSessionID
	}

	return that.manager.ResetRound(ctx, payload.SessionID)
}

func (that *Server) handleScoresReset(ctx context.Context, payload *RequestPayload) (*game.Snapshot, error) {
	if payload.SessionID == "" {
		return nil, errMissingSessionID
	}

	return that.manager.ResetScores(ctx, payload.SessionID)
}
