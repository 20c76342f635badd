package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot *game.Snapshot) error
	GetByID(ctx context.Context, id string) (*game.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// Defaults apply to sessions created without an explicit mode or difficulty.
type Defaults struct {
	Mode       entity.Mode
	Difficulty entity.Difficulty
}

// SessionManager loads a session, applies one operation and stores it back.
// Operations on the same session id run one at a time.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	defaults    Defaults

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from the map once no caller holds or waits for it.
type sessionLock struct {
	sync.Mutex
	refs int
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, defaults Defaults) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		defaults:    defaults,
		locks:       make(map[string]*sessionLock),
	}
}

func (that *SessionManager) CreateSession(ctx context.Context, mode entity.Mode, difficulty entity.Difficulty) (*game.Snapshot, error) {
	if mode == "" {
		mode = that.defaults.Mode
	}

	if difficulty == "" {
		difficulty = that.defaults.Difficulty
	}

	session, err := game.NewSession(uuid.NewString(), mode, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	snapshot := session.Snapshot()
	if err = that.sessionRepo.CreateOrUpdate(ctx, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	that.logger.Info("session created", "session_id", snapshot.ID, "mode", snapshot.Mode, "difficulty", snapshot.Difficulty)

	return &snapshot, nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (*game.Snapshot, error) {
	snapshot, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return snapshot, nil
}

// MakeTurn places the current player's mark. In single-player mode the
// computer answers straight away while the round is still open.
func (that *SessionManager) MakeTurn(ctx context.Context, id string, row, col int) (*game.Snapshot, error) {
	log := that.logger.With("method", "MakeTurn", "session_id", id)

	return that.update(ctx, id, func(session *game.Session) error {
		if err := session.SubmitMove(row, col); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if !session.IsComputerTurn() {
			return nil
		}

		move, err := session.RequestAIMove()
		if err != nil {
			return fmt.Errorf("failed to make computer turn: %w", err)
		}

		log.Debug("computer replied", "row", move.Row, "col", move.Col)

		return nil
	})
}

// RequestAIMove asks the computer for its move when it is O's turn in a
// single-player session.
func (that *SessionManager) RequestAIMove(ctx context.Context, id string) (*game.Snapshot, error) {
	return that.update(ctx, id, func(session *game.Session) error {
		if _, err := session.RequestAIMove(); err != nil {
			return fmt.Errorf("failed to make computer turn: %w", err)
		}

		return nil
	})
}

func (that *SessionManager) ResetRound(ctx context.Context, id string) (*game.Snapshot, error) {
	return that.update(ctx, id, func(session *game.Session) error {
		session.ResetRound()

		return nil
	})
}

func (that *SessionManager) ResetScores(ctx context.Context, id string) (*game.Snapshot, error) {
	return that.update(ctx, id, func(session *game.Session) error {
		session.ResetScores()

		return nil
	})
}

func (that *SessionManager) DeleteSession(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "session_id", id)

	return nil
}

// update stores the session only when apply succeeds.
func (that *SessionManager) update(ctx context.Context, id string, apply func(session *game.Session) error) (*game.Snapshot, error) {
	unlock := that.lock(id)
	defer unlock()

	stored, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session, err := game.Restore(*stored)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	if err = apply(session); err != nil {
		return nil, err
	}

	snapshot := session.Snapshot()
	if err = that.sessionRepo.CreateOrUpdate(ctx, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if session.IsRoundOver() && stored.State != entity.StateRoundOver {
		that.logger.Info("round finished", "session_id", id, "outcome", snapshot.Outcome,
			"player1_score", snapshot.Player1Score, "player2_score", snapshot.Player2Score)
	}

	return &snapshot, nil
}

func (that *SessionManager) lock(id string) func() {
	that.mu.Lock()
	entry, ok := that.locks[id]
	if !ok {
		entry = &sessionLock{}
		that.locks[id] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, id)
		}
		that.mu.Unlock()
	}
}
