package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, snapshot *game.Snapshot) error {
	args := that.Called(ctx, snapshot)

	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (*game.Snapshot, error) {
	args := that.Called(ctx, id)

	snapshot, _ := args.Get(0).(*game.Snapshot)

	return snapshot, args.Error(1)
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)

	return args.Error(0)
}

// memorySessionRepo keeps snapshots in a map for tests that run many calls.
type memorySessionRepo struct {
	mu        sync.Mutex
	snapshots map[string]game.Snapshot
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{snapshots: make(map[string]game.Snapshot)}
}

func (that *memorySessionRepo) CreateOrUpdate(_ context.Context, snapshot *game.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snapshots[snapshot.ID] = *snapshot

	return nil
}

func (that *memorySessionRepo) GetByID(_ context.Context, id string) (*game.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot, ok := that.snapshots[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	return &snapshot, nil
}

func (that *memorySessionRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.snapshots[id]; !ok {
		return repository.ErrSessionNotFound
	}

	delete(that.snapshots, id)

	return nil
}
