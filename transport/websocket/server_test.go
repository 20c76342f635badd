package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/boardtest"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

type mockSessionManager struct {
	mock.Mock
}

func (that *mockSessionManager) snapshot(args mock.Arguments) (*game.Snapshot, error) {
	snapshot, _ := args.Get(0).(*game.Snapshot)

	return snapshot, args.Error(1)
}

func (that *mockSessionManager) CreateSession(ctx context.Context, mode entity.Mode, difficulty entity.Difficulty) (*game.Snapshot, error) {
	return that.snapshot(that.Called(ctx, mode, difficulty))
}

func (that *mockSessionManager) GetSession(ctx context.Context, id string) (*game.Snapshot, error) {
	return that.snapshot(that.Called(ctx, id))
}

func (that *mockSessionManager) MakeTurn(ctx context.Context, id string, row, col int) (*game.Snapshot, error) {
	return that.snapshot(that.Called(ctx, id, row, col))
}

func (that *mockSessionManager) RequestAIMove(ctx context.Context, id string) (*game.Snapshot, error) {
	return that.snapshot(that.Called(ctx, id))
}

func (that *mockSessionManager) ResetRound(ctx context.Context, id string) (*game.Snapshot, error) {
	return that.snapshot(that.Called(ctx, id))
}

func (that *mockSessionManager) ResetScores(ctx context.Context, id string) (*game.Snapshot, error) {
	return that.snapshot(that.Called(ctx, id))
}

func newTestServer(manager sessionManager) *Server {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), manager)
}

func testSnapshot(t *testing.T) *game.Snapshot {
	t.Helper()

	return &game.Snapshot{
		ID:          "session-1",
		Mode:        entity.ModeTwoPlayer,
		Board:       *boardtest.MustParse(t, ".../.X./..."),
		TurnCount:   1,
		CurrentMark: entity.PlayerO,
		State:       entity.StateAwaitingMove,
	}
}

func message(action, payload string) *Message {
	return &Message{Action: action, Payload: json.RawMessage(payload)}
}

func TestServer_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("game:turn returns the new state", func(t *testing.T) {
		// Given: a manager accepting the move
		manager := &mockSessionManager{}
		manager.On("MakeTurn", mock.Anything, "session-1", 1, 1).Return(testSnapshot(t), nil).Once()

		// When: a game:turn message is dispatched
		response := newTestServer(manager).dispatch(ctx, message(actionGameTurn, `{"session_id":"session-1","row":1,"col":1}`))

		// Then: the session is sent back
		assert.Empty(t, response.Error)
		assert.Equal(t, testSnapshot(t), response.Session)
		manager.AssertExpectations(t)
	})

	t.Run("Occupied cell resends the state without error", func(t *testing.T) {
		// Given: the cell is already taken
		manager := &mockSessionManager{}
		manager.On("MakeTurn", mock.Anything, "session-1", 1, 1).
			Return(nil, fmt.Errorf("failed to make turn: %w", apperror.ErrCellOccupied)).Once()
		manager.On("GetSession", mock.Anything, "session-1").Return(testSnapshot(t), nil).Once()

		// When: the move is dispatched
		response := newTestServer(manager).dispatch(ctx, message(actionGameTurn, `{"session_id":"session-1","row":1,"col":1}`))

		// Then: the unchanged state comes back as a normal reply
		assert.Empty(t, response.Error)
		assert.Equal(t, testSnapshot(t), response.Session)
		manager.AssertExpectations(t)
	})

	t.Run("Computer move out of turn resends the state", func(t *testing.T) {
		manager := &mockSessionManager{}
		manager.On("RequestAIMove", mock.Anything, "session-1").Return(nil, apperror.ErrInvalidAITurn).Once()
		manager.On("GetSession", mock.Anything, "session-1").Return(testSnapshot(t), nil).Once()

		response := newTestServer(manager).dispatch(ctx, message(actionGameAI, `{"session_id":"session-1"}`))

		assert.Empty(t, response.Error)
		assert.NotNil(t, response.Session)
	})

	t.Run("Round over is reported", func(t *testing.T) {
		manager := &mockSessionManager{}
		manager.On("MakeTurn", mock.Anything, "session-1", 0, 0).Return(nil, apperror.ErrRoundAlreadyOver).Once()

		response := newTestServer(manager).dispatch(ctx, message(actionGameTurn, `{"session_id":"session-1","row":0,"col":0}`))

		assert.Equal(t, apperror.ErrRoundAlreadyOver.Error(), response.Error)
		assert.Nil(t, response.Session)
	})

	t.Run("Missing coordinates are reported", func(t *testing.T) {
		manager := &mockSessionManager{}

		response := newTestServer(manager).dispatch(ctx, message(actionGameTurn, `{"session_id":"session-1","row":0}`))

		assert.Contains(t, response.Error, "row and col are required")
		manager.AssertNotCalled(t, "MakeTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing session id is reported", func(t *testing.T) {
		response := newTestServer(&mockSessionManager{}).dispatch(ctx, message(actionRoundReset, `{}`))

		assert.Equal(t, errMissingSessionID.Error(), response.Error)
	})

	t.Run("Unknown action is reported", func(t *testing.T) {
		response := newTestServer(&mockSessionManager{}).dispatch(ctx, message("game:leave", ""))

		assert.Equal(t, "unknown action", response.Error)
	})

	t.Run("Malformed payload is reported", func(t *testing.T) {
		response := newTestServer(&mockSessionManager{}).dispatch(ctx, message(actionSessionGet, `"session-1"`))

		assert.Equal(t, "malformed payload", response.Error)
	})
}

func TestServer_Handle(t *testing.T) {
	// Given: a websocket endpoint backed by a manager with one session
	manager := &mockSessionManager{}
	manager.On("CreateSession", mock.Anything, entity.ModeTwoPlayer, entity.Difficulty("")).Return(testSnapshot(t), nil).Once()
	manager.On("ResetScores", mock.Anything, "session-1").Return(testSnapshot(t), nil).Once()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", newTestServer(manager).Handle)

	httpServer := httptest.NewServer(router)
	defer httpServer.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(httpServer.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	exchange := func(request string) (Message, ResponsePayload) {
		t.Helper()

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(request)))

		var response Message
		require.NoError(t, conn.ReadJSON(&response))

		var payload ResponsePayload
		require.NoError(t, json.Unmarshal(response.Payload, &payload))

		return response, payload
	}

	// When: the client creates a session
	response, payload := exchange(`{"action":"session:new","payload":{"mode":"two"}}`)

	// Then: the reply carries the action and the session
	assert.Equal(t, actionSessionNew, response.Action)
	assert.Equal(t, testSnapshot(t), payload.Session)

	// When: the client sends garbage
	response, payload = exchange(`not json`)

	// Then: it gets an error and the connection stays usable
	assert.Equal(t, actionError, response.Action)
	assert.Equal(t, "malformed message", payload.Error)

	response, payload = exchange(`{"action":"scores:reset","payload":{"session_id":"session-1"}}`)
	assert.Equal(t, actionScoresReset, response.Action)
	assert.Empty(t, payload.Error)

	manager.AssertExpectations(t)
}
