package rest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

type createSessionRequest struct {
	Mode       entity.Mode       `json:"mode"`
	Difficulty entity.Difficulty `json:"difficulty"`
}

type turnRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type sessionHandlers struct {
	logger  *slog.Logger
	manager sessionManager
}

func newSessionHandlers(logger *slog.Logger, manager sessionManager) *sessionHandlers {
	return &sessionHandlers{
		logger:  logger.With("component", "rest"),
		manager: manager,
	}
}

func (that *sessionHandlers) create(c *gin.Context) {
	var request createSessionRequest
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	snapshot, err := that.manager.CreateSession(c.Request.Context(), request.Mode, request.Difficulty)
	that.respond(c, http.StatusCreated, snapshot, err)
}

func (that *sessionHandlers) get(c *gin.Context) {
	snapshot, err := that.manager.GetSession(c.Request.Context(), c.Param("id"))
	that.respond(c, http.StatusOK, snapshot, err)
}

func (that *sessionHandlers) delete(c *gin.Context) {
	if err := that.manager.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		that.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (that *sessionHandlers) makeTurn(c *gin.Context) {
	var request turnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	snapshot, err := that.manager.MakeTurn(c.Request.Context(), c.Param("id"), *request.Row, *request.Col)
	that.respond(c, http.StatusOK, snapshot, err)
}

func (that *sessionHandlers) requestAIMove(c *gin.Context) {
	snapshot, err := that.manager.RequestAIMove(c.Request.Context(), c.Param("id"))
	that.respond(c, http.StatusOK, snapshot, err)
}

func (that *sessionHandlers) resetRound(c *gin.Context) {
	snapshot, err := that.manager.ResetRound(c.Request.Context(), c.Param("id"))
	that.respond(c, http.StatusOK, snapshot, err)
}

func (that *sessionHandlers) resetScores(c *gin.Context) {
	snapshot, err := that.manager.ResetScores(c.Request.Context(), c.Param("id"))
	that.respond(c, http.StatusOK, snapshot, err)
}

func (that *sessionHandlers) respond(c *gin.Context, status int, snapshot *game.Snapshot, err error) {
	if err != nil {
		that.respondError(c, err)
		return
	}

	c.JSON(status, snapshot)
}

func (that *sessionHandlers) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", c.FullPath(), "session_id", c.Param("id"), "error", err)
		c.JSON(status, errorResponse{Error: http.StatusText(status)})

		return
	}

	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidSnapshot):
		return http.StatusInternalServerError
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCoordinate),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, entity.ErrUnknownMode),
		errors.Is(err, entity.ErrUnknownDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrRoundAlreadyOver),
		errors.Is(err, apperror.ErrInvalidAITurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
