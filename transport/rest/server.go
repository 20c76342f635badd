package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

const shutdownTimeout = 5 * time.Second

type sessionManager interface {
	CreateSession(ctx context.Context, mode entity.Mode, difficulty entity.Difficulty) (*game.Snapshot, error)
	GetSession(ctx context.Context, id string) (*game.Snapshot, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*game.Snapshot, error)
	RequestAIMove(ctx context.Context, id string) (*game.Snapshot, error)
	ResetRound(ctx context.Context, id string) (*game.Snapshot, error)
	ResetScores(ctx context.Context, id string) (*game.Snapshot, error)
	DeleteSession(ctx context.Context, id string) error
}

// NewRouter builds the gin engine with the ping and session routes.
func NewRouter(logger *slog.Logger, manager sessionManager) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	handlers := newSessionHandlers(logger, manager)

	router.GET("/ping", pingHandler)

	sessions := router.Group("/sessions")
	sessions.POST("", handlers.create)
	sessions.GET("/:id", handlers.get)
	sessions.DELETE("/:id", handlers.delete)
	sessions.POST("/:id/moves", handlers.makeTurn)
	sessions.POST("/:id/ai-move", handlers.requestAIMove)
	sessions.POST("/:id/round/reset", handlers.resetRound)
	sessions.POST("/:id/scores/reset", handlers.resetScores)

	return router
}

// Start serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func pingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info("request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
