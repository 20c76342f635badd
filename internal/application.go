package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defaults, err := sessionDefaults(conf.Game)
	if err != nil {
		return fmt.Errorf("invalid game settings: %w", err)
	}

	redisAddr := conf.Redis.GetRedisAddr()
	if redisAddr == "" {
		return ErrAddrNotFound
	}

	redisClient, err := storage.NewRedis(ctx, storage.RedisOptions{
		Addr:     redisAddr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sessionRepo := repository.NewSessionRepository(redisClient, conf.SessionTTL)
	sessionManager := usecase.NewSessionManager(logger, sessionRepo, defaults)

	router := rest.NewRouter(logger, sessionManager)
	router.GET("/ws", websocket.New(logger, sessionManager).Handle)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func sessionDefaults(settings config.Game) (usecase.Defaults, error) {
	mode, err := entity.ParseMode(settings.Mode)
	if err != nil {
		return usecase.Defaults{}, err
	}

	difficulty, err := entity.ParseDifficulty(settings.Difficulty)
	if err != nil {
		return usecase.Defaults{}, err
	}

	return usecase.Defaults{Mode: mode, Difficulty: difficulty}, nil
}
