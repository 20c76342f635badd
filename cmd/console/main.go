package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

func main() {
	app := &cli.App{
		Name:  "tictactoe",
		Usage: "play tic-tac-toe against a friend or the computer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Value:   string(entity.ModeSinglePlayer),
				Usage:   "single or two",
				EnvVars: []string{"GAME_MODE"},
			},
			&cli.StringFlag{
				Name:    "difficulty",
				Aliases: []string{"d"},
				Value:   string(entity.DifficultyHard),
				Usage:   "easy or hard, single-player only",
				EnvVars: []string{"GAME_DIFFICULTY"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: play,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func play(c *cli.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLogLevel(c.String("log-level"))}))

	mode, err := entity.ParseMode(c.String("mode"))
	if err != nil {
		return cli.Exit(err, 2)
	}

	difficulty, err := entity.ParseDifficulty(c.String("difficulty"))
	if err != nil && mode == entity.ModeSinglePlayer {
		return cli.Exit(err, 2)
	}

	session, err := game.NewSession(uuid.NewString(), mode, difficulty)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	output := termenv.NewOutput(os.Stdout)

	return newConsole(logger, output, session).run(os.Stdin)
}
