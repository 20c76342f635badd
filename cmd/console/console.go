package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/game"
)

const (
	colorX    = "#E06C75"
	colorO    = "#61AFEF"
	colorHint = "#5C6370"
)

var errQuit = errors.New("quit")

// console plays one local session over a line-based terminal dialogue.
type console struct {
	logger  *slog.Logger
	output  *termenv.Output
	session *game.Session
}

func newConsole(logger *slog.Logger, output *termenv.Output, session *game.Session) *console {
	return &console{
		logger:  logger.With("component", "console"),
		output:  output,
		session: session,
	}
}

// run reads commands until quit or end of input.
func (that *console) run(input io.Reader) error {
	that.render()

	scanner := bufio.NewScanner(input)
	for {
		that.printf("%s ", that.output.String(that.prompt()).Bold())

		if !scanner.Scan() {
			break
		}

		if err := that.execute(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}

			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *console) execute(line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return errQuit
	case "reset":
		that.session.ResetRound()
	case "scores":
		that.printf("%s\n", that.scoreLine())
		return nil
	case "reset-scores":
		that.session.ResetScores()
	case "help":
		that.printHelp()
		return nil
	default:
		row, col, err := parseCell(fields)
		if err != nil {
			that.printf("%s\n", err)
			return nil
		}

		that.play(row, col)
	}

	that.render()

	return nil
}

func (that *console) play(row, col int) {
	err := that.session.SubmitMove(row, col)
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		// tapping a taken cell does nothing
		return
	case err != nil:
		that.printf("%s\n", err)
		return
	}

	if !that.session.IsComputerTurn() {
		return
	}

	move, err := that.session.RequestAIMove()
	if err != nil {
		that.logger.Error("computer failed to move", "error", err)
		return
	}

	that.logger.Debug("computer moved", "row", move.Row, "col", move.Col)
}

func (that *console) render() {
	board := that.session.Board()

	that.printf("\n")
	for row := range entity.BoardSize {
		cells := make([]string, 0, entity.BoardSize)
		for col := range entity.BoardSize {
			cells = append(cells, that.cell(board.Cells[row][col], row, col))
		}

		that.printf(" %s\n", strings.Join(cells, " | "))
		if row < entity.BoardSize-1 {
			that.printf("---+---+---\n")
		}
	}

	that.printf("\n%s\n", that.scoreLine())

	if that.session.IsRoundOver() {
		that.printf("%s\n", that.output.String(verdict(that.session.Outcome(), that.session.Mode())).Bold())
		that.printf("%s\n", that.output.String("type reset for a new round").Foreground(that.output.Color(colorHint)))
	}
}

func (that *console) cell(mark entity.Mark, row, col int) string {
	switch mark {
	case entity.PlayerX:
		return that.output.String("X").Foreground(that.output.Color(colorX)).Bold().String()
	case entity.PlayerO:
		return that.output.String("O").Foreground(that.output.Color(colorO)).Bold().String()
	default:
		return that.output.String(strconv.Itoa(row*entity.BoardSize + col + 1)).Foreground(that.output.Color(colorHint)).String()
	}
}

func (that *console) scoreLine() string {
	player1, player2 := "Player 1 (X)", "Player 2 (O)"
	if that.session.Mode() == entity.ModeSinglePlayer {
		player1, player2 = "You (X)", fmt.Sprintf("Computer (O, %s)", that.session.Difficulty())
	}

	return fmt.Sprintf("%s %d : %d %s", player1, that.session.Player1Score(), that.session.Player2Score(), player2)
}

func (that *console) prompt() string {
	if that.session.IsRoundOver() {
		return ">"
	}

	return fmt.Sprintf("%s>", that.session.CurrentMark())
}

func (that *console) printHelp() {
	that.printf("  <row> <col>   play a cell, rows and columns are 0-2\n")
	that.printf("  <1-9>         play a cell by its number\n")
	that.printf("  reset         start a new round\n")
	that.printf("  scores        show the scores\n")
	that.printf("  reset-scores  set both scores to zero\n")
	that.printf("  quit          leave\n")
}

func (that *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.output, format, args...)
}

// parseCell accepts "row col" or a single cell number from 1 to 9.
func parseCell(fields []string) (int, int, error) {
	switch len(fields) {
	case 1:
		number, err := strconv.Atoi(fields[0])
		if err != nil || number < 1 || number > entity.CellCount {
			return 0, 0, fmt.Errorf("unknown command %q, type help", fields[0])
		}

		return (number - 1) / entity.BoardSize, (number - 1) % entity.BoardSize, nil
	case 2:
		row, rowErr := strconv.Atoi(fields[0])
		col, colErr := strconv.Atoi(fields[1])
		if rowErr != nil || colErr != nil {
			return 0, 0, fmt.Errorf("expected two numbers, got %q", strings.Join(fields, " "))
		}

		return row, col, nil
	default:
		return 0, 0, fmt.Errorf("unknown command %q, type help", strings.Join(fields, " "))
	}
}

func verdict(outcome entity.Outcome, mode entity.Mode) string {
	switch {
	case outcome == entity.OutcomeDraw:
		return "It's a draw!"
	case mode == entity.ModeSinglePlayer && outcome == entity.OutcomeXWins:
		return "You win!"
	case mode == entity.ModeSinglePlayer:
		return "The computer wins!"
	case outcome == entity.OutcomeXWins:
		return "Player 1 wins!"
	default:
		return "Player 2 wins!"
	}
}
