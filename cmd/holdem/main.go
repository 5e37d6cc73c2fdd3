package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/randutil"
	"github.com/lox/holdem-table/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Seats  int    `short:"s" help:"Number of seats at the table (2-8)" default:"4"`
	Chips  int    `short:"c" help:"Starting chip stack" default:"1000"`
	Trials int    `short:"t" help:"Monte Carlo trials per equity refresh" default:"1000"`
	Seed   *int64 `help:"Random seed for reproducible deals"`
	Debug  bool   `short:"d" help:"Write debug logging to holdem.log"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	var seed int64
	if cli.Seed != nil {
		seed = *cli.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.ErrorLevel)
	if cli.Debug {
		debugFile, err := os.OpenFile("holdem.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
		if err != nil {
			log.Fatal("Failed to create debug log", "error", err)
		}
		defer debugFile.Close()
		logger = log.NewWithOptions(debugFile, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Level:           log.DebugLevel,
		})
	}

	session, err := game.NewSession(game.Config{
		Seats:         cli.Seats,
		Mode:          "solo",
		StartingChips: cli.Chips,
		Trials:        cli.Trials,
		Rng:           randutil.New(seed),
		Logger:        logger,
	})
	if err != nil {
		log.Fatal("Failed to create table", "error", err)
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))

	program := tea.NewProgram(tui.NewModel(session, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatal("TUI error", "error", err)
	}

	ctx.Exit(0)
}
