package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/equity"
	"github.com/lox/holdem-table/internal/randutil"
)

type CLI struct {
	Hands  []string `arg:"" help:"Player hands in format 'AcKd' (space separated)" required:"true"`
	Board  string   `short:"b" help:"Community board cards (e.g. 'Td7s8h')"`
	Trials int      `short:"t" help:"Number of Monte Carlo trials" default:"100000"`
	Seed   *int64   `help:"Random seed for reproducible results"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	lipgloss.SetColorProfile(termenv.ColorProfile())

	var seed int64
	if cli.Seed != nil {
		seed = *cli.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	hands, err := parseHands(cli.Hands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			ctx.Exit(1)
		}
		if len(board) > 5 {
			fmt.Fprintf(os.Stderr, "Board cannot have more than 5 cards\n")
			ctx.Exit(1)
		}
	}

	if err := validateNoDuplicates(hands, board); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}

	undealt := remainingCards(hands, board)

	start := time.Now()
	probs := equity.EstimateAll(hands, board, undealt, cli.Trials, rng)
	duration := time.Since(start)

	displayResults(hands, board, probs, cli.Trials, duration)
}

func parseHands(handStrings []string) ([][]deck.Card, error) {
	var hands [][]deck.Card
	for i, handStr := range handStrings {
		hand, err := deck.ParseCards(strings.ReplaceAll(strings.TrimSpace(handStr), " ", ""))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %v", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func validateNoDuplicates(hands [][]deck.Card, board []deck.Card) error {
	seen := make(map[deck.Card]bool)
	for _, card := range board {
		if seen[card] {
			return fmt.Errorf("duplicate card found: %s", card)
		}
		seen[card] = true
	}
	for i, hand := range hands {
		for _, card := range hand {
			if seen[card] {
				return fmt.Errorf("duplicate card found in hand %d: %s", i+1, card)
			}
			seen[card] = true
		}
	}
	return nil
}

// remainingCards returns the full deck minus every known card
func remainingCards(hands [][]deck.Card, board []deck.Card) []deck.Card {
	used := make(map[deck.Card]bool)
	for _, hand := range hands {
		for _, card := range hand {
			used[card] = true
		}
	}
	for _, card := range board {
		used[card] = true
	}

	var remaining []deck.Card
	for _, card := range deck.All() {
		if !used[card] {
			remaining = append(remaining, card)
		}
	}
	return remaining
}

func displayResults(hands [][]deck.Card, board []deck.Card, probs []float64, trials int, duration time.Duration) {
	fmt.Println(headerStyle.Render("Texas Hold'em Equity"))
	if len(board) > 0 {
		fmt.Printf("Board: %s\n", formatCards(board))
	}
	fmt.Printf("%d trials in %s\n\n", trials, duration.Round(time.Millisecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "HAND\tEQUITY")
	for i, hand := range hands {
		fmt.Fprintf(w, "%s\t%s\n",
			handStyle.Render(formatCards(hand)),
			winStyle.Render(fmt.Sprintf("%.2f%%", probs[i]*100)))
	}
	_ = w.Flush()
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
