package equity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/randutil"
)

func mustParse(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	require.NoError(t, err)
	return cards
}

// remainingAfter returns the 52-card universe minus the given cards
func remainingAfter(used ...[]deck.Card) []deck.Card {
	seen := make(map[deck.Card]bool)
	for _, group := range used {
		for _, c := range group {
			seen[c] = true
		}
	}
	var out []deck.Card
	for _, c := range deck.All() {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

func TestNoOpponentsAlwaysWins(t *testing.T) {
	hero := mustParse(t, "7h2c")
	got := EstimateWinProbability(hero, nil, nil, remainingAfter(hero), 100, randutil.New(1))
	assert.Equal(t, 1.0, got)

	// holds regardless of board or deck state
	got = EstimateWinProbability(hero, nil, mustParse(t, "AsKdQc"), nil, 100, randutil.New(1))
	assert.Equal(t, 1.0, got)
}

func TestShortDeckFallsBackToFairSplit(t *testing.T) {
	hero := mustParse(t, "AsAd")
	opponents := [][]deck.Card{mustParse(t, "2s2d"), mustParse(t, "KcKd"), mustParse(t, "QcQd")}
	board := mustParse(t, "9s8d7c")

	// two cards still needed but only one undealt
	undealt := mustParse(t, "3h")
	got := EstimateWinProbability(hero, opponents, board, undealt, 1000, randutil.New(1))
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestAcesVsDeucesHeadsUp(t *testing.T) {
	hero := mustParse(t, "AsAd")
	opponents := [][]deck.Card{mustParse(t, "2s2d")}
	undealt := remainingAfter(hero, opponents[0])

	got := EstimateWinProbability(hero, opponents, nil, undealt, 2000, randutil.New(42))
	// true equity is roughly 0.82-0.84 preflop
	assert.InDelta(t, 0.83, got, 0.05)

	villain := EstimateWinProbability(opponents[0], [][]deck.Card{hero}, nil, undealt, 2000, randutil.New(43))
	assert.InDelta(t, 0.17, villain, 0.05)
}

func TestDominatedHandOnCompleteBoard(t *testing.T) {
	// board plays out to a straight on board with no redraws: every
	// trial ties, so each player gets exactly half
	hero := mustParse(t, "2s2d")
	opponents := [][]deck.Card{mustParse(t, "3s3d")}
	board := mustParse(t, "9c8h7d6s5h")
	undealt := remainingAfter(hero, opponents[0], board)

	got := EstimateWinProbability(hero, opponents, board, undealt, 200, randutil.New(7))
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestEstimateDoesNotMutateInputs(t *testing.T) {
	hero := mustParse(t, "AsAd")
	opponents := [][]deck.Card{mustParse(t, "KsKd")}
	board := mustParse(t, "9s8d7c")
	undealt := remainingAfter(hero, opponents[0], board)

	heroCopy := append([]deck.Card(nil), hero...)
	boardCopy := append([]deck.Card(nil), board...)
	undealtCopy := append([]deck.Card(nil), undealt...)

	EstimateWinProbability(hero, opponents, board, undealt, 600, randutil.New(5))

	assert.Equal(t, heroCopy, hero)
	assert.Equal(t, boardCopy, board)
	assert.Equal(t, undealtCopy, undealt)
}

func TestEstimateIsWithinBounds(t *testing.T) {
	hero := mustParse(t, "7h2c")
	opponents := [][]deck.Card{mustParse(t, "AsAd"), mustParse(t, "KsKd")}
	undealt := remainingAfter(hero, opponents[0], opponents[1])

	got := EstimateWinProbability(hero, opponents, nil, undealt, 1500, randutil.New(9))
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
	assert.Less(t, got, 0.3, "72o against two overpairs should rarely win")
}

func TestParallelMatchesSequentialWithinTolerance(t *testing.T) {
	hero := mustParse(t, "AhKh")
	opponents := [][]deck.Card{mustParse(t, "QsQd")}
	undealt := remainingAfter(hero, opponents[0])

	seq := estimateSequential(hero, opponents, nil, undealt, 3000, randutil.New(11))
	par := estimateParallel(hero, opponents, nil, undealt, 3000, randutil.New(12))
	assert.InDelta(t, seq, par, 0.05)
}

func TestEstimateAll(t *testing.T) {
	holes := [][]deck.Card{
		mustParse(t, "AsAd"),
		nil, // folded seat
		mustParse(t, "2s2d"),
	}
	undealt := remainingAfter(holes[0], holes[2])

	probs := EstimateAll(holes, nil, undealt, 1000, randutil.New(21))
	require.Len(t, probs, 3)
	assert.Equal(t, 0.0, probs[1], "folded seat is never simulated")
	assert.Greater(t, probs[0], probs[2])
	assert.InDelta(t, 1.0, probs[0]+probs[2], 0.1, "heads-up equities roughly complement")
}

func TestEstimateAllSingleLivePlayer(t *testing.T) {
	holes := [][]deck.Card{mustParse(t, "AsAd"), nil}
	probs := EstimateAll(holes, nil, remainingAfter(holes[0]), 500, randutil.New(3))
	assert.Equal(t, []float64{1.0, 0.0}, probs)
}

func TestDefaultTrials(t *testing.T) {
	hero := mustParse(t, "AsAd")
	opponents := [][]deck.Card{mustParse(t, "2s2d")}
	undealt := remainingAfter(hero, opponents[0])

	// trials <= 0 falls back to the default rather than failing
	got := EstimateWinProbability(hero, opponents, nil, undealt, 0, randutil.New(13))
	assert.InDelta(t, 0.83, got, 0.06)
}
