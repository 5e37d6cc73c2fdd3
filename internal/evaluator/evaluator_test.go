package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/deck"
)

func mustParse(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	require.NoError(t, err)
	return cards
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name      string
		cards     string
		category  Category
		tieBreaks []int
	}{
		{"high card", "AsKd9c5h2s", HighCard, []int{14, 13, 9, 5, 2}},
		{"pair", "AsAd9c5h2s", Pair, []int{14, 9, 5, 2}},
		{"two pair", "AsAd9c9h2s", TwoPair, []int{14, 9, 2}},
		{"three of a kind", "AsAdAc5h2s", ThreeOfAKind, []int{14, 5, 2}},
		{"straight", "9s8d7c6h5s", Straight, []int{9, 8, 7, 6, 5}},
		{"broadway straight", "AsKdQcJhTs", Straight, []int{14, 13, 12, 11, 10}},
		{"flush", "AsKs9s5s2s", Flush, []int{14, 13, 9, 5, 2}},
		{"full house", "AsAdAcKhKs", FullHouse, []int{14, 13}},
		{"four of a kind", "AsAdAcAh2s", FourOfAKind, []int{14, 2}},
		{"straight flush", "9s8s7s6s5s", StraightFlush, []int{9, 8, 7, 6, 5}},
		{"royal flush", "AsKsQsJsTs", StraightFlush, []int{14, 13, 12, 11, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := Evaluate(mustParse(t, tt.cards))
			assert.Equal(t, tt.category, hand.Category)
			assert.Equal(t, tt.tieBreaks, hand.TieBreaks)
		})
	}
}

func TestWheelStraight(t *testing.T) {
	wheel := Evaluate(mustParse(t, "As5d4c3h2s"))
	assert.Equal(t, Straight, wheel.Category)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, wheel.TieBreaks)

	sixHigh := Evaluate(mustParse(t, "6s5d4c3h2c"))
	assert.Equal(t, Straight, sixHigh.Category)
	assert.Equal(t, 1, sixHigh.Compare(wheel), "6-high straight must beat the wheel")
}

func TestWheelStraightFlush(t *testing.T) {
	hand := Evaluate(mustParse(t, "Ah5h4h3h2h"))
	assert.Equal(t, StraightFlush, hand.Category)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, hand.TieBreaks)
}

func TestAceHighFlushIsNotStraight(t *testing.T) {
	// A-5-4-3-2 of one suit plus a distant card must not register as
	// anything but flush or high card
	hand := Evaluate(mustParse(t, "Ah5h4h3hTh"))
	assert.Equal(t, Flush, hand.Category)
}

func TestEvaluatePermutationInvariance(t *testing.T) {
	cards := mustParse(t, "AsAd9c9h2s")
	want := Evaluate(cards)

	perms := [][]int{
		{0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}, {2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2}, {3, 2, 1, 4, 0},
	}
	for _, perm := range perms {
		shuffled := make([]deck.Card, 5)
		for i, j := range perm {
			shuffled[i] = cards[j]
		}
		got := Evaluate(shuffled)
		assert.Equal(t, want, got)
	}
}

func TestCategoryOrdering(t *testing.T) {
	hands := []Hand{
		Evaluate(mustParse(t, "AsKd9c5h2s")), // high card
		Evaluate(mustParse(t, "AsAd9c5h2s")), // pair
		Evaluate(mustParse(t, "AsAd9c9h2s")), // two pair
		Evaluate(mustParse(t, "AsAdAc5h2s")), // trips
		Evaluate(mustParse(t, "9s8d7c6h5s")), // straight
		Evaluate(mustParse(t, "As2s5s9sKs")), // flush
		Evaluate(mustParse(t, "AsAdAcKhKs")), // full house
		Evaluate(mustParse(t, "AsAdAcAh2s")), // quads
		Evaluate(mustParse(t, "9s8s7s6s5s")), // straight flush
	}

	for i := 0; i < len(hands); i++ {
		for j := i + 1; j < len(hands); j++ {
			assert.Equal(t, 1, hands[j].Compare(hands[i]),
				"%s should beat %s", hands[j], hands[i])
			assert.Equal(t, -1, hands[i].Compare(hands[j]))
		}
	}
}

func TestCompareTieBreaks(t *testing.T) {
	aceKicker := Evaluate(mustParse(t, "QsQdAc5h2s"))
	jackKicker := Evaluate(mustParse(t, "QhQcJd5c2d"))
	assert.Equal(t, 1, aceKicker.Compare(jackKicker))

	tie := Evaluate(mustParse(t, "QhQcAd5c2d"))
	assert.True(t, aceKicker.Equal(tie))
}

func TestEvaluateBestSevenCards(t *testing.T) {
	// hole cards complete a flush hidden in seven cards
	cards := mustParse(t, "AsKs2s5s9sQdJc")
	best := EvaluateBest(cards)
	assert.Equal(t, Flush, best.Category)
	assert.Equal(t, []int{14, 13, 9, 5, 2}, best.TieBreaks)
}

func TestEvaluateBestDominatesSubsets(t *testing.T) {
	cards := mustParse(t, "AsAd9c9h2sKdKc")
	best := EvaluateBest(cards)

	foundEqual := false
	subset := make([]deck.Card, 5)
	for mask := 0; mask < 1<<7; mask++ {
		n := 0
		for i := 0; i < 7; i++ {
			if mask&(1<<i) != 0 {
				n++
			}
		}
		if n != 5 {
			continue
		}
		k := 0
		for i := 0; i < 7; i++ {
			if mask&(1<<i) != 0 {
				subset[k] = cards[i]
				k++
			}
		}
		hand := Evaluate(subset)
		cmp := best.Compare(hand)
		require.GreaterOrEqual(t, cmp, 0, "best hand must not lose to a subset")
		if cmp == 0 {
			foundEqual = true
		}
	}
	assert.True(t, foundEqual, "best hand must equal at least one subset")
}

func TestEvaluateBestSixCards(t *testing.T) {
	best := EvaluateBest(mustParse(t, "9s8d7c6h5s5d"))
	assert.Equal(t, Straight, best.Category)
}

func TestEvaluatePanicsOnWrongCount(t *testing.T) {
	assert.Panics(t, func() { Evaluate(mustParse(t, "AsKd")) })
	assert.Panics(t, func() { Evaluate(mustParse(t, "AsKdQcJh9s2d")) })
	assert.Panics(t, func() { EvaluateBest(mustParse(t, "AsKdQcJh")) })
}

func TestHandString(t *testing.T) {
	hand := Evaluate(mustParse(t, "AsAdAcKhKs"))
	assert.Equal(t, "Full House [14 13]", hand.String())
}
