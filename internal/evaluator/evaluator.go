package evaluator

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/lox/holdem-table/internal/deck"
)

// Category represents the class of a 5-card poker hand, ordered from
// weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a description of the hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Hand is the evaluation of a 5-card hand: a category plus the ordered
// tie-break values that decide between hands of the same category.
// Hands are totally ordered by Compare; that order is the only
// comparison used for showdown and equity tallying.
type Hand struct {
	Category  Category
	TieBreaks []int
}

// String returns a readable form like "Full House [14 11]"
func (h Hand) String() string {
	parts := make([]string, len(h.TieBreaks))
	for i, v := range h.TieBreaks {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(parts, " "))
}

// Compare returns 1 if h beats other, -1 if other beats h, 0 on a tie.
// Category decides first; equal categories fall back to lexicographic
// comparison of the tie-break sequences.
func (h Hand) Compare(other Hand) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(h.TieBreaks) && i < len(other.TieBreaks); i++ {
		if h.TieBreaks[i] != other.TieBreaks[i] {
			if h.TieBreaks[i] > other.TieBreaks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Equal reports whether two hands tie exactly
func (h Hand) Equal(other Hand) bool {
	return h.Compare(other) == 0
}

// Evaluate classifies exactly 5 cards. Calling it with any other card
// count is a programming error and panics.
func Evaluate(cards []deck.Card) Hand {
	if len(cards) != 5 {
		panic(fmt.Sprintf("evaluator: Evaluate requires exactly 5 cards, got %d", len(cards)))
	}

	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straight, straightValues := detectStraight(values)

	// Frequency entries sorted by (count desc, value desc) give the
	// deterministic primary/secondary pair used for classification.
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	type freq struct{ value, count int }
	freqs := make([]freq, 0, len(counts))
	for v, n := range counts {
		freqs = append(freqs, freq{value: v, count: n})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].count != freqs[j].count {
			return freqs[i].count > freqs[j].count
		}
		return freqs[i].value > freqs[j].value
	})

	freqValues := make([]int, len(freqs))
	for i, f := range freqs {
		freqValues[i] = f.value
	}

	switch {
	case straight && flush:
		return Hand{Category: StraightFlush, TieBreaks: straightValues}
	case freqs[0].count == 4:
		return Hand{Category: FourOfAKind, TieBreaks: freqValues}
	case freqs[0].count == 3 && freqs[1].count == 2:
		return Hand{Category: FullHouse, TieBreaks: freqValues}
	case flush:
		return Hand{Category: Flush, TieBreaks: freqValues}
	case straight:
		return Hand{Category: Straight, TieBreaks: straightValues}
	case freqs[0].count == 3:
		return Hand{Category: ThreeOfAKind, TieBreaks: freqValues}
	case freqs[0].count == 2 && freqs[1].count == 2:
		return Hand{Category: TwoPair, TieBreaks: freqValues}
	case freqs[0].count == 2:
		return Hand{Category: Pair, TieBreaks: freqValues}
	default:
		return Hand{Category: HighCard, TieBreaks: freqValues}
	}
}

// detectStraight reports whether the descending values form a straight
// and returns the tie-break sequence. The wheel A-5-4-3-2 counts as a
// straight with its ace demoted, so it ranks below a 6-high straight.
func detectStraight(values []int) (bool, []int) {
	consecutive := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]-1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		out := make([]int, len(values))
		copy(out, values)
		return true, out
	}

	// Wheel: {14,5,4,3,2} rewritten to {5,4,3,2,1}
	if values[0] == 14 && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
		return true, []int{5, 4, 3, 2, 1}
	}

	return false, nil
}

// EvaluateBest selects the strongest 5-card hand from 5 or more cards
// by enumerating every 5-card subset with a bitmask. Fewer than 5
// cards is a programming error and panics.
func EvaluateBest(cards []deck.Card) Hand {
	n := len(cards)
	if n < 5 {
		panic(fmt.Sprintf("evaluator: EvaluateBest requires at least 5 cards, got %d", n))
	}
	if n == 5 {
		return Evaluate(cards)
	}

	var best Hand
	first := true
	subset := make([]deck.Card, 5)

	for mask := 0; mask < 1<<n; mask++ {
		if bits.OnesCount(uint(mask)) != 5 {
			continue
		}
		k := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset[k] = cards[i]
				k++
			}
		}
		hand := Evaluate(subset)
		if first || hand.Compare(best) > 0 {
			best = hand
			first = false
		}
	}

	return best
}
