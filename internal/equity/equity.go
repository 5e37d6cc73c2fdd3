package equity

import (
	"context"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
	"github.com/lox/holdem-table/internal/randutil"
)

// DefaultTrials is the number of Monte Carlo trials used when the
// caller does not specify one.
const DefaultTrials = 1000

// parallelThreshold is the trial count above which the work is split
// across workers; below it the goroutine overhead isn't worth it.
const parallelThreshold = 500

// EstimateWinProbability estimates the hero's probability of winning
// the pot given every opponent's known hole cards, the partial board
// and the undealt remainder of the deck.
//
// Edge cases take priority over simulation: with no opponents the hero
// always wins (1.0); when the undealt cards cannot complete a 5-card
// board the estimate falls back to the uninformed split 1/(k+1).
// Otherwise the result is the mean per-trial equity, where a trial
// awards 1 for a unique best hand, 1/tieCount for a tied best hand and
// 0 otherwise. None of the inputs are mutated.
func EstimateWinProbability(hero []deck.Card, opponents [][]deck.Card, board []deck.Card, undealt []deck.Card, trials int, rng *rand.Rand) float64 {
	if len(opponents) == 0 {
		return 1.0
	}
	if len(undealt) < cardsNeeded(board) {
		return 1.0 / float64(len(opponents)+1)
	}
	if trials <= 0 {
		trials = DefaultTrials
	}

	if trials >= parallelThreshold {
		return estimateParallel(hero, opponents, board, undealt, trials, rng)
	}
	return estimateSequential(hero, opponents, board, undealt, trials, rng)
}

// EstimateAll refreshes the win probability of every seat. holes[i] is
// seat i's hole cards; a seat with anything other than 2 hole cards is
// out of the hand and gets probability 0.0 rather than a simulation.
func EstimateAll(holes [][]deck.Card, board []deck.Card, undealt []deck.Card, trials int, rng *rand.Rand) []float64 {
	probs := make([]float64, len(holes))
	for i, hole := range holes {
		if len(hole) != 2 {
			continue
		}
		var opponents [][]deck.Card
		for j, other := range holes {
			if j != i && len(other) == 2 {
				opponents = append(opponents, other)
			}
		}
		probs[i] = EstimateWinProbability(hole, opponents, board, undealt, trials, rng)
	}
	return probs
}

func cardsNeeded(board []deck.Card) int {
	if len(board) >= 5 {
		return 0
	}
	return 5 - len(board)
}

func estimateSequential(hero []deck.Card, opponents [][]deck.Card, board []deck.Card, undealt []deck.Card, trials int, rng *rand.Rand) float64 {
	total := runTrials(hero, opponents, board, undealt, trials, rng)
	return total / float64(trials)
}

func estimateParallel(hero []deck.Card, opponents [][]deck.Card, board []deck.Card, undealt []deck.Card, trials int, rng *rand.Rand) float64 {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers > trials {
		workers = trials
	}

	// Independent per-worker RNGs are derived up front so the parent
	// sequence stays deterministic regardless of scheduling.
	rngs := make([]*rand.Rand, workers)
	for w := range rngs {
		rngs[w] = randutil.Derive(rng)
	}

	perWorker := trials / workers
	remainder := trials % workers

	sums := make([]float64, workers)
	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		workerTrials := perWorker
		if w < remainder {
			workerTrials++
		}
		workerRng := rngs[w]
		g.Go(func() error {
			sums[w] = runTrials(hero, opponents, board, undealt, workerTrials, workerRng)
			return nil
		})
	}
	// workers only write their own slot and never return errors
	_ = g.Wait()

	total := 0.0
	for _, s := range sums {
		total += s
	}
	return total / float64(trials)
}

// runTrials returns the summed equity over count trials
func runTrials(hero []deck.Card, opponents [][]deck.Card, board []deck.Card, undealt []deck.Card, count int, rng *rand.Rand) float64 {
	needed := cardsNeeded(board)

	// reusable buffers: a shuffling copy of the undealt cards, the
	// completed board and a 7-card scratch hand
	shuffled := make([]deck.Card, len(undealt))
	finalBoard := make([]deck.Card, 5)
	scratch := make([]deck.Card, 7)

	total := 0.0
	for i := 0; i < count; i++ {
		copy(shuffled, undealt)
		for j := len(shuffled) - 1; j > 0; j-- {
			k := rng.IntN(j + 1)
			shuffled[j], shuffled[k] = shuffled[k], shuffled[j]
		}

		copy(finalBoard[:len(board)], board)
		copy(finalBoard[len(board):], shuffled[:needed])

		heroHand := bestOf(hero, finalBoard, scratch)
		best := heroHand
		tieCount := 1
		heroBest := true

		for _, opp := range opponents {
			oppHand := bestOf(opp, finalBoard, scratch)
			switch oppHand.Compare(best) {
			case 1:
				best = oppHand
				tieCount = 1
				heroBest = false
			case 0:
				tieCount++
			}
		}

		if heroBest {
			total += 1.0 / float64(tieCount)
		}
	}
	return total
}

func bestOf(hole []deck.Card, board []deck.Card, scratch []deck.Card) evaluator.Hand {
	n := copy(scratch, hole)
	n += copy(scratch[n:], board)
	return evaluator.EvaluateBest(scratch[:n])
}
