package evaluator

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-table/internal/deck"
)

// cancelCheckInterval is how many pools a worker scores between context checks
const cancelCheckInterval = 256

var potentialCache, _ = lru.New[string, Score](1024)

// BestHandScore returns the best five-card score from cards. With fewer
// than five cards it falls back to EvaluatePartial.
func BestHandScore(cards []deck.Card) (Score, error) {
	if len(cards) == 0 {
		return Score{}, fmt.Errorf("%w: no cards", ErrHandSize)
	}
	if err := checkDuplicates(cards); err != nil {
		return Score{}, err
	}

	switch {
	case len(cards) < 5:
		return EvaluatePartial(cards)
	case len(cards) == 5:
		return evaluate5(cards), nil
	}

	var best Score
	ForEachCombination(cards, 5, func(hand []deck.Card) bool {
		if s := evaluate5(hand); s.Value > best.Value {
			best = s
		}
		return true
	})
	return best, nil
}

// BestPossibleHand returns the strongest five-card hand that could still be
// made once the known cards are completed to poolSize cards from the unseen
// deck. Every completion is enumerated, so for two known cards and a pool
// of seven this scores around two million pools; the work is split over
// worker goroutines and results are cached by known-card set.
func BestPossibleHand(ctx context.Context, known []deck.Card, poolSize int) (Score, error) {
	if poolSize < 5 || poolSize > 7 {
		return Score{}, fmt.Errorf("%w: pool size %d, want 5-7", ErrHandSize, poolSize)
	}
	if len(known) > poolSize {
		return Score{}, fmt.Errorf("%w: %d known cards exceed pool size %d", ErrHandSize, len(known), poolSize)
	}
	if err := checkDuplicates(known); err != nil {
		return Score{}, err
	}

	need := poolSize - len(known)
	if need == 0 {
		return BestHandScore(known)
	}

	key := cacheKey(known, poolSize)
	if s, ok := potentialCache.Get(key); ok {
		return s, nil
	}

	unseen := deck.Without(known)
	firsts := len(unseen) - need + 1
	results := make([]Score, firsts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	// Partition by the first unseen card drawn; each task enumerates the
	// remaining need-1 cards from the unseen cards after it.
	for first := 0; first < firsts; first++ {
		g.Go(func() error {
			pool := make([]deck.Card, 0, poolSize)
			pool = append(pool, known...)
			pool = append(pool, unseen[first])
			base := len(pool)
			pool = pool[:poolSize]

			var (
				best  Score
				count int
				err   error
			)
			ForEachCombination(unseen[first+1:], need-1, func(rest []deck.Card) bool {
				if count++; count%cancelCheckInterval == 0 {
					if err = ctx.Err(); err != nil {
						return false
					}
				}
				copy(pool[base:], rest)
				s, _ := BestHandScore(pool)
				if s.Value > best.Value {
					best = s
				}
				return true
			})
			if err != nil {
				return err
			}
			results[first] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Score{}, fmt.Errorf("best possible hand: %w", err)
	}

	var best Score
	for _, s := range results {
		if s.Value > best.Value {
			best = s
		}
	}
	potentialCache.Add(key, best)
	return best, nil
}

func checkDuplicates(cards []deck.Card) error {
	var seen [deck.Size]bool
	for _, c := range cards {
		if seen[c.Index()] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c.Index()] = true
	}
	return nil
}

func cacheKey(known []deck.Card, poolSize int) string {
	codes := make([]string, len(known))
	for i, c := range known {
		codes[i] = c.Code()
	}
	slices.Sort(codes)
	return fmt.Sprintf("%d:%s", poolSize, strings.Join(codes, ""))
}
