// Package game implements the shared-link voting mechanic: weighted outcome
// selection, penalty computation, and vote counter updates.
package game

import (
	"math/rand"

	"github.com/linkvote-app/linkvote/internal/domain"
)

// Selector picks an outcome from a weighted difficulty distribution.
// The random source is injected so tests can make selection deterministic.
type Selector struct {
	randFloat func() float64
}

// NewSelector creates a Selector backed by the package-level source, which
// is safe for concurrent draws. One Selector serves all webhook requests.
func NewSelector() *Selector {
	return &Selector{randFloat: rand.Float64}
}

// NewSelectorWithSource creates a Selector drawing uniform values in [0,1)
// from randFloat.
func NewSelectorWithSource(randFloat func() float64) *Selector {
	return &Selector{randFloat: randFloat}
}

// Pick draws r uniform in [0, totalWeight) and walks the entries in order,
// returning the first whose cumulative weight exceeds r. An empty or
// zero-weight distribution, or a floating-point edge that walks off the end,
// yields the neutral "nothing" outcome rather than an error.
func (s *Selector) Pick(difficulty []domain.DifficultyEntry) string {
	var total float64
	for _, e := range difficulty {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return domain.OutcomeNothing
	}

	r := s.randFloat() * total
	for _, e := range difficulty {
		if e.Weight <= 0 {
			continue
		}
		if r < e.Weight {
			return e.Type
		}
		r -= e.Weight
	}
	return domain.OutcomeNothing
}
