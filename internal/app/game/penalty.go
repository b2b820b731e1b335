package game

import (
	"log"
	"math"

	"github.com/linkvote-app/linkvote/internal/domain"
)

// Penalty computes the signed time adjustment in seconds for an outcome.
// The multipliers are asymmetric on purpose: jackpot is a loud reward,
// double_invert the harshest penalty. Unknown outcomes adjust nothing.
// Fractional multipliers round half away from zero, so a penalty and its
// mirror reward always have the same magnitude.
func Penalty(outcome string, baseDuration int, punishMult float64) int {
	d := float64(baseDuration) * punishMult
	switch outcome {
	case domain.OutcomeNothing:
		return 0
	case domain.OutcomeInvert:
		return seconds(-2 * d)
	case domain.OutcomeDouble:
		return seconds(2 * d)
	case domain.OutcomeDoubleInvert:
		return seconds(-3 * d)
	case domain.OutcomeJackpot:
		return seconds(9 * d)
	default:
		log.Printf("[game] unknown outcome %q, no time adjustment", outcome)
		return 0
	}
}

func seconds(v float64) int {
	return int(math.Round(v))
}
