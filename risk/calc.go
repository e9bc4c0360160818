package risk

import "math"

// RR is the reward-to-risk multiple of a take profit versus a stop distance.
func RR(tpPoints, slPoints float64) float64 {
	if slPoints <= 0 {
		return 0
	}
	return tpPoints / slPoints
}

// DeriveLot backs out the lot that produced a realized result: amount over
// the take-profit distance for a win, over the stop distance otherwise.
// Returns 0 when no usable distance was recorded. Rounded to 2 decimals.
func DeriveLot(win bool, amount, points, sl float64) float64 {
	var lot float64
	switch {
	case win && points > 0:
		lot = amount / points
	case sl > 0:
		lot = amount / sl
	}
	return math.Round(lot*100) / 100
}
