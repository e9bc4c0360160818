package risk

import "math"

// Broker defaults for standard FX accounts.
const (
	MinLot  = 0.01
	LotStep = 0.01
)

// quantEpsilon absorbs float noise such as 0.29/0.01 = 28.999999999999996
// so a lot that is already on a step boundary stays there.
const quantEpsilon = 1e-9

// Quantizer rounds raw position sizes to tradeable lots.
type Quantizer struct {
	MinLot float64
	Step   float64
}

// DefaultQuantizer uses MinLot and LotStep.
var DefaultQuantizer = Quantizer{MinLot: MinLot, Step: LotStep}

// Quantize floors rawLot to a multiple of Step and never returns less
// than MinLot: a computed size of zero still trades the minimum.
//
// The result does not exceed rawLot by more than Step*1e-9, the tolerance
// that keeps values already on the grid from dropping a step.
func (q Quantizer) Quantize(rawLot float64) float64 {
	if rawLot < q.MinLot {
		return q.MinLot
	}
	if q.Step <= 0 {
		return rawLot
	}
	steps := math.Floor(rawLot/q.Step + quantEpsilon)
	return max(steps*q.Step, q.MinLot)
}

// OnGrid reports whether MinLot is a whole number of steps. A zero Step
// accepts any MinLot.
func (q Quantizer) OnGrid() bool {
	if q.Step <= 0 {
		return true
	}
	n := q.MinLot / q.Step
	return math.Abs(n-math.Round(n)) < quantEpsilon
}

// Quantize uses DefaultQuantizer.
func Quantize(rawLot float64) float64 {
	return DefaultQuantizer.Quantize(rawLot)
}

type Inputs struct {
	Capital  float64
	RiskPct  float64 // percent of capital, 2 = 2%
	SLPoints float64
}

type Result struct {
	RiskDollar float64
	RawLot     float64
	Lot        float64
}

// Size converts a risk budget into a lot. The dollar value of one point per
// lot is taken as 1, so loss at the stop is Lot * SLPoints.
// SLPoints must be positive; zero yields an infinite raw lot.
func (q Quantizer) Size(in Inputs) Result {
	riskDollar := in.Capital * (in.RiskPct / 100)
	rawLot := riskDollar / in.SLPoints

	return Result{
		RiskDollar: riskDollar,
		RawLot:     rawLot,
		Lot:        q.Quantize(rawLot),
	}
}
