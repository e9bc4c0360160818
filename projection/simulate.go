package projection

import "github.com/rustyeddy/tradeplan/risk"

const (
	TradingDaysPerWeek = 5

	// MaxWeeks stops plans that never reach the target. A result this long
	// that has not reached the goal did not converge.
	MaxWeeks = 200
)

// Week is one row of the compounding schedule.
type Week struct {
	Week         int     `json:"week"`
	CapitalStart float64 `json:"capitalStart"`
	RiskDollar   float64 `json:"riskDollar"`
	MaxLot       float64 `json:"maxLot"`
	ProfitPerWin float64 `json:"profitPerWin"`
	LossPerLoss  float64 `json:"lossPerLoss"`
	WeeklyProfit float64 `json:"weeklyProfit"`
	CapitalEnd   float64 `json:"capitalEnd"`
}

// EarningPerDay is the weekly profit spread over the trading days.
func (w Week) EarningPerDay() float64 {
	return w.WeeklyProfit / TradingDaysPerWeek
}

type Result struct {
	Weeks        []Week  `json:"weeks"`
	TotalWeeks   int     `json:"totalWeeks"`
	FinalCapital float64 `json:"finalCapital"`
	TargetPerDay float64 `json:"targetPerDay"`
	WinRate      float64 `json:"winRate"`
}

// Last returns the final week, ok=false for an empty result.
func (r Result) Last() (Week, bool) {
	if len(r.Weeks) == 0 {
		return Week{}, false
	}
	return r.Weeks[len(r.Weeks)-1], true
}

// ReachedGoal reports whether the last week earns TargetPerDay per day.
// A run can also end on a non-positive week or on MaxWeeks; both are false.
func (r Result) ReachedGoal() bool {
	last, ok := r.Last()
	if !ok {
		return false
	}
	return last.EarningPerDay() >= r.TargetPerDay
}

// Capped reports that the run stopped at MaxWeeks without reaching the goal.
func (r Result) Capped() bool {
	return r.TotalWeeks >= MaxWeeks && !r.ReachedGoal()
}

// Simulator runs projections with a given lot quantizer.
type Simulator struct {
	Quantizer risk.Quantizer
}

// Simulate uses risk.DefaultQuantizer.
func Simulate(p Params) Result {
	return Simulator{Quantizer: risk.DefaultQuantizer}.Simulate(p)
}

// Simulate compounds capital week by week using the expected value of each
// week's trades. It stops when the week loses or breaks even, when the
// daily equivalent of the week's profit meets TargetPerDay, or at MaxWeeks.
//
// p.SLPoints must be positive; Simulate does not validate p.
func (s Simulator) Simulate(p Params) Result {
	winRatio := p.WinRate / 100
	tradesPerWeek := float64(p.MaxTradesPerDay * TradingDaysPerWeek)

	weeks := make([]Week, 0, 16)
	capital := p.Capital

	for len(weeks) < MaxWeeks {
		size := s.Quantizer.Size(risk.Inputs{
			Capital:  capital,
			RiskPct:  p.RiskPct,
			SLPoints: p.SLPoints,
		})

		profitPerWin := size.Lot * p.TPPoints
		lossPerLoss := size.Lot * p.SLPoints

		expectedWins := tradesPerWeek * winRatio
		expectedLosses := tradesPerWeek * (1 - winRatio)
		weeklyProfit := expectedWins*profitPerWin - expectedLosses*lossPerLoss

		w := Week{
			Week:         len(weeks) + 1,
			CapitalStart: capital,
			RiskDollar:   size.RiskDollar,
			MaxLot:       size.Lot,
			ProfitPerWin: profitPerWin,
			LossPerLoss:  lossPerLoss,
			WeeklyProfit: weeklyProfit,
			CapitalEnd:   capital + weeklyProfit,
		}
		weeks = append(weeks, w)
		capital = w.CapitalEnd

		if weeklyProfit <= 0 {
			break
		}
		if w.EarningPerDay() >= p.TargetPerDay {
			break
		}
	}

	return Result{
		Weeks:        weeks,
		TotalWeeks:   len(weeks),
		FinalCapital: capital,
		TargetPerDay: p.TargetPerDay,
		WinRate:      p.WinRate,
	}
}
