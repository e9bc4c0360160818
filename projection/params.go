package projection

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Params drive one projection run. Percentages are 0-100.
type Params struct {
	Capital         float64 `json:"capital" yaml:"capital"`
	RiskPct         float64 `json:"riskPct" yaml:"risk_pct"`
	TPPoints        float64 `json:"tpPoints" yaml:"tp_points"`
	SLPoints        float64 `json:"slPoints" yaml:"sl_points"`
	MaxTradesPerDay int     `json:"maxTradesPerDay" yaml:"max_trades_per_day"`
	TargetPerDay    float64 `json:"targetPerDay" yaml:"target_per_day"`
	WinRate         float64 `json:"winRate" yaml:"win_rate"`
}

// DefaultWinRate applies when a stored snapshot predates the win rate field.
const DefaultWinRate = 100

// UnmarshalJSON fills WinRate with DefaultWinRate when the key is missing
// and p does not already carry one. Other missing keys keep p's values.
func (p *Params) UnmarshalJSON(b []byte) error {
	type plain Params
	aux := struct {
		plain
		WinRate *float64 `json:"winRate"`
	}{plain: plain(*p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	prev := p.WinRate
	*p = Params(aux.plain)
	switch {
	case aux.WinRate != nil:
		p.WinRate = *aux.WinRate
	case prev != 0:
		p.WinRate = prev
	default:
		p.WinRate = DefaultWinRate
	}
	return nil
}

// DailyGoalPoints is the points target for one day: every trade hits TP.
func (p Params) DailyGoalPoints() float64 {
	return p.TPPoints * float64(p.MaxTradesPerDay)
}

// WeeklyGoalPoints is DailyGoalPoints over a trading week.
func (p Params) WeeklyGoalPoints() float64 {
	return p.DailyGoalPoints() * TradingDaysPerWeek
}

type Violation struct {
	Code string
	Msg  string
}

// Decision collects every problem with a Params value rather than stopping
// at the first, so a form can flag all bad fields at once.
type Decision struct {
	Allowed    bool
	Violations []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Err joins the violations into a single error, or nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	errs := make([]error, 0, len(d.Violations))
	for _, v := range d.Violations {
		errs = append(errs, fmt.Errorf("%s: %s", v.Code, v.Msg))
	}
	return errors.Join(errs...)
}

// Check validates p against the ranges Simulate assumes. Simulate itself
// does not call Check.
func Check(p Params) Decision {
	d := Decision{Allowed: true}

	if p.Capital <= 0 {
		d.add("CAPITAL", fmt.Sprintf("capital %.2f must be positive", p.Capital))
	}
	if p.RiskPct < 0 || p.RiskPct > 100 {
		d.add("RISK_PCT", fmt.Sprintf("risk %.2f%% must be within 0-100", p.RiskPct))
	}
	if p.TPPoints <= 0 {
		d.add("TP_POINTS", "take profit points must be positive")
	}
	if p.SLPoints <= 0 {
		d.add("SL_POINTS", "stop loss points must be positive")
	}
	if p.MaxTradesPerDay <= 0 {
		d.add("MAX_TRADES", fmt.Sprintf("max trades per day %d must be positive", p.MaxTradesPerDay))
	}
	if p.TargetPerDay <= 0 {
		d.add("TARGET", "target per day must be positive")
	}
	if p.WinRate < 0 || p.WinRate > 100 {
		d.add("WIN_RATE", fmt.Sprintf("win rate %.2f%% must be within 0-100", p.WinRate))
	}

	return d
}

// Validate is Check(p).Err().
func (p Params) Validate() error {
	return Check(p).Err()
}
