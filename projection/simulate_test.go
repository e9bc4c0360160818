package projection

import (
	"encoding/json"
	"testing"

	"github.com/rustyeddy/tradeplan/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleParams() Params {
	return Params{
		Capital:         1000,
		RiskPct:         2,
		TPPoints:        20,
		SLPoints:        10,
		MaxTradesPerDay: 2,
		TargetPerDay:    100,
		WinRate:         100,
	}
}

func TestSimulateExample(t *testing.T) {
	t.Parallel()

	res := Simulate(exampleParams())

	require.Equal(t, 2, res.TotalWeeks)
	require.Len(t, res.Weeks, 2)

	w1 := res.Weeks[0]
	assert.Equal(t, 1, w1.Week)
	assert.InDelta(t, 1000.0, w1.CapitalStart, 1e-9)
	assert.InDelta(t, 20.0, w1.RiskDollar, 1e-9)
	assert.InDelta(t, 2.0, w1.MaxLot, 1e-9)
	assert.InDelta(t, 40.0, w1.ProfitPerWin, 1e-9)
	assert.InDelta(t, 20.0, w1.LossPerLoss, 1e-9)
	assert.InDelta(t, 400.0, w1.WeeklyProfit, 1e-9)
	assert.InDelta(t, 1400.0, w1.CapitalEnd, 1e-9)

	w2 := res.Weeks[1]
	assert.Equal(t, 2, w2.Week)
	assert.InDelta(t, 1400.0, w2.CapitalStart, 1e-9)
	assert.InDelta(t, 28.0, w2.RiskDollar, 1e-9)
	assert.InDelta(t, 2.8, w2.MaxLot, 1e-9)
	assert.InDelta(t, 56.0, w2.ProfitPerWin, 1e-9)
	assert.InDelta(t, 560.0, w2.WeeklyProfit, 1e-9)
	assert.InDelta(t, 112.0, w2.EarningPerDay(), 1e-9)

	assert.InDelta(t, 1960.0, res.FinalCapital, 1e-9)
	assert.Equal(t, 100.0, res.TargetPerDay)
	assert.Equal(t, 100.0, res.WinRate)
	assert.True(t, res.ReachedGoal())
	assert.False(t, res.Capped())
}

func TestSimulateChaining(t *testing.T) {
	t.Parallel()

	p := exampleParams()
	p.TargetPerDay = 50_000
	p.WinRate = 70
	res := Simulate(p)

	require.NotEmpty(t, res.Weeks)
	assert.Equal(t, p.Capital, res.Weeks[0].CapitalStart)
	for i := 0; i+1 < len(res.Weeks); i++ {
		assert.Equal(t, res.Weeks[i].CapitalEnd, res.Weeks[i+1].CapitalStart, "week %d", i+1)
		assert.Equal(t, i+1, res.Weeks[i].Week)
	}
	last, ok := res.Last()
	require.True(t, ok)
	assert.Equal(t, last.CapitalEnd, res.FinalCapital)
	assert.Equal(t, len(res.Weeks), res.TotalWeeks)
}

func TestSimulateFullWinRateGrowsMonotonically(t *testing.T) {
	t.Parallel()

	p := exampleParams()
	p.TargetPerDay = 10_000
	res := Simulate(p)

	for _, w := range res.Weeks {
		assert.Greater(t, w.WeeklyProfit, 0.0)
		assert.Greater(t, w.CapitalEnd, w.CapitalStart)
	}
	assert.True(t, res.ReachedGoal())
}

func TestSimulateStopsOnNonPositiveWeek(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		winRate float64
		tp      float64
	}{
		{"breakeven", 50, 10},
		{"losing", 0, 20},
		{"negative_expectancy", 30, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := exampleParams()
			p.WinRate = tt.winRate
			p.TPPoints = tt.tp
			res := Simulate(p)

			require.Equal(t, 1, res.TotalWeeks)
			assert.LessOrEqual(t, res.Weeks[0].WeeklyProfit, 0.0)
			assert.False(t, res.ReachedGoal())
			assert.False(t, res.Capped())
		})
	}
}

func TestSimulateCapsAtMaxWeeks(t *testing.T) {
	t.Parallel()

	p := Params{
		Capital:         1000,
		RiskPct:         0.01,
		TPPoints:        1,
		SLPoints:        100,
		MaxTradesPerDay: 1,
		TargetPerDay:    1e12,
		WinRate:         100,
	}
	res := Simulate(p)

	assert.Equal(t, MaxWeeks, res.TotalWeeks)
	assert.False(t, res.ReachedGoal())
	assert.True(t, res.Capped())
	assert.InDelta(t, risk.MinLot, res.Weeks[0].MaxLot, 1e-12)
}

func TestSimulateNonPositiveTargetStopsAfterFirstWeek(t *testing.T) {
	t.Parallel()

	p := exampleParams()
	p.TargetPerDay = 0
	res := Simulate(p)

	assert.Equal(t, 1, res.TotalWeeks)
	assert.True(t, res.ReachedGoal())
}

func TestSimulateDeterministic(t *testing.T) {
	t.Parallel()

	p := exampleParams()
	p.WinRate = 65
	p.TargetPerDay = 5000
	assert.Equal(t, Simulate(p), Simulate(p))
}

func TestSimulatorCustomQuantizer(t *testing.T) {
	t.Parallel()

	s := Simulator{Quantizer: risk.Quantizer{MinLot: 1, Step: 1}}
	res := s.Simulate(exampleParams())

	assert.InDelta(t, 2.0, res.Weeks[0].MaxLot, 1e-12)
	// 28/10 = 2.8 floors to 2 whole lots
	assert.InDelta(t, 2.0, res.Weeks[1].MaxLot, 1e-12)
}

func TestResultEmpty(t *testing.T) {
	t.Parallel()

	var r Result
	_, ok := r.Last()
	assert.False(t, ok)
	assert.False(t, r.ReachedGoal())
}

func TestParamsJSONDefaultsWinRate(t *testing.T) {
	t.Parallel()

	var p Params
	err := json.Unmarshal([]byte(`{"capital":1000,"riskPct":2,"tpPoints":20,"slPoints":10,"maxTradesPerDay":2,"targetPerDay":100}`), &p)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.WinRate)
	assert.Equal(t, 2, p.MaxTradesPerDay)

	var q Params
	err = json.Unmarshal([]byte(`{"capital":1000,"winRate":55}`), &q)
	require.NoError(t, err)
	assert.Equal(t, 55.0, q.WinRate)
	assert.Equal(t, 0.0, q.RiskPct)

	// decoding over existing values keeps what the document omits
	err = json.Unmarshal([]byte(`{"capital":2500}`), &p)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, p.Capital)
	assert.Equal(t, 2.0, p.RiskPct)
	assert.Equal(t, 100.0, p.WinRate)

	err = json.Unmarshal([]byte(`{"winRate":0}`), &p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.WinRate)
}

func TestGoalPoints(t *testing.T) {
	t.Parallel()

	p := exampleParams()
	assert.Equal(t, 40.0, p.DailyGoalPoints())
	assert.Equal(t, 200.0, p.WeeklyGoalPoints())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	assert.True(t, Check(exampleParams()).Allowed)
	assert.NoError(t, exampleParams().Validate())

	bad := Params{Capital: -1, RiskPct: 120, WinRate: -5}
	d := Check(bad)
	assert.False(t, d.Allowed)

	codes := map[string]bool{}
	for _, v := range d.Violations {
		codes[v.Code] = true
	}
	for _, c := range []string{"CAPITAL", "RISK_PCT", "TP_POINTS", "SL_POINTS", "MAX_TRADES", "TARGET", "WIN_RATE"} {
		assert.True(t, codes[c], "missing %s", c)
	}

	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SL_POINTS")
}
