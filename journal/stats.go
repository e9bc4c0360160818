package journal

import "github.com/rustyeddy/tradeplan/risk"

// NetTotal sums signed amounts. Commission is not deducted.
func NetTotal(entries []Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Signed()
	}
	return sum
}

func WinLossCounts(entries []Entry) (wins, losses int) {
	for _, e := range entries {
		if e.IsWin() {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses
}

// WinRatePct is 100*wins/total, or 0 for no entries.
func WinRatePct(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	wins, _ := WinLossCounts(entries)
	return 100 * float64(wins) / float64(len(entries))
}

// NetPoints adds TP points of wins and subtracts SL points of losses.
func NetPoints(entries []Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.SignedPoints()
	}
	return sum
}

type Summary struct {
	Trades     int
	Wins       int
	Losses     int
	WinRatePct float64
	Net        float64
	NetPoints  float64
	Commission float64

	// Averages only count entries that recorded a distance.
	AvgTP float64
	AvgSL float64
	RR    float64
}

func Summarize(entries []Entry) Summary {
	s := Summary{
		Trades:     len(entries),
		WinRatePct: WinRatePct(entries),
		Net:        NetTotal(entries),
		NetPoints:  NetPoints(entries),
	}
	s.Wins, s.Losses = WinLossCounts(entries)

	var tpSum, slSum float64
	var tpN, slN int
	for _, e := range entries {
		s.Commission += e.Commission
		switch {
		case e.IsWin() && value(e.Points) > 0:
			tpSum += *e.Points
			tpN++
		case !e.IsWin() && value(e.SL) > 0:
			slSum += *e.SL
			slN++
		}
	}
	if tpN > 0 {
		s.AvgTP = tpSum / float64(tpN)
	}
	if slN > 0 {
		s.AvgSL = slSum / float64(slN)
	}
	s.RR = risk.RR(s.AvgTP, s.AvgSL)

	return s
}

// Progress tracks net points against a points goal for a period.
type Progress struct {
	NetPoints float64
	Goal      float64
	Done      bool
}

func GoalProgress(entries []Entry, goal float64) Progress {
	net := NetPoints(entries)
	return Progress{
		NetPoints: net,
		Goal:      goal,
		Done:      goal > 0 && net >= goal,
	}
}

// Pct is progress toward the goal, clamped to 0-100.
func (p Progress) Pct() float64 {
	if p.Goal <= 0 {
		return 0
	}
	pct := 100 * p.NetPoints / p.Goal
	return min(max(pct, 0), 100)
}
