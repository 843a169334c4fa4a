package engine

import (
	"github.com/dnldd/quorum/shared"
)

// RiskProfile represents the risk parameterization for a single timeframe.
// The percentage fields are fractions of the entry price.
type RiskProfile struct {
	// StopLossPercent is the adverse move tolerated before exiting.
	StopLossPercent float64
	// TakeProfitPercent is the favorable move at the first target.
	TakeProfitPercent float64
	// SecondTakeProfitPercent is the favorable move at the second target.
	SecondTakeProfitPercent float64
	// Leverage is the advised position leverage.
	Leverage uint32
}

// DefaultRiskProfiles returns the risk parameterization for all supported
// timeframes. Stops and targets widen with the timeframe while leverage
// advice rises, since longer holds ride out proportionally more noise.
func DefaultRiskProfiles() map[shared.Timeframe]RiskProfile {
	return map[shared.Timeframe]RiskProfile{
		shared.OneMinute:     {StopLossPercent: 0.005, TakeProfitPercent: 0.005, SecondTakeProfitPercent: 0.01, Leverage: 5},
		shared.FiveMinute:    {StopLossPercent: 0.01, TakeProfitPercent: 0.01, SecondTakeProfitPercent: 0.02, Leverage: 7},
		shared.FifteenMinute: {StopLossPercent: 0.015, TakeProfitPercent: 0.015, SecondTakeProfitPercent: 0.025, Leverage: 8},
		shared.ThirtyMinute:  {StopLossPercent: 0.02, TakeProfitPercent: 0.02, SecondTakeProfitPercent: 0.03, Leverage: 10},
		shared.OneHour:       {StopLossPercent: 0.025, TakeProfitPercent: 0.025, SecondTakeProfitPercent: 0.04, Leverage: 12},
		shared.FourHour:      {StopLossPercent: 0.03, TakeProfitPercent: 0.03, SecondTakeProfitPercent: 0.045, Leverage: 15},
		shared.OneDay:        {StopLossPercent: 0.03, TakeProfitPercent: 0.03, SecondTakeProfitPercent: 0.05, Leverage: 20},
		shared.OneWeek:       {StopLossPercent: 0.05, TakeProfitPercent: 0.05, SecondTakeProfitPercent: 0.08, Leverage: 25},
	}
}

// riskLevels derives concrete price levels from the provided risk profile,
// entry price and direction. A neutral direction gets long-framed advisory
// levels since the percentages are symmetric either way.
func riskLevels(profile RiskProfile, direction shared.Direction, entry float64) (stopLoss float64, takeProfit float64, secondTakeProfit float64) {
	switch direction {
	case shared.Short:
		stopLoss = entry * (1 + profile.StopLossPercent)
		takeProfit = entry * (1 - profile.TakeProfitPercent)
		secondTakeProfit = entry * (1 - profile.SecondTakeProfitPercent)
	default:
		stopLoss = entry * (1 - profile.StopLossPercent)
		takeProfit = entry * (1 + profile.TakeProfitPercent)
		secondTakeProfit = entry * (1 + profile.SecondTakeProfitPercent)
	}

	return
}
