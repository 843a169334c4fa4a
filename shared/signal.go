package shared

import "time"

// Signal represents the directional consensus and risk parameters produced by
// one engine evaluation. It is created once per call and is immutable.
// CreatedOn is left zero by the engine and stamped by callers at emission.
type Signal struct {
	Symbol                 string            `json:"symbol"`
	Timeframe              Timeframe         `json:"timeframe"`
	Direction              Direction         `json:"direction"`
	Confidence             Confidence        `json:"confidence"`
	EntryPrice             float64           `json:"entry_price"`
	StopLoss               float64           `json:"stop_loss"`
	TakeProfitOne          float64           `json:"take_profit_1"`
	TakeProfitTwo          float64           `json:"take_profit_2"`
	Leverage               float64           `json:"leverage"`
	ContributingIndicators []IndicatorResult `json:"contributing_indicators"`
	CreatedOn              time.Time         `json:"created_on"`
}
