package models

// Decision is the terminal trade signal extracted from the portfolio
// management decision text.
type Decision string

const (
	DecisionBuy     Decision = "BUY"
	DecisionSell    Decision = "SELL"
	DecisionHold    Decision = "HOLD"
	DecisionUnknown Decision = "UNKNOWN"
)

func (d Decision) String() string {
	return string(d)
}
