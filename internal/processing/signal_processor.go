// Package processing turns free-form analysis text into actionable signals.
package processing

import (
	"strings"

	"github.com/tradepulse/tradepulse/models"
)

// SignalProcessor extracts the trade decision from the portfolio management
// decision text.
type SignalProcessor struct{}

// NewSignalProcessor creates a signal processor.
func NewSignalProcessor() *SignalProcessor {
	return &SignalProcessor{}
}

// ExtractDecision scans text left to right for the first occurrence of BUY,
// SELL, or HOLD, case-insensitively, and returns that decision. The scan is a
// plain substring match, so "SELLING" counts as SELL. Empty or signal-free
// text yields UNKNOWN.
func (sp *SignalProcessor) ExtractDecision(text string) models.Decision {
	lower := strings.ToLower(text)

	decision := models.DecisionUnknown
	best := -1
	for _, candidate := range []struct {
		token  string
		result models.Decision
	}{
		{"buy", models.DecisionBuy},
		{"sell", models.DecisionSell},
		{"hold", models.DecisionHold},
	} {
		idx := strings.Index(lower, candidate.token)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			decision = candidate.result
		}
	}
	return decision
}
