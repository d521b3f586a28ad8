package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradepulse/tradepulse/models"
)

func TestExtractDecision(t *testing.T) {
	sp := NewSignalProcessor()

	tests := []struct {
		name string
		text string
		want models.Decision
	}{
		{"strong buy", "After weighing the debate, we recommend a STRONG BUY at current levels.", models.DecisionBuy},
		{"hold steady", "Hold steady.", models.DecisionHold},
		{"empty", "", models.DecisionUnknown},
		{"no signal", "The outlook is mixed and no action is advised.", models.DecisionUnknown},
		{"sell before buy", "We should sell now rather than buy the dip.", models.DecisionSell},
		{"buy before sell", "Buy aggressively; do not sell into strength.", models.DecisionBuy},
		{"lowercase", "my recommendation: buy", models.DecisionBuy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sp.ExtractDecision(tt.text))
		})
	}
}

// Substring matching is deliberate: "SELLING" hits SELL before any later
// token. If word boundaries are ever added, this test must change with it.
func TestExtractDecisionSubstringSemantics(t *testing.T) {
	sp := NewSignalProcessor()
	assert.Equal(t, models.DecisionSell, sp.ExtractDecision("SELLING pressure may justify a hold"))
	assert.Equal(t, models.DecisionHold, sp.ExtractDecision("shareHOLDers agree"))
}
