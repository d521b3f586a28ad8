package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/consts"
	"github.com/tradepulse/tradepulse/models"
)

func TestDeslug(t *testing.T) {
	assert.Equal(t, "Final Trade Decision", Deslug("final_trade_decision"))
	assert.Equal(t, "Market Report", Deslug("market_report"))
	assert.Equal(t, "Count", Deslug("count"))
}

func TestSnapshotUpdatesStringFields(t *testing.T) {
	snap := models.NewAnalysisState("NVDA", "2024-03-15")
	snap.NewsReport = "Chip demand remains strong."
	snap.MarketReport = "Uptrend intact above the 50-day average."

	updates := SnapshotUpdates(snap)
	require.Len(t, updates, 2)

	// Canonical field order, not the order the fields were written in.
	assert.Equal(t, consts.FieldMarketReport, updates[0].Field)
	assert.Equal(t, "Market Report", updates[0].Author)
	assert.Equal(t, "Uptrend intact above the 50-day average.", updates[0].Body)
	assert.Equal(t, consts.FieldNewsReport, updates[1].Field)
}

func TestSnapshotUpdatesStructuredField(t *testing.T) {
	snap := models.NewAnalysisState("NVDA", "2024-03-15")
	snap.InvestmentDebateState.BullHistory = "Bull: growth is accelerating."
	snap.InvestmentDebateState.Count = 1

	updates := SnapshotUpdates(snap)
	require.Len(t, updates, 1)
	assert.Equal(t, consts.FieldInvestmentDebate, updates[0].Field)
	assert.Equal(t, "Investment Debate State", updates[0].Author)
	assert.Contains(t, updates[0].Body, "- **Bull History**: Bull: growth is accelerating.")
	assert.Contains(t, updates[0].Body, "- **Count**: 1")
}

// One update per non-empty field per snapshot, with no suppression of fields
// already emitted for an earlier snapshot.
func TestSnapshotUpdatesNoCoalescing(t *testing.T) {
	first := models.NewAnalysisState("SPY", "2024-01-02")
	first.MarketReport = "v1"

	second := first.Clone()
	second.MarketReport = "v2"
	second.SentimentReport = "calm"

	third := second.Clone()

	total := 0
	for _, snap := range []*models.AnalysisState{first, second, third} {
		total += len(SnapshotUpdates(snap))
	}
	assert.Equal(t, 1+2+2, total)
}

func TestSnapshotUpdatesEmptySnapshot(t *testing.T) {
	snap := models.NewAnalysisState("SPY", "2024-01-02")
	assert.Empty(t, SnapshotUpdates(snap))
}
