package orchestration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/models"
)

func TestAssembleReportFullState(t *testing.T) {
	state := models.NewAnalysisState("AAPL", "2024-03-15")
	state.MarketReport = "market"
	state.SentimentReport = "sentiment"
	state.NewsReport = "news"
	state.FundamentalsReport = "fundamentals"
	state.InvestmentPlan = "invest"
	state.TraderInvestmentPlan = "trade"
	state.FinalTradeDecision = "BUY"

	report, err := AssembleReport(state)
	require.NoError(t, err)
	require.Len(t, report.Sections, 4)

	assert.Equal(t, SectionAnalystTeam, report.Sections[0].Title)
	assert.Equal(t, SectionResearchTeam, report.Sections[1].Title)
	assert.Equal(t, SectionTradingTeam, report.Sections[2].Title)
	assert.Equal(t, SectionPortfolioMgmt, report.Sections[3].Title)

	// Analyst sub-sections keep the fixed analyst order.
	body := report.Sections[0].Body
	assert.Less(t, indexOf(t, body, "Market Analyst"), indexOf(t, body, "Social Analyst"))
	assert.Less(t, indexOf(t, body, "Social Analyst"), indexOf(t, body, "News Analyst"))
	assert.Less(t, indexOf(t, body, "News Analyst"), indexOf(t, body, "Fundamentals Analyst"))
}

// Section order is invariant under permutation of which fields are set.
func TestAssembleReportPartialState(t *testing.T) {
	state := models.NewAnalysisState("AAPL", "2024-03-15")
	state.FundamentalsReport = "strong balance sheet"
	state.FinalTradeDecision = "HOLD"

	report, err := AssembleReport(state)
	require.NoError(t, err)
	require.Len(t, report.Sections, 2)
	assert.Equal(t, SectionAnalystTeam, report.Sections[0].Title)
	assert.Equal(t, SectionPortfolioMgmt, report.Sections[1].Title)
}

func TestAssembleReportTrimsWhitespaceOnlyFields(t *testing.T) {
	state := models.NewAnalysisState("AAPL", "2024-03-15")
	state.InvestmentPlan = "   \n\t "

	report, err := AssembleReport(state)
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

// A run that completed without populating anything is an empty report, not
// an error.
func TestAssembleReportEmptyState(t *testing.T) {
	report, err := AssembleReport(models.NewAnalysisState("AAPL", "2024-03-15"))
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

// Zero snapshots is a distinct, more severe condition.
func TestAssembleReportNoState(t *testing.T) {
	_, err := AssembleReport(nil)
	var nse *NoStateError
	require.ErrorAs(t, err, &nse)
}

func TestReportMarkdown(t *testing.T) {
	state := models.NewAnalysisState("AAPL", "2024-03-15")
	state.FinalTradeDecision = "SELL"

	report, err := AssembleReport(state)
	require.NoError(t, err)

	md := report.Markdown()
	assert.Contains(t, md, "## Final Analysis Report")
	assert.Contains(t, md, "### Portfolio Management Decision")
	assert.Contains(t, md, "SELL")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "%q not found", needle)
	return idx
}
