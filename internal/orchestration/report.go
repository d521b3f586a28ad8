package orchestration

import (
	"strings"

	"github.com/tradepulse/tradepulse/models"
)

// Report section titles, in their fixed order of appearance.
const (
	SectionAnalystTeam   = "Analyst Team Reports"
	SectionResearchTeam  = "Research Team Decision"
	SectionTradingTeam   = "Trading Team Plan"
	SectionPortfolioMgmt = "Portfolio Management Decision"
)

// AssembleReport builds the final report from the last observed snapshot.
// Sections back onto state fields and are included only when the field is
// non-empty after trimming; the order never varies. A run whose snapshots
// populated nothing yields an empty report, which is a valid outcome. A nil
// last snapshot means the engine never produced state and is a NoStateError.
func AssembleReport(last *models.AnalysisState) (*models.Report, error) {
	if last == nil {
		return nil, &NoStateError{}
	}

	report := &models.Report{}

	if body := analystTeamBody(last); body != "" {
		report.Sections = append(report.Sections, models.Section{
			Title: SectionAnalystTeam,
			Body:  body,
		})
	}
	appendSection(report, SectionResearchTeam, last.InvestmentPlan)
	appendSection(report, SectionTradingTeam, last.TraderInvestmentPlan)
	appendSection(report, SectionPortfolioMgmt, last.FinalTradeDecision)

	return report, nil
}

// analystTeamBody renders the analyst sub-sections in the fixed analyst
// order: market, social, news, fundamentals.
func analystTeamBody(s *models.AnalysisState) string {
	var b strings.Builder
	sub := func(label, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		b.WriteString("**")
		b.WriteString(label)
		b.WriteString(":**\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	sub("Market Analyst", s.MarketReport)
	sub("Social Analyst", s.SentimentReport)
	sub("News Analyst", s.NewsReport)
	sub("Fundamentals Analyst", s.FundamentalsReport)
	return strings.TrimSuffix(b.String(), "\n")
}

func appendSection(report *models.Report, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	report.Sections = append(report.Sections, models.Section{Title: title, Body: body})
}
