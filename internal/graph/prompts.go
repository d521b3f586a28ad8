package graph

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/tradepulse/tradepulse/models"
)

const teamPreamble = `You are a helpful AI assistant collaborating with other assistants on a
trading analysis team. Work from the shared context you are given and make
concrete progress. When the team reaches a final deliverable, prefix it with
FINAL TRANSACTION PROPOSAL: **BUY/HOLD/SELL** so everyone knows to stop.`

func analystPrompt(role, focus string) func(*models.AnalysisState) []*schema.Message {
	return func(st *models.AnalysisState) []*schema.Message {
		system := fmt.Sprintf(`%s

You are the %s. %s

The company under analysis is %s and the trade date is %s. Write a detailed
report for the research team.`, teamPreamble, role, focus, st.CompanyOfInterest, st.TradeDate)
		return []*schema.Message{
			schema.SystemMessage(system),
			schema.UserMessage(fmt.Sprintf("Analyze %s for %s.", st.CompanyOfInterest, st.TradeDate)),
		}
	}
}

func researcherPrompt(role, stance string) func(*models.AnalysisState) []*schema.Message {
	return func(st *models.AnalysisState) []*schema.Message {
		system := fmt.Sprintf(`%s

You are the %s. %s Argue from the analyst reports below and respond to the
debate so far.`, teamPreamble, role, stance)
		return []*schema.Message{
			schema.SystemMessage(system),
			schema.UserMessage(fmt.Sprintf("Analyst reports:\n%s\n\nDebate so far:\n%s",
				analystDigest(st), st.InvestmentDebateState.History)),
		}
	}
}

func researchManagerPrompt(st *models.AnalysisState) []*schema.Message {
	system := teamPreamble + `

You are the Research Manager. Weigh the bull and bear arguments and issue the
research team's investment plan with a clear recommendation.`
	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(fmt.Sprintf("Analyst reports:\n%s\n\nDebate transcript:\n%s",
			analystDigest(st), st.InvestmentDebateState.History)),
	}
}

func traderPrompt(st *models.AnalysisState) []*schema.Message {
	system := teamPreamble + `

You are the Trader. Turn the research team's investment plan into a concrete
trading plan: sizing, entry, and exit considerations.`
	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(fmt.Sprintf("Investment plan for %s:\n%s",
			st.CompanyOfInterest, st.InvestmentPlan)),
	}
}

func riskDebaterPrompt(role, stance string) func(*models.AnalysisState) []*schema.Message {
	return func(st *models.AnalysisState) []*schema.Message {
		system := fmt.Sprintf(`%s

You are the %s on the risk management team. %s`, teamPreamble, role, stance)
		return []*schema.Message{
			schema.SystemMessage(system),
			schema.UserMessage(fmt.Sprintf("Trading plan:\n%s\n\nRisk discussion so far:\n%s",
				st.TraderInvestmentPlan, st.RiskDebateState.History)),
		}
	}
}

func riskJudgePrompt(st *models.AnalysisState) []*schema.Message {
	system := teamPreamble + `

You are the Risk Judge of the portfolio management team. Weigh the risk
discussion and issue the final trade decision. End with
FINAL TRANSACTION PROPOSAL: **BUY/HOLD/SELL**.`
	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(fmt.Sprintf("Trading plan:\n%s\n\nRisk discussion:\n%s",
			st.TraderInvestmentPlan, st.RiskDebateState.History)),
	}
}

func analystDigest(st *models.AnalysisState) string {
	var parts []string
	add := func(label, body string) {
		if strings.TrimSpace(body) != "" {
			parts = append(parts, label+":\n"+body)
		}
	}
	add("Market report", st.MarketReport)
	add("Sentiment report", st.SentimentReport)
	add("News report", st.NewsReport)
	add("Fundamentals report", st.FundamentalsReport)
	if len(parts) == 0 {
		return "(no analyst reports available)"
	}
	return strings.Join(parts, "\n\n")
}
