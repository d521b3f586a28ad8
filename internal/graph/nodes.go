package graph

import (
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/tradepulse/tradepulse/consts"
	"github.com/tradepulse/tradepulse/models"
)

// nodeSpec describes one agent node: which thinker it uses, how it prompts
// the model, and how its answer lands in the shared state (including the
// Goto handoff the branch router follows).
type nodeSpec struct {
	name   string
	deep   bool
	prompt func(*models.AnalysisState) []*schema.Message
	record func(*models.AnalysisState, string)
}

func (tg *TradingGraph) nodeSpecs() []nodeSpec {
	specs := make([]nodeSpec, 0, len(tg.rc.Analysts)+8)
	for i, analyst := range tg.rc.Analysts {
		specs = append(specs, tg.analystSpec(i, analyst))
	}
	specs = append(specs,
		tg.debaterSpec(consts.BullResearcher, "Bull Researcher",
			"Build the strongest bullish case for the investment.", recordBull),
		tg.debaterSpec(consts.BearResearcher, "Bear Researcher",
			"Build the strongest bearish case against the investment.", recordBear),
		nodeSpec{
			name:   consts.ResearchManager,
			deep:   true,
			prompt: researchManagerPrompt,
			record: func(st *models.AnalysisState, content string) {
				st.InvestmentDebateState.JudgeDecision = content
				st.InvestmentPlan = content
				st.Goto = consts.Trader
			},
		},
		nodeSpec{
			name:   consts.Trader,
			prompt: traderPrompt,
			record: func(st *models.AnalysisState, content string) {
				st.TraderInvestmentPlan = content
				st.Goto = consts.RiskyAnalyst
			},
		},
		tg.riskSpec(consts.RiskyAnalyst, "Risky Analyst",
			"Advocate for the aggressive, high-reward reading of the plan.",
			func(r *models.RiskDebateState, content string) {
				r.RiskyHistory = appendLine(r.RiskyHistory, "Risky: "+content)
				r.CurrentRiskyResponse = content
			}),
		tg.riskSpec(consts.SafeAnalyst, "Safe Analyst",
			"Advocate for capital preservation and the conservative reading.",
			func(r *models.RiskDebateState, content string) {
				r.SafeHistory = appendLine(r.SafeHistory, "Safe: "+content)
				r.CurrentSafeResponse = content
			}),
		tg.riskSpec(consts.NeutralAnalyst, "Neutral Analyst",
			"Weigh both extremes and point out what each side overlooks.",
			func(r *models.RiskDebateState, content string) {
				r.NeutralHistory = appendLine(r.NeutralHistory, "Neutral: "+content)
				r.CurrentNeutralResponse = content
			}),
		nodeSpec{
			name:   consts.RiskJudge,
			deep:   true,
			prompt: riskJudgePrompt,
			record: func(st *models.AnalysisState, content string) {
				st.RiskDebateState.JudgeDecision = content
				st.FinalTradeDecision = content
				st.Goto = compose.END
			},
		},
	)
	return specs
}

func (tg *TradingGraph) analystSpec(idx int, analyst consts.AnalystType) nodeSpec {
	next := consts.BullResearcher
	if idx+1 < len(tg.rc.Analysts) {
		next = tg.rc.Analysts[idx+1].Node()
	}

	var prompt func(*models.AnalysisState) []*schema.Message
	var set func(*models.AnalysisState, string)
	switch analyst {
	case consts.AnalystMarket:
		prompt = analystPrompt("Market Analyst",
			"Focus on price action, trends, volatility, and technical indicators.")
		set = func(st *models.AnalysisState, c string) { st.MarketReport = c }
	case consts.AnalystSocial:
		prompt = analystPrompt("Social Analyst",
			"Focus on social media sentiment and public perception of the company.")
		set = func(st *models.AnalysisState, c string) { st.SentimentReport = c }
	case consts.AnalystNews:
		prompt = analystPrompt("News Analyst",
			"Focus on recent news, macro events, and their market impact.")
		set = func(st *models.AnalysisState, c string) { st.NewsReport = c }
	default:
		prompt = analystPrompt("Fundamentals Analyst",
			"Focus on financial statements, valuation, and company fundamentals.")
		set = func(st *models.AnalysisState, c string) { st.FundamentalsReport = c }
	}

	return nodeSpec{
		name:   analyst.Node(),
		prompt: prompt,
		record: func(st *models.AnalysisState, content string) {
			set(st, content)
			st.Goto = next
		},
	}
}

func (tg *TradingGraph) debaterSpec(node, role, stance string, record func(*TradingGraph, *models.AnalysisState, string)) nodeSpec {
	return nodeSpec{
		name:   node,
		prompt: researcherPrompt(role, stance),
		record: func(st *models.AnalysisState, content string) {
			record(tg, st, content)
		},
	}
}

func recordBull(tg *TradingGraph, st *models.AnalysisState, content string) {
	d := st.InvestmentDebateState
	d.BullHistory = appendLine(d.BullHistory, "Bull: "+content)
	d.History = appendLine(d.History, "Bull: "+content)
	d.CurrentResponse = content
	d.Count++
	st.Goto = tg.cl.NextDebater(st)
}

func recordBear(tg *TradingGraph, st *models.AnalysisState, content string) {
	d := st.InvestmentDebateState
	d.BearHistory = appendLine(d.BearHistory, "Bear: "+content)
	d.History = appendLine(d.History, "Bear: "+content)
	d.CurrentResponse = content
	d.Count++
	st.Goto = tg.cl.NextDebater(st)
}

func (tg *TradingGraph) riskSpec(node, role, stance string, apply func(*models.RiskDebateState, string)) nodeSpec {
	return nodeSpec{
		name:   node,
		prompt: riskDebaterPrompt(role, stance),
		record: func(st *models.AnalysisState, content string) {
			r := st.RiskDebateState
			apply(r, content)
			r.History = appendLine(r.History, role+": "+content)
			r.LatestSpeaker = node
			r.Count++
			st.Goto = tg.cl.NextRiskSpeaker(st)
		},
	}
}

func appendLine(history, line string) string {
	if history == "" {
		return line
	}
	return history + "\n" + line
}
