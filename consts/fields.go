package consts

// State field identifiers. These are the names the relay and the report
// assembler key on; their order in ReportFieldOrder is the fixed emission
// order for progress updates.
const (
	FieldMarketReport         = "market_report"
	FieldSentimentReport      = "sentiment_report"
	FieldNewsReport           = "news_report"
	FieldFundamentalsReport   = "fundamentals_report"
	FieldInvestmentDebate     = "investment_debate_state"
	FieldInvestmentPlan       = "investment_plan"
	FieldTraderInvestmentPlan = "trader_investment_plan"
	FieldRiskDebate           = "risk_debate_state"
	FieldFinalTradeDecision   = "final_trade_decision"
)

// ReportFieldOrder is the canonical field order used when emitting updates
// for a state snapshot. It does not depend on which fields happen to be
// populated.
var ReportFieldOrder = []string{
	FieldMarketReport,
	FieldSentimentReport,
	FieldNewsReport,
	FieldFundamentalsReport,
	FieldInvestmentDebate,
	FieldInvestmentPlan,
	FieldTraderInvestmentPlan,
	FieldRiskDebate,
	FieldFinalTradeDecision,
}
