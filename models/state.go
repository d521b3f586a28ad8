package models

import (
	"strconv"

	"github.com/cloudwego/eino/schema"

	"github.com/tradepulse/tradepulse/consts"
)

// DebateState carries the bull/bear research debate as it evolves.
type DebateState struct {
	BullHistory     string `json:"bull_history"`
	BearHistory     string `json:"bear_history"`
	History         string `json:"history"`
	CurrentResponse string `json:"current_response"`
	JudgeDecision   string `json:"judge_decision"`
	Count           int    `json:"count"`
}

// RiskDebateState carries the three-way risk discussion as it evolves.
type RiskDebateState struct {
	RiskyHistory           string `json:"risky_history"`
	SafeHistory            string `json:"safe_history"`
	NeutralHistory         string `json:"neutral_history"`
	History                string `json:"history"`
	LatestSpeaker          string `json:"latest_speaker"`
	CurrentRiskyResponse   string `json:"current_risky_response"`
	CurrentSafeResponse    string `json:"current_safe_response"`
	CurrentNeutralResponse string `json:"current_neutral_response"`
	JudgeDecision          string `json:"judge_decision"`
	Count                  int    `json:"count"`
}

// AnalysisState is the shared record the workflow engine fills in as the run
// progresses. It is a closed set of fields rather than an open map, so that
// every field the relay and the report assembler key on exists by
// construction.
type AnalysisState struct {
	Messages          []*schema.Message `json:"messages"`
	CompanyOfInterest string            `json:"company_of_interest"`
	TradeDate         string            `json:"trade_date"`

	MarketReport       string `json:"market_report"`
	SentimentReport    string `json:"sentiment_report"`
	NewsReport         string `json:"news_report"`
	FundamentalsReport string `json:"fundamentals_report"`

	InvestmentDebateState *DebateState     `json:"investment_debate_state"`
	RiskDebateState       *RiskDebateState `json:"risk_debate_state"`

	InvestmentPlan       string `json:"investment_plan"`
	TraderInvestmentPlan string `json:"trader_investment_plan"`
	FinalTradeDecision   string `json:"final_trade_decision"`

	Goto string `json:"goto"`
}

// NewAnalysisState seeds a fresh state for one run.
func NewAnalysisState(ticker, tradeDate string) *AnalysisState {
	return &AnalysisState{
		Messages: []*schema.Message{
			schema.UserMessage("Analyze trading opportunities for " + ticker + " on " + tradeDate),
		},
		CompanyOfInterest:     ticker,
		TradeDate:             tradeDate,
		InvestmentDebateState: &DebateState{},
		RiskDebateState:       &RiskDebateState{},
		Goto:                  consts.MarketAnalyst,
	}
}

// Clone returns a snapshot copy. The engine hands these out so the
// orchestration loop never observes a live, still-mutating record.
func (s *AnalysisState) Clone() *AnalysisState {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Messages = make([]*schema.Message, len(s.Messages))
	copy(cp.Messages, s.Messages)
	if s.InvestmentDebateState != nil {
		d := *s.InvestmentDebateState
		cp.InvestmentDebateState = &d
	}
	if s.RiskDebateState != nil {
		r := *s.RiskDebateState
		cp.RiskDebateState = &r
	}
	return &cp
}

// FieldEntry is one key/value pair of a structured state field.
type FieldEntry struct {
	Key   string
	Value string
}

// FieldView is a read-only view of one named state field. Text is set for
// plain string fields; Entries for structured sub-records.
type FieldView struct {
	Name    string
	Text    string
	Entries []FieldEntry
}

// Empty reports whether the field carries no content yet.
func (f FieldView) Empty() bool {
	if f.Text != "" {
		return false
	}
	for _, e := range f.Entries {
		if e.Value != "" && e.Value != "0" {
			return false
		}
	}
	return true
}

// ReportFields enumerates the reportable fields in the canonical relay order,
// populated or not. Structured fields render every key in declaration order.
func (s *AnalysisState) ReportFields() []FieldView {
	views := []FieldView{
		{Name: consts.FieldMarketReport, Text: s.MarketReport},
		{Name: consts.FieldSentimentReport, Text: s.SentimentReport},
		{Name: consts.FieldNewsReport, Text: s.NewsReport},
		{Name: consts.FieldFundamentalsReport, Text: s.FundamentalsReport},
		{Name: consts.FieldInvestmentDebate, Entries: debateEntries(s.InvestmentDebateState)},
		{Name: consts.FieldInvestmentPlan, Text: s.InvestmentPlan},
		{Name: consts.FieldTraderInvestmentPlan, Text: s.TraderInvestmentPlan},
		{Name: consts.FieldRiskDebate, Entries: riskEntries(s.RiskDebateState)},
		{Name: consts.FieldFinalTradeDecision, Text: s.FinalTradeDecision},
	}
	return views
}

// LatestMessage returns the content of the newest transcript message.
func (s *AnalysisState) LatestMessage() (string, bool) {
	if len(s.Messages) == 0 {
		return "", false
	}
	last := s.Messages[len(s.Messages)-1]
	if last == nil || last.Content == "" {
		return "", false
	}
	return last.Content, true
}

func debateEntries(d *DebateState) []FieldEntry {
	if d == nil {
		return nil
	}
	return []FieldEntry{
		{Key: "bull_history", Value: d.BullHistory},
		{Key: "bear_history", Value: d.BearHistory},
		{Key: "history", Value: d.History},
		{Key: "current_response", Value: d.CurrentResponse},
		{Key: "judge_decision", Value: d.JudgeDecision},
		{Key: "count", Value: strconv.Itoa(d.Count)},
	}
}

func riskEntries(r *RiskDebateState) []FieldEntry {
	if r == nil {
		return nil
	}
	return []FieldEntry{
		{Key: "risky_history", Value: r.RiskyHistory},
		{Key: "safe_history", Value: r.SafeHistory},
		{Key: "neutral_history", Value: r.NeutralHistory},
		{Key: "history", Value: r.History},
		{Key: "latest_speaker", Value: r.LatestSpeaker},
		{Key: "current_risky_response", Value: r.CurrentRiskyResponse},
		{Key: "current_safe_response", Value: r.CurrentSafeResponse},
		{Key: "current_neutral_response", Value: r.CurrentNeutralResponse},
		{Key: "judge_decision", Value: r.JudgeDecision},
		{Key: "count", Value: strconv.Itoa(r.Count)},
	}
}
