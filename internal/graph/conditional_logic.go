package graph

import (
	"github.com/tradepulse/tradepulse/consts"
	"github.com/tradepulse/tradepulse/models"
)

// ConditionalLogic decides when the debate and risk discussion cycles stop.
type ConditionalLogic struct {
	MaxDebateRounds      int
	MaxRiskDiscussRounds int
}

// NewConditionalLogic derives the round caps from the run configuration.
func NewConditionalLogic(debateRounds, riskRounds int) *ConditionalLogic {
	return &ConditionalLogic{
		MaxDebateRounds:      debateRounds,
		MaxRiskDiscussRounds: riskRounds,
	}
}

// ShouldContinueDebate reports whether the bull/bear exchange has more turns
// left. One round is a bull statement plus a bear statement.
func (cl *ConditionalLogic) ShouldContinueDebate(state *models.AnalysisState) bool {
	return state.InvestmentDebateState.Count < 2*cl.MaxDebateRounds
}

// NextDebater alternates bull and bear by exchange parity.
func (cl *ConditionalLogic) NextDebater(state *models.AnalysisState) string {
	if !cl.ShouldContinueDebate(state) {
		return consts.ResearchManager
	}
	if state.InvestmentDebateState.Count%2 == 0 {
		return consts.BullResearcher
	}
	return consts.BearResearcher
}

// ShouldContinueRiskDiscussion reports whether the three-way risk exchange
// has more turns left. One round is one statement from each analyst.
func (cl *ConditionalLogic) ShouldContinueRiskDiscussion(state *models.AnalysisState) bool {
	return state.RiskDebateState.Count < 3*cl.MaxRiskDiscussRounds
}

// NextRiskSpeaker rotates risky, safe, neutral until the rounds are spent.
func (cl *ConditionalLogic) NextRiskSpeaker(state *models.AnalysisState) string {
	if !cl.ShouldContinueRiskDiscussion(state) {
		return consts.RiskJudge
	}
	switch state.RiskDebateState.LatestSpeaker {
	case consts.RiskyAnalyst:
		return consts.SafeAnalyst
	case consts.SafeAnalyst:
		return consts.NeutralAnalyst
	case consts.NeutralAnalyst:
		return consts.RiskyAnalyst
	default:
		return consts.RiskyAnalyst
	}
}
