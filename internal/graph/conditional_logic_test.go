package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradepulse/tradepulse/consts"
	"github.com/tradepulse/tradepulse/models"
)

func debateState(count int) *models.AnalysisState {
	st := models.NewAnalysisState("AAPL", "2026-05-10")
	st.InvestmentDebateState.Count = count
	return st
}

func riskState(count int, latest string) *models.AnalysisState {
	st := models.NewAnalysisState("AAPL", "2026-05-10")
	st.RiskDebateState.Count = count
	st.RiskDebateState.LatestSpeaker = latest
	return st
}

func TestNextDebaterAlternatesUntilRoundsSpent(t *testing.T) {
	cl := NewConditionalLogic(2, 1)

	assert.Equal(t, consts.BullResearcher, cl.NextDebater(debateState(0)))
	assert.Equal(t, consts.BearResearcher, cl.NextDebater(debateState(1)))
	assert.Equal(t, consts.BullResearcher, cl.NextDebater(debateState(2)))
	assert.Equal(t, consts.BearResearcher, cl.NextDebater(debateState(3)))
	assert.Equal(t, consts.ResearchManager, cl.NextDebater(debateState(4)))
}

func TestNextRiskSpeakerRotatesThenJudges(t *testing.T) {
	cl := NewConditionalLogic(1, 1)

	assert.Equal(t, consts.RiskyAnalyst, cl.NextRiskSpeaker(riskState(0, "")))
	assert.Equal(t, consts.SafeAnalyst, cl.NextRiskSpeaker(riskState(1, consts.RiskyAnalyst)))
	assert.Equal(t, consts.NeutralAnalyst, cl.NextRiskSpeaker(riskState(2, consts.SafeAnalyst)))
	assert.Equal(t, consts.RiskJudge, cl.NextRiskSpeaker(riskState(3, consts.NeutralAnalyst)))
}

func TestRiskRotationWrapsWithExtraRounds(t *testing.T) {
	cl := NewConditionalLogic(1, 2)

	assert.Equal(t, consts.RiskyAnalyst, cl.NextRiskSpeaker(riskState(3, consts.NeutralAnalyst)))
	assert.Equal(t, consts.RiskJudge, cl.NextRiskSpeaker(riskState(6, consts.NeutralAnalyst)))
}
