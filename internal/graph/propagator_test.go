package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/consts"
)

func TestCreateInitialStateSeedsRun(t *testing.T) {
	p := NewPropagator(config.DefaultConfig())

	st, err := p.CreateInitialState("NVDA", "2026-05-10")
	require.NoError(t, err)

	assert.Equal(t, "NVDA", st.CompanyOfInterest)
	assert.Equal(t, "2026-05-10", st.TradeDate)
	assert.Equal(t, consts.MarketAnalyst, st.Goto)
	require.Len(t, st.Messages, 1)
	assert.Contains(t, st.Messages[0].Content, "NVDA")
}

func TestCreateInitialStateRejectsBadInput(t *testing.T) {
	p := NewPropagator(config.DefaultConfig())

	_, err := p.CreateInitialState("  ", "2026-05-10")
	assert.Error(t, err)

	_, err = p.CreateInitialState("NVDA", "05/10/2026")
	assert.Error(t, err)
}

func TestGraphArgsCarryRecursionCeiling(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxRecurLimit = 42

	assert.Len(t, NewPropagator(cfg).GraphArgs(), 1)
}
