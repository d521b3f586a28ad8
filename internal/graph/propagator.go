package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/models"
)

// Propagator owns state construction and the engine-side execution
// parameters for one graph run.
type Propagator struct {
	cfg *config.Config
}

func NewPropagator(cfg *config.Config) *Propagator {
	return &Propagator{cfg: cfg}
}

// CreateInitialState seeds the shared state with the ticker and trade date.
// Inputs are expected to be pre-validated; this only rejects malformed values.
func (p *Propagator) CreateInitialState(ticker, date string) (*models.AnalysisState, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("ticker must not be empty")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid trade date %q: %w", date, err)
	}
	return models.NewAnalysisState(ticker, date), nil
}

// GraphArgs supplies the execution options for the compiled graph, including
// the recursion ceiling that bounds every run.
func (p *Propagator) GraphArgs() []compose.Option {
	return []compose.Option{
		compose.WithRuntimeMaxSteps(p.cfg.MaxRecurLimit),
	}
}
