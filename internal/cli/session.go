package cli

import (
	"context"
	"time"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/internal/graph"
	"github.com/tradepulse/tradepulse/internal/orchestration"
)

// interactivePacing slows the live feed so updates read as a conversation
// rather than a dump.
const interactivePacing = time.Second

// RunInteractive loops prompt, run, render until the user exits.
func RunInteractive(ctx context.Context, cfg *config.Config) error {
	displayWelcome()

	for {
		req, err := CollectRequest(cfg)
		if err != nil {
			return err
		}

		rc, err := orchestration.BuildRunConfig(req, cfg)
		if err != nil {
			displayError(err)
			continue
		}

		displaySummary(rc)
		confirmed, err := promptConfirm()
		if err != nil {
			return err
		}
		if !confirmed {
			continue
		}

		if err := runLive(ctx, cfg, rc); err != nil {
			displayError(err)
		}

		again, err := promptAgain()
		if err != nil || !again {
			return err
		}
	}
}

// runLive streams one analysis run to the terminal.
func runLive(ctx context.Context, cfg *config.Config, rc *orchestration.RunConfig) error {
	engine, err := graph.NewTradingGraph(ctx, rc, cfg)
	if err != nil {
		return err
	}

	orch := orchestration.New(engine,
		orchestration.WithPacing(interactivePacing),
		orchestration.WithDebug(cfg.Debug))

	for ev := range orch.Stream(ctx, rc) {
		switch ev.Type {
		case orchestration.EventMessage:
			displayMessage(ev.Message)
		case orchestration.EventUpdate:
			displayUpdate(*ev.Update)
		case orchestration.EventComplete:
			displayReport(ev.Report)
			displayDecision(ev.Decision)
		case orchestration.EventError:
			return ev.Err
		}
	}
	return ctx.Err()
}
