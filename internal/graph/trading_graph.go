package graph

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/internal/orchestration"
	"github.com/tradepulse/tradepulse/internal/processing"
	"github.com/tradepulse/tradepulse/models"
)

// TradingGraph is the eino-backed workflow engine for one run configuration.
// It wires the selected analysts, the bull/bear debate, the trading desk, and
// the risk team into a branching graph over a shared AnalysisState.
type TradingGraph struct {
	cfg    *config.Config
	rc     *orchestration.RunConfig
	prop   *Propagator
	cl     *ConditionalLogic
	quick  model.BaseChatModel
	deep   model.BaseChatModel
	signal *processing.SignalProcessor
}

// NewTradingGraph builds the engine for rc. Both thinker models are created
// up front so a bad credential fails the run before any graph executes.
func NewTradingGraph(ctx context.Context, rc *orchestration.RunConfig, cfg *config.Config) (*TradingGraph, error) {
	quick, err := NewChatModel(ctx, rc, cfg, rc.QuickThinkLLM)
	if err != nil {
		return nil, fmt.Errorf("quick thinker: %w", err)
	}
	deep, err := NewChatModel(ctx, rc, cfg, rc.DeepThinkLLM)
	if err != nil {
		return nil, fmt.Errorf("deep thinker: %w", err)
	}
	return &TradingGraph{
		cfg:    cfg,
		rc:     rc,
		prop:   NewPropagator(cfg),
		cl:     NewConditionalLogic(rc.DebateRounds, rc.RiskRounds),
		quick:  quick,
		deep:   deep,
		signal: processing.NewSignalProcessor(),
	}, nil
}

func (tg *TradingGraph) CreateInitialState(ticker, date string) (*models.AnalysisState, error) {
	return tg.prop.CreateInitialState(ticker, date)
}

func (tg *TradingGraph) GraphArgs() []compose.Option {
	return tg.prop.GraphArgs()
}

func (tg *TradingGraph) ProcessSignal(text string) models.Decision {
	return tg.signal.ExtractDecision(text)
}

// Stream compiles the graph around init and runs it in the background. Each
// node pushes a deep copy of the state after it records its result, so the
// returned stream never observes in-flight mutation.
func (tg *TradingGraph) Stream(ctx context.Context, init *models.AnalysisState, opts ...compose.Option) (orchestration.SnapshotStream, error) {
	runCtx, cancel := context.WithCancel(ctx)
	ch := make(chan *models.AnalysisState)
	ss := &stateStream{ch: ch, cancel: cancel}

	emit := func(ctx context.Context, snap *models.AnalysisState) error {
		select {
		case ch <- snap:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	runnable, err := tg.compile(runCtx, init, emit)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("compile analysis graph: %w", err)
	}

	go func() {
		defer close(ch)
		if _, err := runnable.Invoke(runCtx, "", opts...); err != nil && runCtx.Err() == nil {
			ss.fail(err)
		}
	}()
	return ss, nil
}

func (tg *TradingGraph) compile(ctx context.Context, init *models.AnalysisState, emit emitFunc) (compose.Runnable[string, string], error) {
	g := compose.NewGraph[string, string](
		compose.WithGenLocalState(func(ctx context.Context) *models.AnalysisState {
			return init
		}),
	)

	specs := tg.nodeSpecs()
	outMap := map[string]bool{compose.END: true}
	for _, spec := range specs {
		outMap[spec.name] = true
	}

	for _, spec := range specs {
		_ = g.AddLambdaNode(spec.name, tg.agentLambda(spec, emit), compose.WithNodeName(spec.name))
	}

	_ = g.AddEdge(compose.START, tg.rc.Analysts[0].Node())
	for _, spec := range specs {
		_ = g.AddBranch(spec.name, compose.NewGraphBranch(agentHandOff, outMap))
	}

	return g.Compile(ctx,
		compose.WithGraphName("TradePulse-Analysis"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
	)
}

type emitFunc func(context.Context, *models.AnalysisState) error

// agentLambda runs one agent turn: prompt from state, one model call, record
// the answer, then hand a snapshot to the stream.
func (tg *TradingGraph) agentLambda(spec nodeSpec, emit emitFunc) *compose.Lambda {
	cm := tg.quick
	if spec.deep {
		cm = tg.deep
	}
	return compose.InvokableLambda(func(ctx context.Context, _ string) (string, error) {
		var msgs []*schema.Message
		if err := compose.ProcessState[*models.AnalysisState](ctx, func(_ context.Context, st *models.AnalysisState) error {
			msgs = spec.prompt(st)
			return nil
		}); err != nil {
			return "", err
		}

		out, err := cm.Generate(ctx, msgs)
		if err != nil {
			return "", fmt.Errorf("%s: %w", spec.name, err)
		}

		var next string
		var snap *models.AnalysisState
		if err := compose.ProcessState[*models.AnalysisState](ctx, func(_ context.Context, st *models.AnalysisState) error {
			spec.record(st, out.Content)
			st.Messages = append(st.Messages, schema.AssistantMessage(out.Content, nil))
			next = st.Goto
			snap = st.Clone()
			return nil
		}); err != nil {
			return "", err
		}

		if err := emit(ctx, snap); err != nil {
			return "", err
		}
		return next, nil
	})
}

// agentHandOff routes to the successor the finished node recorded in Goto.
func agentHandOff(ctx context.Context, input string) (string, error) {
	next := input
	_ = compose.ProcessState[*models.AnalysisState](ctx, func(_ context.Context, st *models.AnalysisState) error {
		if st.Goto != "" {
			next = st.Goto
		}
		return nil
	})
	return next, nil
}

// stateStream adapts the emit channel to the orchestrator's pull contract.
type stateStream struct {
	ch     chan *models.AnalysisState
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

func (s *stateStream) Recv() (*models.AnalysisState, error) {
	snap, ok := <-s.ch
	if !ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	return snap, nil
}

func (s *stateStream) Close() {
	s.cancel()
}

func (s *stateStream) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
