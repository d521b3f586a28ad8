package orchestration

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/internal/processing"
	"github.com/tradepulse/tradepulse/models"
)

// scriptedEngine replays a fixed snapshot sequence and optionally ends it
// with a fault instead of a clean completion.
type scriptedEngine struct {
	snapshots []*models.AnalysisState
	fault     error
	signal    *processing.SignalProcessor
}

func (e *scriptedEngine) CreateInitialState(ticker, date string) (*models.AnalysisState, error) {
	return models.NewAnalysisState(ticker, date), nil
}

func (e *scriptedEngine) GraphArgs() []compose.Option {
	return nil
}

func (e *scriptedEngine) Stream(ctx context.Context, init *models.AnalysisState, opts ...compose.Option) (SnapshotStream, error) {
	return &scriptedStream{engine: e}, nil
}

func (e *scriptedEngine) ProcessSignal(text string) models.Decision {
	if e.signal == nil {
		e.signal = processing.NewSignalProcessor()
	}
	return e.signal.ExtractDecision(text)
}

type scriptedStream struct {
	engine *scriptedEngine
	pos    int
}

func (s *scriptedStream) Recv() (*models.AnalysisState, error) {
	if s.pos < len(s.engine.snapshots) {
		snap := s.engine.snapshots[s.pos]
		s.pos++
		return snap, nil
	}
	if s.engine.fault != nil {
		return nil, s.engine.fault
	}
	return nil, io.EOF
}

func (s *scriptedStream) Close() {}

func testRunConfig(t *testing.T) *RunConfig {
	t.Helper()
	rc, err := BuildRunConfig(baseRequest(), config.DefaultConfigWithRoot(t.TempDir()))
	require.NoError(t, err)
	return rc
}

func progressedSnapshots() []*models.AnalysisState {
	first := models.NewAnalysisState("AAPL", "2024-03-15")
	first.MarketReport = "Momentum is positive."

	second := first.Clone()
	second.NewsReport = "Earnings beat expectations."

	third := second.Clone()
	third.FinalTradeDecision = "FINAL TRANSACTION PROPOSAL: **BUY**"

	return []*models.AnalysisState{first, second, third}
}

func TestRunCompletes(t *testing.T) {
	engine := &scriptedEngine{snapshots: progressedSnapshots()}
	o := New(engine)

	res, err := o.Run(context.Background(), testRunConfig(t), nil)
	require.NoError(t, err)

	// One update per non-empty field per snapshot: 1 + 2 + 3.
	assert.Len(t, res.Updates, 6)
	assert.Equal(t, models.DecisionBuy, res.Decision)
	require.NotNil(t, res.Report)
	assert.Equal(t, SectionAnalystTeam, res.Report.Sections[0].Title)
}

func TestRunFaultPreservesDeliveredUpdates(t *testing.T) {
	engine := &scriptedEngine{
		snapshots: progressedSnapshots(),
		fault:     errors.New("node exploded"),
	}
	o := New(engine)

	res, err := o.Run(context.Background(), testRunConfig(t), nil)

	var wfe *WorkflowExecutionError
	require.ErrorAs(t, err, &wfe)
	assert.Equal(t, "node exploded", wfe.Err.Error())

	// Updates from all three snapshots were delivered before the fault
	// surfaced; the run is never coerced into a success.
	assert.Len(t, res.Updates, 6)
	assert.Nil(t, res.Report)
	assert.Equal(t, models.DecisionUnknown, res.Decision)
}

func TestRunEmptyStreamIsNoState(t *testing.T) {
	engine := &scriptedEngine{}
	o := New(engine)

	res, err := o.Run(context.Background(), testRunConfig(t), nil)

	var nse *NoStateError
	require.ErrorAs(t, err, &nse)
	assert.Empty(t, res.Updates)
	assert.Nil(t, res.Report)
}

func TestRunSinkFailureAborts(t *testing.T) {
	engine := &scriptedEngine{snapshots: progressedSnapshots()}
	o := New(engine)

	sinkErr := errors.New("client went away")
	calls := 0
	_, err := o.Run(context.Background(), testRunConfig(t), func(Update) error {
		calls++
		if calls == 2 {
			return sinkErr
		}
		return nil
	})

	require.ErrorIs(t, err, sinkErr)
	assert.Equal(t, 2, calls)
}

func TestStreamDeliversUpdatesThenTerminal(t *testing.T) {
	engine := &scriptedEngine{snapshots: progressedSnapshots()}
	o := New(engine)

	var updates, terminals int
	var last Event
	for ev := range o.Stream(context.Background(), testRunConfig(t)) {
		switch ev.Type {
		case EventUpdate:
			updates++
			assert.Zero(t, terminals, "update after terminal event")
		case EventComplete, EventError:
			terminals++
		}
		last = ev
	}

	assert.Equal(t, 6, updates)
	assert.Equal(t, 1, terminals)
	require.Equal(t, EventComplete, last.Type)
	assert.Equal(t, models.DecisionBuy, last.Decision)
	require.NotNil(t, last.Report)
}

func TestStreamTerminalErrorOnFault(t *testing.T) {
	engine := &scriptedEngine{
		snapshots: progressedSnapshots(),
		fault:     errors.New("quota exhausted"),
	}
	o := New(engine)

	var last Event
	for ev := range o.Stream(context.Background(), testRunConfig(t)) {
		last = ev
	}

	require.Equal(t, EventError, last.Type)
	var wfe *WorkflowExecutionError
	require.ErrorAs(t, last.Err, &wfe)
}

func TestStreamStopsOnCancellation(t *testing.T) {
	engine := &scriptedEngine{snapshots: progressedSnapshots()}
	o := New(engine, WithPacing(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	events := o.Stream(ctx, testRunConfig(t))

	// Take the first event, then disconnect.
	<-events
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("stream did not close after cancellation")
		}
	}
}

func TestStreamPacingBetweenSnapshots(t *testing.T) {
	engine := &scriptedEngine{snapshots: progressedSnapshots()}
	o := New(engine, WithPacing(20*time.Millisecond))

	start := time.Now()
	for range o.Stream(context.Background(), testRunConfig(t)) {
	}
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}
