// Package orchestration drives one analysis run: it validates the request
// into a RunConfig, consumes the workflow engine's state snapshots, relays
// progress updates, and assembles the final report and decision.
package orchestration

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/tradepulse/tradepulse/models"
)

// SnapshotStream is an ordered, finite sequence of state snapshots. Recv
// returns io.EOF when the workflow ran to completion, or the execution fault
// that ended it early. Close releases the underlying execution.
type SnapshotStream interface {
	Recv() (*models.AnalysisState, error)
	Close()
}

// Engine is the narrow contract the orchestrator consumes from the workflow
// engine. The engine owns the agent graph, its LLM calls, and its bounded
// recursion; this layer only starts it and drains its snapshots.
type Engine interface {
	CreateInitialState(ticker, date string) (*models.AnalysisState, error)
	GraphArgs() []compose.Option
	Stream(ctx context.Context, init *models.AnalysisState, opts ...compose.Option) (SnapshotStream, error)
	ProcessSignal(text string) models.Decision
}

// EventType discriminates streamed run events.
type EventType string

const (
	EventMessage  EventType = "message"  // new transcript message
	EventUpdate   EventType = "update"   // progress update for one state field
	EventComplete EventType = "complete" // terminal: report + decision
	EventError    EventType = "error"    // terminal: run failed
)

// Event is one element of the live run feed. Exactly one terminal event
// (complete or error) ends every feed that is not cancelled.
type Event struct {
	Type     EventType
	Message  string
	Update   *Update
	Report   *models.Report
	Decision models.Decision
	Err      error
}

// Orchestrator runs analysis runs against an Engine. It holds no per-run
// state; each run's state lives in its own call.
type Orchestrator struct {
	engine Engine
	pacing time.Duration
	debug  bool
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithPacing inserts a fixed delay between snapshot deliveries, independent
// of the engine's production rate.
func WithPacing(d time.Duration) Option {
	return func(o *Orchestrator) { o.pacing = d }
}

// WithDebug enables run lifecycle logging.
func WithDebug(debug bool) Option {
	return func(o *Orchestrator) { o.debug = debug }
}

// New creates an orchestrator over engine.
func New(engine Engine, opts ...Option) *Orchestrator {
	o := &Orchestrator{engine: engine}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Stream executes the run and delivers its events on the returned channel:
// zero or more message/update events in production order, then exactly one
// complete or error event. The channel closes after the terminal event, or
// without one if ctx is cancelled first; no event is delivered after
// cancellation is observed.
func (o *Orchestrator) Stream(ctx context.Context, rc *RunConfig) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		o.drive(ctx, rc, func(ev Event) bool {
			select {
			case out <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return out
}

// UpdateSink receives relay updates as they are emitted. A sink error is a
// transport failure: it aborts the run immediately and is not retried.
type UpdateSink func(Update) error

// RunResult is the one-shot outcome of a completed run.
type RunResult struct {
	Report   *models.Report
	Decision models.Decision
	Updates  []Update
}

// Run executes the run to completion and returns the report, the decision,
// and the ordered log of every update emitted along the way. sink, when
// non-nil, observes each update live. Partial updates are preserved in the
// result even when the run ends in an error.
func (o *Orchestrator) Run(ctx context.Context, rc *RunConfig, sink UpdateSink) (*RunResult, error) {
	res := &RunResult{Decision: models.DecisionUnknown}
	var sinkErr, termErr error
	completed := false

	o.drive(ctx, rc, func(ev Event) bool {
		if ctx.Err() != nil {
			return false
		}
		switch ev.Type {
		case EventUpdate:
			res.Updates = append(res.Updates, *ev.Update)
			if sink != nil {
				if err := sink(*ev.Update); err != nil {
					sinkErr = err
					return false
				}
			}
		case EventComplete:
			res.Report = ev.Report
			res.Decision = ev.Decision
			completed = true
		case EventError:
			termErr = ev.Err
		}
		return true
	})

	if sinkErr != nil {
		return res, sinkErr
	}
	if termErr != nil {
		return res, termErr
	}
	if !completed {
		return res, ctx.Err()
	}
	return res, nil
}

// drive owns the run's mutable state: the last snapshot seen and the
// transcript high-water mark. emit returns false to stop consuming.
func (o *Orchestrator) drive(ctx context.Context, rc *RunConfig, emit func(Event) bool) {
	if o.debug {
		log.Printf("[Orchestrator] starting run: %s", rc)
	}

	init, err := o.engine.CreateInitialState(rc.Ticker, rc.DateString())
	if err != nil {
		emit(Event{Type: EventError, Err: wrapWorkflow(err), Decision: models.DecisionUnknown})
		return
	}

	stream, err := o.engine.Stream(ctx, init, o.engine.GraphArgs()...)
	if err != nil {
		emit(Event{Type: EventError, Err: wrapWorkflow(err), Decision: models.DecisionUnknown})
		return
	}
	defer stream.Close()

	var last *models.AnalysisState
	msgSeen := len(init.Messages)
	seen := 0

	for {
		snap, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if o.debug {
				log.Printf("[Orchestrator] run failed after %d snapshots: %v", seen, err)
			}
			emit(Event{Type: EventError, Err: wrapWorkflow(err), Decision: models.DecisionUnknown})
			return
		}
		last = snap
		seen++

		if len(snap.Messages) > msgSeen {
			msgSeen = len(snap.Messages)
			if content, ok := snap.LatestMessage(); ok {
				if !emit(Event{Type: EventMessage, Message: content}) {
					return
				}
			}
		}

		for _, u := range SnapshotUpdates(snap) {
			update := u
			if !emit(Event{Type: EventUpdate, Update: &update}) {
				return
			}
		}

		if o.pacing > 0 {
			select {
			case <-time.After(o.pacing):
			case <-ctx.Done():
				return
			}
		}
	}

	report, err := AssembleReport(last)
	if err != nil {
		emit(Event{Type: EventError, Err: err, Decision: models.DecisionUnknown})
		return
	}

	decision := o.engine.ProcessSignal(last.FinalTradeDecision)
	if o.debug {
		log.Printf("[Orchestrator] run complete: decision=%s sections=%d", decision, len(report.Sections))
	}
	emit(Event{Type: EventComplete, Report: report, Decision: decision})
}

func wrapWorkflow(err error) error {
	var wfe *WorkflowExecutionError
	if errors.As(err, &wfe) {
		return err
	}
	return &WorkflowExecutionError{Err: err}
}
