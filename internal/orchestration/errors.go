package orchestration

import "fmt"

// ValidationError reports a bad user input, naming the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// WorkflowExecutionError wraps a fault raised by the workflow engine mid-run.
// Snapshots already delivered before the fault remain valid.
type WorkflowExecutionError struct {
	Err error
}

func (e *WorkflowExecutionError) Error() string {
	return fmt.Sprintf("workflow execution failed: %v", e.Err)
}

func (e *WorkflowExecutionError) Unwrap() error {
	return e.Err
}

// NoStateError means the engine produced zero snapshots. It is a more severe
// condition than a run that completed with an empty report.
type NoStateError struct{}

func (e *NoStateError) Error() string {
	return "workflow produced no state snapshots"
}
