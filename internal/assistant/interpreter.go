package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pantrybot/internal/monitoring"
)

const defaultReply = "Task executed successfully."

// Result is returned for one interpreter invocation. TaskOutcomes is ordered
// identically to the task list in the completion payload.
type Result struct {
	ReplyText    string    `json:"reply"`
	TaskOutcomes []Outcome `json:"taskOutcomes"`
}

// Interpreter wires the completion provider to the extract/validate/execute
// pipeline for one chat turn at a time.
type Interpreter struct {
	provider CompletionProvider
	executor *Executor
	metrics  *monitoring.InterpreterMetrics
}

// NewInterpreter creates an interpreter. metrics may be nil.
func NewInterpreter(provider CompletionProvider, executor *Executor, metrics *monitoring.InterpreterMetrics) *Interpreter {
	return &Interpreter{
		provider: provider,
		executor: executor,
		metrics:  metrics,
	}
}

// Interpret runs one chat turn end to end: completion, payload extraction,
// validation, then sequential task execution with fail-fast abort. Task
// mutations are committed individually; a batch that fails part-way leaves
// the store reflecting the tasks executed before the failure. Only a provider
// failure is returned as an error; everything downstream degrades to a
// textual result.
func (i *Interpreter) Interpret(ctx context.Context, messages []Message, ownerID string) (*Result, error) {
	start := time.Now()

	completion, err := i.provider.Complete(ctx, systemInstructions, messages)
	if err != nil {
		return nil, fmt.Errorf("completion provider: %w", err)
	}

	candidate := ExtractPayload(completion)
	parsed, err := ParsePayload(candidate)
	if err != nil {
		if !errors.Is(err, ErrParse) {
			return nil, err
		}
		// Fallback: the raw, unextracted completion becomes the reply and
		// no tasks run.
		i.metrics.ObserveInvocation(time.Since(start), true)
		return &Result{ReplyText: completion, TaskOutcomes: []Outcome{}}, nil
	}

	outcomes := make([]Outcome, 0, len(parsed.Tasks))
	for _, checked := range parsed.Tasks {
		var outcome Outcome
		if checked.Rejected {
			outcome = checked.Failure
		} else {
			outcome = i.executor.Execute(ctx, checked.Task, ownerID)
		}
		outcomes = append(outcomes, outcome)
		i.metrics.RecordTaskOutcome(string(checked.Task.Action), outcome.Success)

		// Fail-fast: once any task fails, the rest of the batch is never
		// attempted. There is no rollback of tasks already committed.
		if !outcome.Success {
			break
		}
	}

	reply := parsed.Response
	if reply == "" {
		reply = defaultReply
	}

	i.metrics.ObserveInvocation(time.Since(start), false)
	return &Result{ReplyText: reply, TaskOutcomes: outcomes}, nil
}
