package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Action identifies the inventory mutation a task performs.
type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
	ActionUpdate Action = "update"
)

// Task is one inventory mutation instruction derived from a structured
// payload. ItemName is carried as emitted by the model (trimmed); it is
// normalized just before store interaction.
type Task struct {
	Action       Action
	ItemName     string
	ItemCount    float64
	UpdateAction string // "increase" or "decrease"; informational only
}

// Outcome reports the result of one task.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CheckedTask pairs a task with its validation verdict. A rejected task is
// never executed; its Failure outcome is recorded in its place, in order.
type CheckedTask struct {
	Task     Task
	Rejected bool
	Failure  Outcome
}

// ParsedReply is the result of validating one extracted payload.
type ParsedReply struct {
	Response string
	Tasks    []CheckedTask
}

// ErrParse signals that the candidate string was not a well-formed payload.
// The caller falls back to treating the original completion as a plain reply.
var ErrParse = errors.New("completion payload is not valid JSON")

// payload mirrors the JSON object the model is instructed to emit.
type payload struct {
	Response string    `json:"response"`
	Tasks    []rawTask `json:"tasks"`
}

type rawTask struct {
	Action       string          `json:"action"`
	ItemName     string          `json:"itemName"`
	ItemCount    json.RawMessage `json:"itemCount"`
	UpdateAction string          `json:"updateAction"`
}

// ParsePayload parses a candidate payload and validates each task entry
// independently. Unrecognized actions are silently skipped: they appear in
// neither the task list nor the outcomes. Tasks with invalid fields are kept,
// pre-rejected, so their failure outcomes hold their position in the batch.
func ParsePayload(candidate string) (*ParsedReply, error) {
	var p payload
	if err := json.Unmarshal([]byte(candidate), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	reply := &ParsedReply{Response: p.Response}
	for _, raw := range p.Tasks {
		action := Action(strings.TrimSpace(raw.Action))
		switch action {
		case ActionAdd, ActionDelete, ActionUpdate:
		default:
			continue // unsupported action: not executed, not counted
		}

		name := strings.TrimSpace(raw.ItemName)
		if name == "" {
			reply.Tasks = append(reply.Tasks, CheckedTask{
				Task:     Task{Action: action},
				Rejected: true,
				Failure:  Outcome{Success: false, Message: "A task is missing its item name."},
			})
			continue
		}

		task := Task{
			Action:       action,
			ItemName:     name,
			UpdateAction: strings.TrimSpace(raw.UpdateAction),
		}

		count, ok := parseCount(raw.ItemCount)
		switch action {
		case ActionAdd:
			if !ok {
				count = 1 // missing or non-numeric count defaults to one
			}
			task.ItemCount = count
		case ActionUpdate:
			if !ok {
				reply.Tasks = append(reply.Tasks, CheckedTask{
					Task:     task,
					Rejected: true,
					Failure:  Outcome{Success: false, Message: fmt.Sprintf("Invalid quantity for %s.", name)},
				})
				continue
			}
			task.ItemCount = count
		case ActionDelete:
			// count is ignored for deletes
		}

		reply.Tasks = append(reply.Tasks, CheckedTask{Task: task})
	}

	return reply, nil
}

// parseCount accepts a JSON number or a numeric string and reports whether a
// finite value was present.
func parseCount(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}

	return 0, false
}
