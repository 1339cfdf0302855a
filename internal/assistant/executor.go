package assistant

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"pantrybot/internal/store"
)

// RetryPolicy bounds the lookup retries used by update tasks. The backing
// store is eventually consistent, so a freshly added record may not be
// visible to an immediately following lookup.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy matches the visibility lag observed against the store.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: 200 * time.Millisecond}

// Executor applies validated tasks to the record store, one logical mutation
// per task. All failures are captured and converted to outcomes; nothing
// escapes the Execute boundary.
type Executor struct {
	store store.RecordStore
	retry RetryPolicy
}

// NewExecutor creates an executor with the given retry policy for update
// lookups.
func NewExecutor(s store.RecordStore, retry RetryPolicy) *Executor {
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}
	return &Executor{store: s, retry: retry}
}

// NormalizeName converts an item name to its stored form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Execute applies one task scoped to the owning user and reports the outcome.
func (e *Executor) Execute(ctx context.Context, task Task, ownerID string) Outcome {
	switch task.Action {
	case ActionAdd:
		return e.addItem(ctx, task, ownerID)
	case ActionDelete:
		return e.deleteItem(ctx, task, ownerID)
	case ActionUpdate:
		return e.updateItem(ctx, task, ownerID)
	default:
		return Outcome{Success: false, Message: fmt.Sprintf("Unsupported action %q.", task.Action)}
	}
}

func (e *Executor) addItem(ctx context.Context, task Task, ownerID string) Outcome {
	name := NormalizeName(task.ItemName)

	_, err := e.store.Insert(ctx, store.CollectionItems, map[string]interface{}{
		"name":    name,
		"amount":  task.ItemCount,
		"ownerId": ownerID,
	})
	if err != nil {
		return Outcome{Success: false, Message: fmt.Sprintf("Error adding %s. Please try again.", name)}
	}

	return Outcome{Success: true, Message: fmt.Sprintf("%v %s have been added to your pantry.", task.ItemCount, name)}
}

func (e *Executor) deleteItem(ctx context.Context, task Task, ownerID string) Outcome {
	name := NormalizeName(task.ItemName)

	records, err := e.store.Query(ctx, store.CollectionItems, ownerFilters(name, ownerID))
	if err != nil {
		return Outcome{Success: false, Message: fmt.Sprintf("Error deleting %s. Please try again.", name)}
	}
	if len(records) == 0 {
		return Outcome{Success: false, Message: fmt.Sprintf("%s was not found in your pantry.", name)}
	}

	// Names are not unique; every matching record goes.
	for _, record := range records {
		if err := e.store.Delete(ctx, record.Ref); err != nil {
			return Outcome{Success: false, Message: fmt.Sprintf("Error deleting %s. Please try again.", name)}
		}
	}

	return Outcome{Success: true, Message: fmt.Sprintf("%s has been removed from your pantry.", name)}
}

func (e *Executor) updateItem(ctx context.Context, task Task, ownerID string) Outcome {
	name := NormalizeName(task.ItemName)

	// Short-circuit before any store call.
	if math.IsNaN(task.ItemCount) || math.IsInf(task.ItemCount, 0) {
		return Outcome{Success: false, Message: fmt.Sprintf("Invalid quantity for %s.", name)}
	}

	records, outcome := e.lookupWithRetry(ctx, name, ownerID)
	if outcome != nil {
		return *outcome
	}

	// The updateAction hint ("increase"/"decrease") is carried but not
	// interpreted: the count is the new absolute amount.
	for _, record := range records {
		if err := e.store.Update(ctx, record.Ref, map[string]interface{}{"amount": task.ItemCount}); err != nil {
			return Outcome{Success: false, Message: fmt.Sprintf("Error updating %s. Please try again.", name)}
		}
	}

	return Outcome{Success: true, Message: fmt.Sprintf("%s now has a quantity of %v.", name, task.ItemCount)}
}

// lookupWithRetry queries for the named item, retrying an empty or failed
// lookup up to the policy's attempt budget with a fixed delay in between.
// Returns either the matched records or the terminal failure outcome.
func (e *Executor) lookupWithRetry(ctx context.Context, name, ownerID string) ([]store.Record, *Outcome) {
	var records []store.Record
	var err error

	for attempt := 1; ; attempt++ {
		records, err = e.store.Query(ctx, store.CollectionItems, ownerFilters(name, ownerID))
		if err == nil && len(records) > 0 {
			return records, nil
		}

		if attempt >= e.retry.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, &Outcome{Success: false, Message: fmt.Sprintf("Update of %s was cancelled.", name)}
		case <-time.After(e.retry.Backoff):
		}
	}

	if err != nil {
		return nil, &Outcome{Success: false, Message: fmt.Sprintf("Error updating %s. Please try again.", name)}
	}
	return nil, &Outcome{Success: false, Message: fmt.Sprintf("%s was not found in your pantry.", name)}
}

func ownerFilters(name, ownerID string) []store.Filter {
	return []store.Filter{
		{Field: "name", Value: name},
		{Field: "ownerId", Value: ownerID},
	}
}
