package assistant

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pantrybot/internal/store"
)

// MockStore is a mock implementation of the RecordStore interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, collection string, fields map[string]interface{}) (uint, error) {
	args := m.Called(ctx, collection, fields)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockStore) Query(ctx context.Context, collection string, filters []store.Filter) ([]store.Record, error) {
	args := m.Called(ctx, collection, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Record), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, ref store.Ref, fields map[string]interface{}) error {
	args := m.Called(ctx, ref, fields)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, ref store.Ref) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func itemRecord(id uint, name string, amount float64, ownerID string) store.Record {
	return store.Record{
		Ref: store.Ref{Collection: store.CollectionItems, ID: id},
		Fields: map[string]interface{}{
			"name":    name,
			"amount":  amount,
			"ownerId": ownerID,
		},
	}
}

func fastRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}
}

func TestAddInsertsNormalizedRecord(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("Insert", mock.Anything, store.CollectionItems, map[string]interface{}{
		"name":    "eggs",
		"amount":  1.0,
		"ownerId": "user-1",
	}).Return(uint(1), nil)

	executor := NewExecutor(mockStore, fastRetry())
	outcome := executor.Execute(context.Background(), Task{Action: ActionAdd, ItemName: "  Eggs ", ItemCount: 1}, "user-1")

	assert.True(t, outcome.Success)
	assert.Contains(t, outcome.Message, "eggs")
	mockStore.AssertExpectations(t)
}

func TestAddStoreFailure(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("Insert", mock.Anything, store.CollectionItems, mock.Anything).
		Return(uint(0), errors.New("connection reset"))

	executor := NewExecutor(mockStore, fastRetry())
	outcome := executor.Execute(context.Background(), Task{Action: ActionAdd, ItemName: "eggs", ItemCount: 2}, "user-1")

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "eggs")
}

func TestDeleteRemovesEveryMatch(t *testing.T) {
	mockStore := new(MockStore)
	first := itemRecord(1, "rice", 2, "user-1")
	second := itemRecord(7, "rice", 5, "user-1")

	mockStore.On("Query", mock.Anything, store.CollectionItems, ownerFilters("rice", "user-1")).
		Return([]store.Record{first, second}, nil)
	mockStore.On("Delete", mock.Anything, first.Ref).Return(nil)
	mockStore.On("Delete", mock.Anything, second.Ref).Return(nil)

	executor := NewExecutor(mockStore, fastRetry())
	outcome := executor.Execute(context.Background(), Task{Action: ActionDelete, ItemName: "Rice"}, "user-1")

	assert.True(t, outcome.Success)
	mockStore.AssertExpectations(t)
}

func TestDeleteNotFound(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("Query", mock.Anything, store.CollectionItems, mock.Anything).
		Return([]store.Record{}, nil)

	executor := NewExecutor(mockStore, fastRetry())
	outcome := executor.Execute(context.Background(), Task{Action: ActionDelete, ItemName: "rice"}, "user-1")

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "not found")
	mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteDoesNotRetry(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("Query", mock.Anything, store.CollectionItems, mock.Anything).
		Return([]store.Record{}, nil).Once()

	executor := NewExecutor(mockStore, fastRetry())
	executor.Execute(context.Background(), Task{Action: ActionDelete, ItemName: "rice"}, "user-1")

	mockStore.AssertNumberOfCalls(t, "Query", 1)
}

func TestUpdateSetsAbsoluteAmount(t *testing.T) {
	mockStore := new(MockStore)
	record := itemRecord(3, "flour", 2, "user-1")

	mockStore.On("Query", mock.Anything, store.CollectionItems, ownerFilters("flour", "user-1")).
		Return([]store.Record{record}, nil)
	mockStore.On("Update", mock.Anything, record.Ref, map[string]interface{}{"amount": 5.0}).Return(nil)

	executor := NewExecutor(mockStore, fastRetry())
	outcome := executor.Execute(context.Background(), Task{Action: ActionUpdate, ItemName: "flour", ItemCount: 5}, "user-1")

	assert.True(t, outcome.Success)
	assert.Contains(t, outcome.Message, "5")
	mockStore.AssertExpectations(t)
}

func TestUpdateIgnoresUpdateActionHint(t *testing.T) {
	// The hint field suggests a relative adjustment, but the observed
	// contract is an absolute set; "increase" must not add to the stored
	// amount.
	for _, hint := range []string{"increase", "decrease", ""} {
		mockStore := new(MockStore)
		record := itemRecord(3, "flour", 2, "user-1")

		mockStore.On("Query", mock.Anything, store.CollectionItems, mock.Anything).
			Return([]store.Record{record}, nil)
		mockStore.On("Update", mock.Anything, record.Ref, map[string]interface{}{"amount": 5.0}).Return(nil)

		executor := NewExecutor(mockStore, fastRetry())
		outcome := executor.Execute(context.Background(), Task{
			Action: ActionUpdate, ItemName: "flour", ItemCount: 5, UpdateAction: hint,
		}, "user-1")

		assert.True(t, outcome.Success, "hint %q", hint)
		mockStore.AssertExpectations(t)
	}
}

func TestUpdateRetriesLookupThenFails(t *testing.T) {
	backoff := 20 * time.Millisecond
	mockStore := new(MockStore)
	mockStore.On("Query", mock.Anything, store.CollectionItems, mock.Anything).
		Return([]store.Record{}, nil).Times(3)

	executor := NewExecutor(mockStore, RetryPolicy{MaxAttempts: 3, Backoff: backoff})

	start := time.Now()
	outcome := executor.Execute(context.Background(), Task{Action: ActionUpdate, ItemName: "flour", ItemCount: 5}, "user-1")
	elapsed := time.Since(start)

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "not found")
	mockStore.AssertNumberOfCalls(t, "Query", 3)
	// Two backoff sleeps between three attempts.
	assert.GreaterOrEqual(t, elapsed, 2*backoff)
}

func TestUpdateRetrySucceedsOnLaterAttempt(t *testing.T) {
	mockStore := new(MockStore)
	record := itemRecord(9, "flour", 2, "user-1")

	mockStore.On("Query", mock.Anything, store.CollectionItems, mock.Anything).
		Return([]store.Record{}, nil).Twice()
	mockStore.On("Query", mock.Anything, store.CollectionItems, mock.Anything).
		Return([]store.Record{record}, nil).Once()
	mockStore.On("Update", mock.Anything, record.Ref, map[string]interface{}{"amount": 4.0}).Return(nil)

	executor := NewExecutor(mockStore, fastRetry())
	outcome := executor.Execute(context.Background(), Task{Action: ActionUpdate, ItemName: "flour", ItemCount: 4}, "user-1")

	assert.True(t, outcome.Success)
	mockStore.AssertNumberOfCalls(t, "Query", 3)
}

func TestUpdateInvalidQuantityShortCircuits(t *testing.T) {
	mockStore := new(MockStore)

	executor := NewExecutor(mockStore, fastRetry())
	outcome := executor.Execute(context.Background(), Task{Action: ActionUpdate, ItemName: "flour", ItemCount: math.NaN()}, "user-1")

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "Invalid quantity")
	mockStore.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRespectsContextDuringBackoff(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("Query", mock.Anything, store.CollectionItems, mock.Anything).
		Return([]store.Record{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := NewExecutor(mockStore, RetryPolicy{MaxAttempts: 3, Backoff: time.Minute})
	outcome := executor.Execute(ctx, Task{Action: ActionUpdate, ItemName: "flour", ItemCount: 1}, "user-1")

	assert.False(t, outcome.Success)
	mockStore.AssertNumberOfCalls(t, "Query", 1)
}
