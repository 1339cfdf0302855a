package store

import (
	"context"
	"errors"
)

// Collection names understood by the record store.
const (
	CollectionItems   = "items"
	CollectionRecipes = "recipes"
)

// ErrNotFound is returned when a referenced record does not exist. A query
// that matches nothing returns an empty slice, not this error; callers must
// distinguish "no match" from a store failure.
var ErrNotFound = errors.New("record not found")

// Filter is a single equality condition on a record field.
type Filter struct {
	Field string
	Value interface{}
}

// Ref identifies one record within a collection.
type Ref struct {
	Collection string
	ID         uint
}

// Record is a stored record together with its reference.
type Record struct {
	Ref    Ref
	Fields map[string]interface{}
}

// RecordStore is the persistence interface for pantry data: a keyed-record
// store queryable by equality filters. All operations are per-record; there
// is no multi-record transaction primitive.
type RecordStore interface {
	Insert(ctx context.Context, collection string, fields map[string]interface{}) (uint, error)
	Query(ctx context.Context, collection string, filters []Filter) ([]Record, error)
	Update(ctx context.Context, ref Ref, fields map[string]interface{}) error
	Delete(ctx context.Context, ref Ref) error
}
