package stores

import (
	"context"
	"encoding/json"
	"strconv"
)

// Record is a schemaless JSON document keyed by a single partition key.
// The handlers deliberately work with loose documents (the way the
// original DynamoDB tables did) instead of fixed structs, so caller-
// supplied attributes survive round trips.
type Record map[string]any

// RecordStore is the abstract persistent document store backing each
// resource domain. A single point operation is atomic; sequences of
// operations are not.
type RecordStore interface {
	// Scan returns every record in the store
	Scan(ctx context.Context) ([]Record, error)

	// Filter returns records whose fields equal every entry of filters.
	// An empty filter behaves like Scan.
	Filter(ctx context.Context, filters map[string]any) ([]Record, error)

	// Query returns records whose field equals value. Backed by a
	// secondary index where the implementation supports one.
	Query(ctx context.Context, field, value string) ([]Record, error)

	// Get returns the record stored under key, or ErrRecordNotFound
	Get(ctx context.Context, key string) (Record, error)

	// Put stores rec under key, replacing any existing record
	Put(ctx context.Context, key string, rec Record) error

	// UpdateFields sets the given fields on the record stored under key
	// and returns the updated record, or ErrRecordNotFound
	UpdateFields(ctx context.Context, key string, fields map[string]any) (Record, error)

	// Delete removes the record under key and reports whether a record
	// existed prior to deletion
	Delete(ctx context.Context, key string) (bool, error)
}

// normalizeValue converts fixed-point and decoder-specific number types
// to plain float64 so every stored value serializes as a JSON number.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case map[string]any:
		for k, nested := range val {
			val[k] = normalizeValue(nested)
		}
		return val
	case []any:
		for i, nested := range val {
			val[i] = normalizeValue(nested)
		}
		return val
	default:
		return v
	}
}

// normalizeRecord normalizes every value of rec in place and returns it
func normalizeRecord(rec Record) Record {
	for k, v := range rec {
		rec[k] = normalizeValue(v)
	}
	return rec
}

// valueEquals compares a stored value against a filter value, tolerating
// the numeric widening normalizeValue performs.
func valueEquals(stored, filter any) bool {
	stored = normalizeValue(stored)
	filter = normalizeValue(filter)
	if stored == filter {
		return true
	}
	// Numbers may arrive as strings on query parameters
	if f, ok := filter.(string); ok {
		if s, ok := stored.(float64); ok {
			if parsed, err := strconv.ParseFloat(f, 64); err == nil {
				return s == parsed
			}
		}
	}
	return false
}
