package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Firestore field names read from each pothole document.
const (
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldSize      = "size"
)

var (
	// ErrDone is returned by DocumentStream.Next once the stream is exhausted.
	ErrDone = errors.New("no more documents")

	// ErrIncomplete marks a document without a truthy latitude or longitude.
	ErrIncomplete = errors.New("incomplete pothole document")
)

// PotholeRecord is the normalized form served to the mapping client.
type PotholeRecord struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Size      string  `json:"size"`
}

// Document is a store-agnostic view of one Firestore document snapshot.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStream yields documents one at a time in store order.
type DocumentStream interface {
	// Next returns the next document, or ErrDone when the stream is exhausted.
	Next() (Document, error)

	// Stop releases resources held by the stream. Safe to call more than once.
	Stop()
}

// DocumentSource reads the pothole collection.
type DocumentSource interface {
	// Stream opens an unbounded stream over every document in the collection.
	Stream(ctx context.Context) DocumentStream

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// FieldError describes a field value that could not be coerced.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: cannot convert %T(%v): %v", e.Field, e.Value, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// FetchResult is the outcome of one read of the pothole collection.
// Records is never nil; it is empty when the read failed, in which case
// Failure holds the error text.
type FetchResult struct {
	Records []PotholeRecord
	Scanned int
	Dropped int
	Elapsed time.Duration
	Failure string
}

// Failed reports whether the read was abandoned.
func (r FetchResult) Failed() bool {
	return r.Failure != ""
}
