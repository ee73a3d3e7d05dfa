// Package firestore adapts a Cloud Firestore collection to domain.DocumentSource.
package firestore

import (
	"context"
	"errors"
	"fmt"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/couchcryptid/pothole-data-api/internal/domain"
)

// Source reads one collection. It is safe for concurrent use; the underlying
// client is shared and never mutated.
type Source struct {
	client     *gfs.Client
	collection string
}

// NewSource creates a Source over the named collection.
func NewSource(client *gfs.Client, collection string) *Source {
	return &Source{client: client, collection: collection}
}

// Stream opens an iterator over every document in the collection.
func (s *Source) Stream(ctx context.Context) domain.DocumentStream {
	return &stream{it: s.client.Collection(s.collection).Documents(ctx)}
}

// Ping reads at most one document. An empty collection is reachable.
func (s *Source) Ping(ctx context.Context) error {
	it := s.client.Collection(s.collection).Limit(1).Documents(ctx)
	defer it.Stop()

	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("ping collection %s: %w", s.collection, err)
	}
	return nil
}

// snapshotIterator is the subset of *firestore.DocumentIterator the stream uses.
type snapshotIterator interface {
	Next() (*gfs.DocumentSnapshot, error)
	Stop()
}

type stream struct {
	it snapshotIterator
}

func (s *stream) Next() (domain.Document, error) {
	snap, err := s.it.Next()
	if errors.Is(err, iterator.Done) {
		return domain.Document{}, domain.ErrDone
	}
	if err != nil {
		return domain.Document{}, err
	}
	return toDocument(snap), nil
}

func (s *stream) Stop() {
	s.it.Stop()
}

func toDocument(snap *gfs.DocumentSnapshot) domain.Document {
	var id string
	if snap.Ref != nil {
		id = snap.Ref.ID
	}
	return domain.Document{ID: id, Fields: snap.Data()}
}
