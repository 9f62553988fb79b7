// Package docstore provides an opaque document store keyed by collection
// name. Entities are persisted as JSON documents: every field supplied at
// write time comes back unmodified on read, with a generated identifier
// attached. This abstraction allows swapping storage backends without
// changing the service layer.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a stored entity: its decoded fields plus the identifier the
// store generated at write time.
type Document struct {
	ID     string
	Fields map[string]any
}

// Store defines the document storage operations the services depend on.
type Store interface {
	// CreateDocument persists entity (anything JSON-marshalable) into the
	// named collection and returns the generated identifier.
	CreateDocument(ctx context.Context, collection string, entity any) (string, error)

	// GetDocument retrieves a single document by id.
	// Returns an error wrapping ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, collection, id string) (*Document, error)

	// GetDocuments retrieves all documents in a collection matching the
	// filter, in insertion order. A nil filter matches everything.
	GetDocuments(ctx context.Context, collection string, filter Filter) ([]Document, error)

	// Collections lists the collection names that hold at least one document.
	Collections(ctx context.Context) ([]string, error)

	// Ping reports whether the underlying storage is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
