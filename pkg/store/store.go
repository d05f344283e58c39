// Package store persists diagram documents for the CLI and the HTTP
// API. The layout engine never touches storage; it consumes node and
// edge lists handed to it by callers, and this package is how those
// callers keep documents around between invocations.
//
// Two backends share the Store interface: a file store for single-user
// CLI use and a MongoDB store for server deployments.
package store

import (
	"context"
	"errors"

	"github.com/causelab/causeway/pkg/diagram"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the persistence boundary for diagram documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put saves a document, assigning a fresh id when it has none,
	// and returns the stored document with id and timestamps set.
	Put(ctx context.Context, doc diagram.Document) (diagram.Document, error)

	// Get retrieves a document by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (diagram.Document, error)

	// Delete removes a document. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// List returns all stored documents, newest first.
	List(ctx context.Context) ([]diagram.Document, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
