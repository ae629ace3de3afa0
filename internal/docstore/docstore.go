package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Document is a schema-less JSON-like record, addressed by collection and id.
type Document map[string]any

type Op string

const (
	OpEqual         Op = "=="
	OpArrayContains Op = "array-contains"
	OpIn            Op = "in"
)

// MaxInValues is the hard cap on values accepted by a single OpIn query.
// Callers fetching more ids must chunk (see repository.BatchGet helpers).
const MaxInValues = 10

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidQuery = errors.New("invalid query")
)

type Snapshot struct {
	ID   string
	Data Document
}

// DataTo unmarshals the snapshot's fields into out via a JSON round trip.
func (s Snapshot) DataTo(out any) error {
	b, err := json.Marshal(s.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

type Store interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Snapshot, error)

	// Query returns every document in collection whose field satisfies op/value.
	// The special field "id" queries the document key itself. OpIn accepts at
	// most MaxInValues values and rejects larger slices with ErrInvalidQuery.
	Query(ctx context.Context, collection, field string, op Op, value any) ([]Snapshot, error)

	// Set writes fields under id. With merge=true, fields absent from the
	// write are left untouched on the stored document; otherwise the document
	// is replaced. Creates the document if absent.
	Set(ctx context.Context, collection, id string, fields Document, merge bool) error

	// Update applies a partial write to an existing document, ErrNotFound if
	// the document does not exist.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Add creates a document under a fresh id and returns the id.
	Add(ctx context.Context, collection string, fields Document) (string, error)

	Ping(ctx context.Context) error
	Close() error
}

// ToDocument converts a struct into a Document via its JSON tags.
func ToDocument(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return d, nil
}
