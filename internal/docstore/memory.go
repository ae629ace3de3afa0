package docstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and local development.
// Query results follow document insertion order, which keeps tests
// deterministic.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	order []string
	docs  map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[collection]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	doc, ok := col.docs[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return Snapshot{ID: id, Data: cloneDocument(doc)}, nil
}

func (s *MemoryStore) Query(_ context.Context, collection, field string, op Op, value any) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[collection]
	if !ok {
		return []Snapshot{}, nil
	}

	var inValues []string
	if op == OpIn {
		vals, ok := stringSlice(value)
		if !ok || len(vals) == 0 || len(vals) > MaxInValues {
			return nil, ErrInvalidQuery
		}
		inValues = vals
	}

	out := make([]Snapshot, 0)
	for _, id := range col.order {
		doc := col.docs[id]
		match := false
		switch op {
		case OpEqual:
			if field == "id" {
				match = normalize(id) == normalize(value)
			} else {
				match = normalize(doc[field]) == normalize(value)
			}
		case OpArrayContains:
			arr, ok := doc[field].([]any)
			if ok {
				want := normalize(value)
				for _, el := range arr {
					if normalize(el) == want {
						match = true
						break
					}
				}
			}
		case OpIn:
			var have string
			if field == "id" {
				have = id
			} else {
				sv, ok := doc[field].(string)
				if !ok {
					continue
				}
				have = sv
			}
			for _, v := range inValues {
				if have == v {
					match = true
					break
				}
			}
		default:
			return nil, ErrInvalidQuery
		}
		if match {
			out = append(out, Snapshot{ID: id, Data: cloneDocument(doc)})
		}
	}
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, fields Document, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(collection)
	existing, ok := col.docs[id]
	if !ok {
		col.order = append(col.order, id)
		col.docs[id] = cloneDocument(fields)
		return nil
	}
	if !merge {
		col.docs[id] = cloneDocument(fields)
		return nil
	}
	for k, v := range cloneDocument(fields) {
		existing[k] = v
	}
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[collection]
	if !ok {
		return ErrNotFound
	}
	existing, ok := col.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range cloneDocument(fields) {
		existing[k] = v
	}
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, fields Document) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, fields, false); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) collection(name string) *memCollection {
	col, ok := s.collections[name]
	if !ok {
		col = &memCollection{docs: make(map[string]Document)}
		s.collections[name] = col
	}
	return col
}

// cloneDocument round-trips through JSON so stored documents share no
// references with caller values and carry JSON-shaped types only.
func cloneDocument(d Document) Document {
	b, err := json.Marshal(d)
	if err != nil {
		return Document{}
	}
	var out Document
	if err := json.Unmarshal(b, &out); err != nil {
		return Document{}
	}
	return out
}

func normalize(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func stringSlice(value any) ([]string, bool) {
	switch vs := value.(type) {
	case []string:
		return vs, true
	case []any:
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.String {
		out := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).String()
		}
		return out, true
	}
	return nil, false
}

var _ Store = (*MemoryStore)(nil)
