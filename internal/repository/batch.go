package repository

import (
	"context"

	"brainswap/internal/docstore"
)

// batchFetch resolves many documents by id in chunks of batchSize, working
// around the store's cap on OpIn values. Results are flattened in store
// order; ids without a document are simply absent from the result. Any chunk
// failure aborts the whole fetch.
func batchFetch(ctx context.Context, store docstore.Store, collection string, ids []string, batchSize int) ([]docstore.Snapshot, error) {
	if batchSize <= 0 || batchSize > docstore.MaxInValues {
		batchSize = docstore.MaxInValues
	}

	out := make([]docstore.Snapshot, 0, len(ids))
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		snaps, err := store.Query(ctx, collection, "id", docstore.OpIn, ids[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, snaps...)
	}
	return out, nil
}
