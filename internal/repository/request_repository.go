package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"brainswap/internal/docstore"
	"brainswap/internal/domain/connection"

	"github.com/google/uuid"
)

const requestsCollection = "connection_requests"

type DocRequestRepository struct {
	store docstore.Store
}

func NewDocRequestRepository(store docstore.Store) *DocRequestRepository {
	return &DocRequestRepository{store: store}
}

func (r *DocRequestRepository) Create(ctx context.Context, req connection.Request) (connection.Request, error) {
	if req.Status == "" {
		req.Status = connection.StatusPending
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	doc, err := docstore.ToDocument(req)
	if err != nil {
		return connection.Request{}, err
	}
	delete(doc, "id")

	id, err := r.store.Add(ctx, requestsCollection, doc)
	if err != nil {
		return connection.Request{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return connection.Request{}, err
	}
	req.ID = parsed
	return req, nil
}

func (r *DocRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (connection.Request, error) {
	snap, err := r.store.Get(ctx, requestsCollection, id.String())
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return connection.Request{}, connection.ErrRequestNotFound
		}
		return connection.Request{}, err
	}
	return decodeRequest(snap)
}

func (r *DocRequestRepository) ListPendingFor(ctx context.Context, userID uuid.UUID) ([]connection.Request, error) {
	snaps, err := r.store.Query(ctx, requestsCollection, "to", docstore.OpEqual, userID.String())
	if err != nil {
		return nil, err
	}

	out := make([]connection.Request, 0, len(snaps))
	for _, snap := range snaps {
		req, err := decodeRequest(snap)
		if err != nil {
			return nil, err
		}
		if req.Status != connection.StatusPending {
			continue
		}
		out = append(out, req)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *DocRequestRepository) HasPendingBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	for _, pair := range [][2]uuid.UUID{{a, b}, {b, a}} {
		snaps, err := r.store.Query(ctx, requestsCollection, "from", docstore.OpEqual, pair[0].String())
		if err != nil {
			return false, err
		}
		for _, snap := range snaps {
			req, err := decodeRequest(snap)
			if err != nil {
				return false, err
			}
			if req.To == pair[1] && req.Status == connection.StatusPending {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *DocRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status connection.RequestStatus) error {
	err := r.store.Update(ctx, requestsCollection, id.String(), docstore.Document{"status": string(status)})
	if errors.Is(err, docstore.ErrNotFound) {
		return connection.ErrRequestNotFound
	}
	return err
}

func decodeRequest(snap docstore.Snapshot) (connection.Request, error) {
	var req connection.Request
	if err := snap.DataTo(&req); err != nil {
		return connection.Request{}, err
	}
	id, err := uuid.Parse(snap.ID)
	if err != nil {
		return connection.Request{}, err
	}
	req.ID = id
	return req, nil
}

var _ connection.Repository = (*DocRequestRepository)(nil)
