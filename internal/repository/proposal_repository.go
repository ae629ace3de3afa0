package repository

import (
	"context"
	"sort"
	"time"

	"brainswap/internal/docstore"
	"brainswap/internal/domain/proposal"

	"github.com/google/uuid"
)

const proposalsCollection = "session_proposals"

type DocProposalRepository struct {
	store docstore.Store
}

func NewDocProposalRepository(store docstore.Store) *DocProposalRepository {
	return &DocProposalRepository{store: store}
}

func (r *DocProposalRepository) Create(ctx context.Context, p proposal.SessionProposal) (proposal.SessionProposal, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	doc, err := docstore.ToDocument(p)
	if err != nil {
		return proposal.SessionProposal{}, err
	}
	delete(doc, "id")

	id, err := r.store.Add(ctx, proposalsCollection, doc)
	if err != nil {
		return proposal.SessionProposal{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return proposal.SessionProposal{}, err
	}
	p.ID = parsed
	return p, nil
}

func (r *DocProposalRepository) ListReceived(ctx context.Context, userID uuid.UUID) ([]proposal.SessionProposal, error) {
	return r.listBy(ctx, "to", userID)
}

func (r *DocProposalRepository) ListSent(ctx context.Context, userID uuid.UUID) ([]proposal.SessionProposal, error) {
	return r.listBy(ctx, "from", userID)
}

func (r *DocProposalRepository) listBy(ctx context.Context, field string, userID uuid.UUID) ([]proposal.SessionProposal, error) {
	snaps, err := r.store.Query(ctx, proposalsCollection, field, docstore.OpEqual, userID.String())
	if err != nil {
		return nil, err
	}

	out := make([]proposal.SessionProposal, 0, len(snaps))
	for _, snap := range snaps {
		var p proposal.SessionProposal
		if err := snap.DataTo(&p); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(snap.ID)
		if err != nil {
			return nil, err
		}
		p.ID = id
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

var _ proposal.Repository = (*DocProposalRepository)(nil)
