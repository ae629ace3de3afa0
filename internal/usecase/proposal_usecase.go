package usecase

import (
	"context"
	"errors"

	"brainswap/internal/domain/proposal"
	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotConnected = errors.New("users are not connected")
)

type CreateProposalInput struct {
	To    uuid.UUID
	Date  string
	Time  string
	Skill string
}

type ProposalUsecase interface {
	CreateProposal(ctx context.Context, from uuid.UUID, in CreateProposalInput) (proposal.SessionProposal, error)
	ListReceived(ctx context.Context, userID uuid.UUID) ([]proposal.SessionProposal, error)
	ListSent(ctx context.Context, userID uuid.UUID) ([]proposal.SessionProposal, error)
}

type Proposal struct {
	proposals proposal.Repository
	users     user.Repository
}

func NewProposalUsecase(proposals proposal.Repository, users user.Repository) *Proposal {
	return &Proposal{proposals: proposals, users: users}
}

func (u *Proposal) CreateProposal(ctx context.Context, from uuid.UUID, in CreateProposalInput) (proposal.SessionProposal, error) {
	if from == uuid.Nil {
		return proposal.SessionProposal{}, ErrUnauthorized
	}
	if in.To == uuid.Nil || in.To == from {
		return proposal.SessionProposal{}, ErrInvalidInput
	}

	p := proposal.SessionProposal{
		From:  from,
		To:    in.To,
		Date:  in.Date,
		Time:  in.Time,
		Skill: in.Skill,
	}
	if err := p.Validate(); err != nil {
		return proposal.SessionProposal{}, ErrInvalidInput
	}

	me, err := u.users.GetByID(ctx, from)
	if err != nil {
		return proposal.SessionProposal{}, ErrFetchFailed
	}
	if !me.HasConnection(in.To) {
		return proposal.SessionProposal{}, ErrNotConnected
	}

	created, err := u.proposals.Create(ctx, p)
	if err != nil {
		return proposal.SessionProposal{}, ErrInternal
	}
	return created, nil
}

func (u *Proposal) ListReceived(ctx context.Context, userID uuid.UUID) ([]proposal.SessionProposal, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.proposals.ListReceived(ctx, userID)
	if err != nil {
		return nil, ErrFetchFailed
	}
	return out, nil
}

func (u *Proposal) ListSent(ctx context.Context, userID uuid.UUID) ([]proposal.SessionProposal, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.proposals.ListSent(ctx, userID)
	if err != nil {
		return nil, ErrFetchFailed
	}
	return out, nil
}
