package dto

import (
	"time"

	"brainswap/internal/domain/proposal"

	"github.com/google/uuid"
)

type SessionProposalResponse struct {
	ID        uuid.UUID `json:"id"`
	From      uuid.UUID `json:"from"`
	To        uuid.UUID `json:"to"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Skill     string    `json:"skill"`
	CreatedAt time.Time `json:"created_at"`
}

func FromProposal(p proposal.SessionProposal) SessionProposalResponse {
	return SessionProposalResponse{
		ID:        p.ID,
		From:      p.From,
		To:        p.To,
		Date:      p.Date,
		Time:      p.Time,
		Skill:     p.Skill,
		CreatedAt: p.CreatedAt,
	}
}

func FromProposals(ps []proposal.SessionProposal) []SessionProposalResponse {
	out := make([]SessionProposalResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProposal(p))
	}
	return out
}
