package dto

import (
	"time"

	"brainswap/internal/domain/connection"

	"github.com/google/uuid"
)

type ConnectionRequestResponse struct {
	ID        uuid.UUID `json:"id"`
	From      uuid.UUID `json:"from"`
	To        uuid.UUID `json:"to"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromRequest(r connection.Request) ConnectionRequestResponse {
	return ConnectionRequestResponse{
		ID:        r.ID,
		From:      r.From,
		To:        r.To,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func FromRequests(rs []connection.Request) []ConnectionRequestResponse {
	out := make([]ConnectionRequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRequest(r))
	}
	return out
}
