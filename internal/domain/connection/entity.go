package connection

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrRequestNotFound = errors.New("connection request not found")

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// Request is the handshake that precedes a connection. Accepting it is the
// only flow that writes both sides' connections arrays, which is what keeps
// the connection edge symmetric.
type Request struct {
	ID        uuid.UUID     `json:"id"`
	From      uuid.UUID     `json:"from"`
	To        uuid.UUID     `json:"to"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id uuid.UUID) (Request, error)
	ListPendingFor(ctx context.Context, userID uuid.UUID) ([]Request, error)
	HasPendingBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error
}
