package usecase

import (
	"context"
	"errors"
	"log"

	"brainswap/internal/domain/connection"
	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrAlreadyConnected = errors.New("users already connected")
	ErrRequestPending   = errors.New("request already pending")
	ErrForbidden        = errors.New("forbidden")
	ErrRequestNotOpen   = errors.New("request already resolved")
	ErrUserNotFound     = errors.New("user not found")
)

type ConnectionUsecase interface {
	SendRequest(ctx context.Context, from, to uuid.UUID) (connection.Request, error)
	AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) error
	RejectRequest(ctx context.Context, userID, requestID uuid.UUID) error
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]connection.Request, error)
	ListConnections(ctx context.Context, userID uuid.UUID) ([]user.User, error)
}

type Connection struct {
	requests connection.Repository
	users    user.Repository
	logger   *log.Logger
}

func NewConnectionUsecase(requests connection.Repository, users user.Repository, logger *log.Logger) *Connection {
	if logger == nil {
		logger = log.Default()
	}
	return &Connection{requests: requests, users: users, logger: logger}
}

func (u *Connection) SendRequest(ctx context.Context, from, to uuid.UUID) (connection.Request, error) {
	if from == uuid.Nil {
		return connection.Request{}, ErrUnauthorized
	}
	if to == uuid.Nil || to == from {
		return connection.Request{}, ErrInvalidInput
	}

	me, err := u.users.GetByID(ctx, from)
	if err != nil {
		return connection.Request{}, ErrFetchFailed
	}
	if me.HasConnection(to) {
		return connection.Request{}, ErrAlreadyConnected
	}
	if _, err := u.users.GetByID(ctx, to); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return connection.Request{}, ErrUserNotFound
		}
		return connection.Request{}, ErrFetchFailed
	}

	pending, err := u.requests.HasPendingBetween(ctx, from, to)
	if err != nil {
		return connection.Request{}, ErrFetchFailed
	}
	if pending {
		return connection.Request{}, ErrRequestPending
	}

	req, err := u.requests.Create(ctx, connection.Request{From: from, To: to, Status: connection.StatusPending})
	if err != nil {
		return connection.Request{}, ErrInternal
	}
	return req, nil
}

// AcceptRequest resolves the request and writes both connections arrays.
// This flow is the only writer of the edge, which is what keeps it
// symmetric.
func (u *Connection) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	req, err := u.openRequestFor(ctx, userID, requestID)
	if err != nil {
		return err
	}

	if err := u.requests.UpdateStatus(ctx, requestID, connection.StatusAccepted); err != nil {
		return ErrInternal
	}

	if err := u.users.AddConnection(ctx, req.To, req.From); err != nil {
		u.logger.Printf("[Connections] accept write failed request=%s side=to: %v", requestID, err)
		return ErrInternal
	}
	if err := u.users.AddConnection(ctx, req.From, req.To); err != nil {
		// One-sided edge: surfaced, and the next accept of any request
		// between the pair would not repair it. Kept consistent with the
		// store's lack of transactions.
		u.logger.Printf("[Connections] accept write failed request=%s side=from: %v", requestID, err)
		return ErrInternal
	}
	return nil
}

func (u *Connection) RejectRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	if _, err := u.openRequestFor(ctx, userID, requestID); err != nil {
		return err
	}
	if err := u.requests.UpdateStatus(ctx, requestID, connection.StatusRejected); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Connection) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]connection.Request, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.requests.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, ErrFetchFailed
	}
	return out, nil
}

func (u *Connection) ListConnections(ctx context.Context, userID uuid.UUID) ([]user.User, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	me, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrFetchFailed
	}
	if len(me.Connections) == 0 {
		return []user.User{}, nil
	}
	conns, err := u.users.BatchGetByIDs(ctx, me.Connections)
	if err != nil {
		return nil, ErrFetchFailed
	}
	for i := range conns {
		conns[i].PasswordHash = ""
	}
	return conns, nil
}

func (u *Connection) openRequestFor(ctx context.Context, userID, requestID uuid.UUID) (connection.Request, error) {
	if userID == uuid.Nil {
		return connection.Request{}, ErrUnauthorized
	}
	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, connection.ErrRequestNotFound) {
			return connection.Request{}, err
		}
		return connection.Request{}, ErrFetchFailed
	}
	if req.To != userID {
		return connection.Request{}, ErrForbidden
	}
	if req.Status != connection.StatusPending {
		return connection.Request{}, ErrRequestNotOpen
	}
	return req, nil
}
