package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"brainswap/internal/domain/connection"
	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

type mockRequestRepo struct {
	byID map[uuid.UUID]connection.Request
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{byID: make(map[uuid.UUID]connection.Request)}
}

func (m *mockRequestRepo) Create(_ context.Context, r connection.Request) (connection.Request, error) {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	m.byID[r.ID] = r
	return r, nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id uuid.UUID) (connection.Request, error) {
	r, ok := m.byID[id]
	if !ok {
		return connection.Request{}, connection.ErrRequestNotFound
	}
	return r, nil
}

func (m *mockRequestRepo) ListPendingFor(_ context.Context, userID uuid.UUID) ([]connection.Request, error) {
	out := []connection.Request{}
	for _, r := range m.byID {
		if r.To == userID && r.Status == connection.StatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRequestRepo) HasPendingBetween(_ context.Context, a, b uuid.UUID) (bool, error) {
	for _, r := range m.byID {
		if r.Status != connection.StatusPending {
			continue
		}
		if (r.From == a && r.To == b) || (r.From == b && r.To == a) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, status connection.RequestStatus) error {
	r, ok := m.byID[id]
	if !ok {
		return connection.ErrRequestNotFound
	}
	r.Status = status
	m.byID[id] = r
	return nil
}

func TestSendRequest_CreatesPending(t *testing.T) {
	a := user.User{ID: uuid.New()}
	b := user.User{ID: uuid.New()}
	uc := NewConnectionUsecase(newMockRequestRepo(), newMockUserRepo(a, b), nil)

	req, err := uc.SendRequest(context.Background(), a.ID, b.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if req.Status != connection.StatusPending {
		t.Fatalf("expected pending, got %q", req.Status)
	}
	if req.From != a.ID || req.To != b.ID {
		t.Fatalf("unexpected endpoints: %+v", req)
	}
}

func TestSendRequest_DuplicateWhilePending(t *testing.T) {
	a := user.User{ID: uuid.New()}
	b := user.User{ID: uuid.New()}
	uc := NewConnectionUsecase(newMockRequestRepo(), newMockUserRepo(a, b), nil)

	if _, err := uc.SendRequest(context.Background(), a.ID, b.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.SendRequest(context.Background(), a.ID, b.ID); !errors.Is(err, ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending, got %v", err)
	}
	// The reverse direction is blocked too.
	if _, err := uc.SendRequest(context.Background(), b.ID, a.ID); !errors.Is(err, ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending on reverse, got %v", err)
	}
}

func TestSendRequest_Rejections(t *testing.T) {
	a := user.User{ID: uuid.New()}
	uc := NewConnectionUsecase(newMockRequestRepo(), newMockUserRepo(a), nil)

	if _, err := uc.SendRequest(context.Background(), a.ID, a.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self request: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.SendRequest(context.Background(), a.ID, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown target: expected ErrUserNotFound, got %v", err)
	}
}

func TestSendRequest_AlreadyConnected(t *testing.T) {
	b := user.User{ID: uuid.New()}
	a := user.User{ID: uuid.New(), Connections: []uuid.UUID{b.ID}}
	uc := NewConnectionUsecase(newMockRequestRepo(), newMockUserRepo(a, b), nil)

	if _, err := uc.SendRequest(context.Background(), a.ID, b.ID); !errors.Is(err, ErrAlreadyConnected) {
		t.Fatalf("expected ErrAlreadyConnected, got %v", err)
	}
}

func TestAcceptRequest_WritesBothSides(t *testing.T) {
	a := user.User{ID: uuid.New()}
	b := user.User{ID: uuid.New()}
	users := newMockUserRepo(a, b)
	uc := NewConnectionUsecase(newMockRequestRepo(), users, nil)

	req, err := uc.SendRequest(context.Background(), a.ID, b.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.AcceptRequest(context.Background(), b.ID, req.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	gotA, _ := users.GetByID(context.Background(), a.ID)
	gotB, _ := users.GetByID(context.Background(), b.ID)
	if !gotA.HasConnection(b.ID) || !gotB.HasConnection(a.ID) {
		t.Fatalf("edge must be symmetric: a=%v b=%v", gotA.Connections, gotB.Connections)
	}

	// Resolved requests cannot be accepted again.
	if err := uc.AcceptRequest(context.Background(), b.ID, req.ID); !errors.Is(err, ErrRequestNotOpen) {
		t.Fatalf("expected ErrRequestNotOpen, got %v", err)
	}
}

func TestAcceptRequest_OnlyRecipientMayResolve(t *testing.T) {
	a := user.User{ID: uuid.New()}
	b := user.User{ID: uuid.New()}
	uc := NewConnectionUsecase(newMockRequestRepo(), newMockUserRepo(a, b), nil)

	req, err := uc.SendRequest(context.Background(), a.ID, b.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.AcceptRequest(context.Background(), a.ID, req.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("sender accept: expected ErrForbidden, got %v", err)
	}
	if err := uc.RejectRequest(context.Background(), uuid.New(), req.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger reject: expected ErrForbidden, got %v", err)
	}
}

func TestRejectRequest_LeavesConnectionsUntouched(t *testing.T) {
	a := user.User{ID: uuid.New()}
	b := user.User{ID: uuid.New()}
	users := newMockUserRepo(a, b)
	uc := NewConnectionUsecase(newMockRequestRepo(), users, nil)

	req, err := uc.SendRequest(context.Background(), a.ID, b.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.RejectRequest(context.Background(), b.ID, req.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	gotB, _ := users.GetByID(context.Background(), b.ID)
	if gotB.HasConnection(a.ID) {
		t.Fatalf("reject must not create an edge")
	}

	pending, err := uc.ListPendingRequests(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("rejected request still listed as pending: %+v", pending)
	}
}

func TestListConnections_ScrubsPasswordHash(t *testing.T) {
	b := user.User{ID: uuid.New(), Name: "Ben", PasswordHash: "$2a$10$secret"}
	a := user.User{ID: uuid.New(), Connections: []uuid.UUID{b.ID}}
	uc := NewConnectionUsecase(newMockRequestRepo(), newMockUserRepo(a, b), nil)

	got, err := uc.ListConnections(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("unexpected connections: %+v", got)
	}
	if got[0].PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
}
