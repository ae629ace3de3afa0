package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "ana@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != id || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if s.IsRefreshToken(claims) {
		t.Fatalf("access token classified as refresh")
	}
}

func TestRefreshTokenClassified(t *testing.T) {
	s := newTestService(time.Now())

	tok, err := s.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	claims, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !s.IsRefreshToken(claims) {
		t.Fatalf("refresh token not classified as refresh")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(issued)

	tok, err := s.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	s.now = func() time.Time { return issued.Add(16 * time.Minute) }
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	s := newTestService(time.Now())
	other := newTestService(time.Now())
	other.accessSecret = []byte("somebody-else")

	tok, err := other.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
