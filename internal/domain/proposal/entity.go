package proposal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingField = errors.New("missing required proposal field")

// SessionProposal is a write-only record proposing a teaching session to a
// connection. Date and Time stay client-formatted strings; the service only
// requires them to be present.
type SessionProposal struct {
	ID        uuid.UUID `json:"id"`
	From      uuid.UUID `json:"from"`
	To        uuid.UUID `json:"to"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Skill     string    `json:"skill"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate rejects proposals with an empty date, time or skill.
func (p SessionProposal) Validate() error {
	if p.Date == "" || p.Time == "" || p.Skill == "" {
		return ErrMissingField
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, p SessionProposal) (SessionProposal, error)
	ListReceived(ctx context.Context, userID uuid.UUID) ([]SessionProposal, error)
	ListSent(ctx context.Context, userID uuid.UUID) ([]SessionProposal, error)
}
