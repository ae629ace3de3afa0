package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID string    `json:"conversation_id"`
	From           uuid.UUID `json:"from"`
	To             uuid.UUID `json:"to"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationID derives the shared conversation key for a pair of users.
// The pair is ordered so both sides compute the same id.
func ConversationID(a, b uuid.UUID) string {
	as, bs := a.String(), b.String()
	if bs < as {
		as, bs = bs, as
	}
	return as + ":" + bs
}

type Repository interface {
	Append(ctx context.Context, m Message) (Message, error)
	// ListByConversation returns messages in ascending creation order.
	ListByConversation(ctx context.Context, conversationID string) ([]Message, error)
}
