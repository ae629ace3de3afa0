package dto

import (
	"time"

	"brainswap/internal/domain/chat"

	"github.com/google/uuid"
)

type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	ConversationID string    `json:"conversation_id"`
	From           uuid.UUID `json:"from"`
	To             uuid.UUID `json:"to"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromMessage(m chat.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		From:           m.From,
		To:             m.To,
		Text:           m.Text,
		CreatedAt:      m.CreatedAt,
	}
}

func FromMessages(ms []chat.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMessage(m))
	}
	return out
}
