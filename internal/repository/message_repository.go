package repository

import (
	"context"
	"sort"
	"time"

	"brainswap/internal/docstore"
	"brainswap/internal/domain/chat"

	"github.com/google/uuid"
)

const messagesCollection = "messages"

type DocMessageRepository struct {
	store docstore.Store
}

func NewDocMessageRepository(store docstore.Store) *DocMessageRepository {
	return &DocMessageRepository{store: store}
}

func (r *DocMessageRepository) Append(ctx context.Context, m chat.Message) (chat.Message, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	doc, err := docstore.ToDocument(m)
	if err != nil {
		return chat.Message{}, err
	}
	delete(doc, "id")

	id, err := r.store.Add(ctx, messagesCollection, doc)
	if err != nil {
		return chat.Message{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return chat.Message{}, err
	}
	m.ID = parsed
	return m, nil
}

func (r *DocMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]chat.Message, error) {
	snaps, err := r.store.Query(ctx, messagesCollection, "conversation_id", docstore.OpEqual, conversationID)
	if err != nil {
		return nil, err
	}

	out := make([]chat.Message, 0, len(snaps))
	for _, snap := range snaps {
		var m chat.Message
		if err := snap.DataTo(&m); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(snap.ID)
		if err != nil {
			return nil, err
		}
		m.ID = id
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

var _ chat.Repository = (*DocMessageRepository)(nil)
