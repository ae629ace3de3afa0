package usecase

import (
	"context"
	"strings"

	"brainswap/internal/domain/chat"
	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

// ChatNotifier pushes a stored message to live websocket subscribers.
type ChatNotifier interface {
	MessageCreated(m chat.Message)
}

type ChatUsecase interface {
	SendMessage(ctx context.Context, from, to uuid.UUID, text string) (chat.Message, error)
	History(ctx context.Context, userID, peer uuid.UUID) ([]chat.Message, error)
}

type Chat struct {
	messages chat.Repository
	users    user.Repository
	notifier ChatNotifier
}

func NewChatUsecase(messages chat.Repository, users user.Repository, notifier ChatNotifier) *Chat {
	return &Chat{messages: messages, users: users, notifier: notifier}
}

func (u *Chat) SendMessage(ctx context.Context, from, to uuid.UUID, text string) (chat.Message, error) {
	if from == uuid.Nil {
		return chat.Message{}, ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if to == uuid.Nil || to == from || text == "" {
		return chat.Message{}, ErrInvalidInput
	}

	me, err := u.users.GetByID(ctx, from)
	if err != nil {
		return chat.Message{}, ErrFetchFailed
	}
	if !me.HasConnection(to) {
		return chat.Message{}, ErrNotConnected
	}

	m := chat.Message{
		ConversationID: chat.ConversationID(from, to),
		From:           from,
		To:             to,
		Text:           text,
	}
	stored, err := u.messages.Append(ctx, m)
	if err != nil {
		return chat.Message{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.MessageCreated(stored)
	}
	return stored, nil
}

func (u *Chat) History(ctx context.Context, userID, peer uuid.UUID) ([]chat.Message, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if peer == uuid.Nil {
		return nil, ErrInvalidInput
	}

	out, err := u.messages.ListByConversation(ctx, chat.ConversationID(userID, peer))
	if err != nil {
		return nil, ErrFetchFailed
	}
	return out, nil
}
