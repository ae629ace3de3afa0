package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"brainswap/internal/domain/chat"

	"github.com/google/uuid"
)

// ChatMessageEvent is the payload pushed to both participants when a new
// message lands in their conversation.
type ChatMessageEvent struct {
	Type           string    `json:"type"`
	MessageID      uuid.UUID `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	From           uuid.UUID `json:"from"`
	To             uuid.UUID `json:"to"`
	Text           string    `json:"text"`
	CreatedAt      string    `json:"created_at"`
}

// Hub tracks live sockets per user and fans chat messages out to the two
// participants of a conversation.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	mutex      sync.RWMutex
	logger     *log.Logger
}

type delivery struct {
	recipients []uuid.UUID
	payload    []byte
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		deliver:    make(chan delivery, 1024),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[client.userID] = set
			}
			set[client] = true
			h.mutex.Unlock()
			h.logger.Printf("WS connected | user=%s total=%d", client.userID, h.ClientCount())

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.removeClientLocked(client)
			h.mutex.Unlock()
			h.logger.Printf("WS disconnected | user=%s total=%d", client.userID, h.ClientCount())

		case d := <-h.deliver:
			// Slow consumers are detached inline: re-queueing them into
			// unregister could fill the one channel this loop drains.
			h.mutex.Lock()
			for _, id := range d.recipients {
				for client := range h.clients[id] {
					select {
					case client.send <- d.payload:
					default:
						h.removeClientLocked(client)
						h.logger.Printf("WS client dropped | user=%s reason=send_buffer_full", client.userID)
					}
				}
			}
			h.mutex.Unlock()
		}
	}
}

// removeClientLocked detaches a client and closes its send channel exactly
// once. Caller holds the write lock.
func (h *Hub) removeClientLocked(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

// MessageCreated implements the chat notifier: the stored message goes to
// every live socket of both participants. Offline users simply miss the
// push and catch up from history.
func (h *Hub) MessageCreated(m chat.Message) {
	if h == nil {
		return
	}

	evt := ChatMessageEvent{
		Type:           "chat_message",
		MessageID:      m.ID,
		ConversationID: m.ConversationID,
		From:           m.From,
		To:             m.To,
		Text:           m.Text,
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	select {
	case h.deliver <- delivery{recipients: []uuid.UUID{m.From, m.To}, payload: b}:
	default:
		h.logger.Printf("WS delivery dropped | conversation=%s reason=buffer_full", m.ConversationID)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
