package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/wizard"
	"github.com/milicode/gym-panel/pkg/logger"
)

const (
	// Rate limiting: client messages per second
	maxMessagesPerSecond = 10

	EventDraft = "draft"
	EventError = "error"

	// MessageSync asks for the current draft snapshot
	MessageSync = "sync"
)

// ClientMessage is a message sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
}

// DraftEvent is pushed to every connection of a session after its draft
// changes, so other open tabs can follow the wizard.
type DraftEvent struct {
	Type  string      `json:"type"`
	Draft model.Draft `json:"draft"`
	// Path is the page of the draft's current step
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}

// SnapshotFunc loads the current draft of a session.
type SnapshotFunc func(ctx context.Context, sessionID string) (model.Draft, error)

// Client is one websocket connection of a session.
type Client struct {
	Hub       *Hub
	Conn      *Conn
	SessionID string
	Send      chan []byte

	MessageCount  int
	LastResetTime time.Time
	RateMu        sync.Mutex
}

// Hub fans draft snapshots out to the connections of each session.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	snapshot SnapshotFunc

	mu sync.RWMutex
}

type BroadcastMessage struct {
	SessionID string
	Message   []byte
}

func NewHub(snapshot SnapshotFunc) *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *BroadcastMessage, 1024),
		snapshot:   snapshot,
	}
}

// Run processes registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			total := len(h.clients[client.SessionID])
			h.mu.Unlock()
			logger.Debug("WebSocket client registered", logger.Fields{
				"session_id":  client.SessionID,
				"connections": total,
			})

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[message.SessionID] {
				select {
				case client.Send <- message.Message:
				default:
					// slow reader; drop it rather than block the hub
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", logger.Fields{
						"session_id": message.SessionID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	kept := make([]*Client, 0, len(list))
	found := false
	for _, c := range list {
		if c == client {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return
	}
	if len(kept) == 0 {
		delete(h.clients, client.SessionID)
	} else {
		h.clients[client.SessionID] = kept
	}
	close(client.Send)

	logger.Debug("WebSocket client unregistered", logger.Fields{
		"session_id":  client.SessionID,
		"connections": len(kept),
	})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, list := range h.clients {
		for _, c := range list {
			close(c.Send)
		}
		delete(h.clients, id)
	}
}

// DraftChanged implements service.DraftObserver.
func (h *Hub) DraftChanged(sessionID string, draft model.Draft) {
	h.SendToSession(sessionID, DraftEvent{
		Type:  EventDraft,
		Draft: draft,
		Path:  wizard.PathForStep(draft.Step),
	})
}

// SendToSession queues message for every connection of the session. Messages
// are dropped when the broadcast queue is full.
func (h *Hub) SendToSession(sessionID string, message interface{}) {
	if !h.IsSessionOnline(sessionID) {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal websocket message", err)
		return
	}

	select {
	case h.broadcast <- &BroadcastMessage{SessionID: sessionID, Message: data}:
	default:
		logger.Warn("Broadcast channel full, message dropped", logger.Fields{
			"session_id": sessionID,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) IsSessionOnline(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[sessionID]
	return ok
}

// HandleClientMessage answers a sync request with the current snapshot,
// sent to the requesting connection only.
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	client.RateMu.Lock()
	now := time.Now()
	if now.Sub(client.LastResetTime) >= time.Second {
		client.MessageCount = 0
		client.LastResetTime = now
	}
	client.MessageCount++
	count := client.MessageCount
	client.RateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", logger.Fields{
			"session_id": client.SessionID,
			"count":      count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", logger.Fields{
			"session_id": client.SessionID,
			"error":      err.Error(),
		})
		return
	}
	if msg.Type != MessageSync || h.snapshot == nil {
		return
	}

	event := DraftEvent{Type: EventDraft}
	draft, err := h.snapshot(context.Background(), client.SessionID)
	if err != nil {
		logger.Error("Failed to load draft snapshot", err, logger.Fields{
			"session_id": client.SessionID,
		})
		event = DraftEvent{Type: EventError, Message: "بارگذاری پیش‌نویس ناموفق بود"}
	} else {
		event.Draft = draft
		event.Path = wizard.PathForStep(draft.Step)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.reply(client, data)
}

// reply sends data to one connection. Send is only closed under the write
// lock in remove and closeAll, so holding the read lock while the client is
// still registered keeps the channel open for the send.
func (h *Hub) reply(client *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.registered(client) {
		logger.Debug("Dropping reply to unregistered client", logger.Fields{
			"session_id": client.SessionID,
		})
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

// registered must be called with h.mu held.
func (h *Hub) registered(client *Client) bool {
	for _, c := range h.clients[client.SessionID] {
		if c == client {
			return true
		}
	}
	return false
}
