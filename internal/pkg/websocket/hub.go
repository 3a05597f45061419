package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected clients keyed by user ID and pushes
// notification events to them. Clients never publish through the hub; it is
// a one-way delivery channel from the notification service to the browser.
type Hub struct {
	// Registered clients organized by recipient user ID
	clients map[int64]map[*Client]bool

	// Outbound events awaiting delivery
	events chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// Event is a notification pushed over WebSocket
type Event struct {
	// Recipient user ID; not serialized, used for routing only
	UserID int64 `json:"-"`

	// Type of the underlying notification
	Type string `json:"type"`

	// Notification ID from the database
	ID int64 `json:"id,omitempty"`

	Title   string `json:"title"`
	Message string `json:"message"`

	QuestionID *int64 `json:"questionId,omitempty"`
	AnswerID   *int64 `json:"answerId,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		events:     make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and event delivery
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// Publish queues an event for delivery to the recipient's connections.
// It never blocks the caller; when the hub is saturated the event is dropped,
// since the notification row itself is already durable.
func (h *Hub) Publish(event *Event) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn().Int64("userID", event.UserID).Msg("Event queue full, dropping push")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Msg("Notification client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)

			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userID", client.userID).
				Msg("Notification client unregistered")
		}
	}
}

// deliver sends an event to every connection of the recipient
func (h *Hub) deliver(event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.clients[event.UserID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", event.UserID).Msg("Failed to marshal event")
		return
	}

	for client := range conns {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop the push rather than block delivery
			h.logger.Debug().Int64("userID", event.UserID).Msg("Client send buffer full")
		}
	}
}

// ConnectionCount reports how many connections a user currently holds
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
