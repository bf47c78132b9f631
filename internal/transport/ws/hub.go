package ws

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Hub manages all active WebSocket clients and routes room events.
type Hub struct {
	// clients maps principalID → client.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg
}

type broadcastMsg struct {
	roomID    uuid.UUID
	data      []byte
	excludeID *uuid.UUID // optional: skip this principal (e.g. sender)
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.principalID] = client
			log.Printf("ws hub: %s connected (%d total)", client.principalID, len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client.principalID]; ok {
				delete(h.clients, client.principalID)
				close(client.send)
				close(client.done)
				log.Printf("ws hub: %s disconnected (%d total)", client.principalID, len(h.clients))
			}

		case msg := <-h.broadcast:
			for _, client := range h.clients {
				if msg.excludeID != nil && client.principalID == *msg.excludeID {
					continue
				}
				if !client.IsSubscribed(msg.roomID) {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - disconnect
					delete(h.clients, client.principalID)
					close(client.send)
					close(client.done)
				}
			}
		}
	}
}

// BroadcastToRoom sends an event to all subscribers of a room.
func (h *Hub) BroadcastToRoom(roomID uuid.UUID, event *Event, excludeID *uuid.UUID) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.broadcast <- &broadcastMsg{
		roomID:    roomID,
		data:      data,
		excludeID: excludeID,
	}
}

// HandleTyping relays typing starts to the other party in the room.
func (h *Hub) HandleTyping(sender *Client, event *Event) {
	if event.Type != EventTypeTypingStart {
		return // typing.stop doesn't need broadcast, frontend uses timeout
	}
	roomID := *event.RoomID

	evt, err := NewEvent(EventTypeTyping, &roomID, TypingPayload{
		UserID: sender.principalID,
	})
	if err != nil {
		return
	}

	h.BroadcastToRoom(roomID, evt, &sender.principalID)
}
