package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	principalID uuid.UUID

	// subscribedRooms tracks which rooms this client listens to.
	subscribedRooms map[uuid.UUID]struct{}
	mu              sync.RWMutex

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, principalID uuid.UUID) *Client {
	return &Client{
		hub:             hub,
		conn:            conn,
		principalID:     principalID,
		subscribedRooms: make(map[uuid.UUID]struct{}),
		send:            make(chan []byte, sendBufSize),
		done:            make(chan struct{}),
	}
}

// IsSubscribed checks if this client is subscribed to a room.
func (c *Client) IsSubscribed(roomID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.subscribedRooms[roomID]
	return ok
}

// Subscribe adds a room subscription.
func (c *Client) Subscribe(roomID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribedRooms[roomID] = struct{}{}
}

// Unsubscribe removes a room subscription.
func (c *Client) Unsubscribe(roomID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscribedRooms, roomID)
}

// ReadPump reads messages from the WebSocket and routes them to the Hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("ws: client %s disconnected", c.principalID)
			} else {
				log.Printf("ws: read error from %s: %v", c.principalID, err)
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Printf("ws: write error to %s: %v", c.principalID, err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				log.Printf("ws: ping error to %s: %v", c.principalID, err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleEvent routes an incoming client event.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeRoomSubscribe:
		var p RoomPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid room.subscribe payload")
			return
		}
		c.Subscribe(p.RoomID)
		log.Printf("ws: %s subscribed to room %s", c.principalID, p.RoomID)

	case EventTypeRoomUnsubscribe:
		var p RoomPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid room.unsubscribe payload")
			return
		}
		c.Unsubscribe(p.RoomID)
		log.Printf("ws: %s unsubscribed from room %s", c.principalID, p.RoomID)

	case EventTypeTypingStart, EventTypeTypingStop:
		if event.RoomID == nil {
			c.sendError("INVALID_PAYLOAD", "room_id required for typing events")
			return
		}
		c.hub.HandleTyping(c, event)

	case EventTypePing:
		c.sendPong()

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, nil, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
