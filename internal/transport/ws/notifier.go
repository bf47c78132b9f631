package ws

import (
	"log"

	"github.com/dmarkovic/jobster/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessageNew, &msg.RoomID, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToRoom(msg.RoomID, evt, nil)
}
