package domain

import (
	"time"

	"github.com/google/uuid"
)

// Room is a two-party conversation. Membership means being the owner or
// the other user; the two are never the same principal.
type Room struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	OwnerID     uuid.UUID `json:"owner_id"`
	OtherUserID uuid.UUID `json:"other_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Room) HasMember(id uuid.UUID) bool {
	return r.OwnerID == id || r.OtherUserID == id
}

type AnnotatedRoom struct {
	Room
	IsRoomOwner bool `json:"is_room_owner"`
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Joined field
	SenderName string `json:"sender_name,omitempty"`
}
