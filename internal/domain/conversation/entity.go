package conversation

import (
	"time"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/message"
)

// Type distinguishes conversation shapes. Only individual conversations are
// implemented; group and channel values are reserved for the data shape.
type Type string

const (
	TypeIndividual Type = "individual"
	TypeGroup      Type = "group"
	TypeChannel    Type = "channel"
)

// Conversation is the container for an ordered message exchange between a
// fixed participant set. For the individual type, participants holds exactly
// two user ids and at most one conversation exists per unordered pair.
type Conversation struct {
	ID           uuid.UUID        `json:"id"`
	Type         Type             `json:"type"`
	Participants []uuid.UUID      `json:"participants"`
	UnreadCount  int              `json:"unread_count"`
	LastMessage  *message.Message `json:"last_message,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Peer returns the participant other than userID. For conversations that do
// not include userID the second return is false.
func (c Conversation) Peer(userID uuid.UUID) (uuid.UUID, bool) {
	found := false
	peer := uuid.Nil
	for _, p := range c.Participants {
		if p == userID {
			found = true
		} else {
			peer = p
		}
	}
	if !found || peer == uuid.Nil {
		return uuid.Nil, false
	}
	return peer, true
}

// Includes reports whether userID is a participant.
func (c Conversation) Includes(userID uuid.UUID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
