package message

import (
	"time"

	"github.com/google/uuid"
)

// Status is the delivery state of a message. Transitions only move forward:
// sent -> delivered -> read.
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

func (s Status) rank() int {
	switch s {
	case StatusSent:
		return 0
	case StatusDelivered:
		return 1
	case StatusRead:
		return 2
	}
	return -1
}

// CanAdvanceTo reports whether moving from s to next keeps the status
// monotonic. Advancing to the same or an earlier state is not a transition.
func (s Status) CanAdvanceTo(next Status) bool {
	return next.rank() > s.rank()
}

// Type describes the message payload kind.
type Type string

const (
	TypeText     Type = "text"
	TypeImage    Type = "image"
	TypeVideo    Type = "video"
	TypeAudio    Type = "audio"
	TypeFile     Type = "file"
	TypeLocation Type = "location"
)

// RequiresMedia reports whether messages of this type carry a media URL.
func (t Type) RequiresMedia() bool {
	switch t {
	case TypeImage, TypeVideo, TypeAudio, TypeFile:
		return true
	}
	return false
}

// Message is owned exclusively by its conversation and stored in an
// insertion-ordered sequence keyed by conversation id. Media is an opaque
// URL string; this core never interprets it.
type Message struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	GroupID    *uuid.UUID `json:"group_id"` // nil for individual chats
	Content    string     `json:"content"`
	Type       Type       `json:"type"`
	MediaURL   string     `json:"media_url,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	Status     Status     `json:"status"`
	IsEdited   bool       `json:"is_edited"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
}
