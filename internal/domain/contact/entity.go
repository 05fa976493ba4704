package contact

import (
	"time"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/user"
)

// LastMessagePreview is the denormalized cache of the most recent message
// exchanged with a contact. It duplicates message data on purpose; every
// mutation path that can stale it must refresh it explicitly.
type LastMessagePreview struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Contact is a directory entry keyed by the peer's user id.
type Contact struct {
	UserID      uuid.UUID           `json:"user_id"`
	Username    string              `json:"username"`
	Avatar      string              `json:"avatar"`
	Status      user.Presence       `json:"status"`
	UnreadCount int                 `json:"unread_count"`
	LastMessage *LastMessagePreview `json:"last_message,omitempty"`
}
