package story

import (
	"time"

	"github.com/google/uuid"
)

// TTL is the fixed story lifetime. Not renewable.
const TTL = 24 * time.Hour

// MediaType of a story post.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func (m MediaType) Valid() bool {
	return m == MediaImage || m == MediaVideo
}

// Story is a self-expiring media post. Expiry is a pure function of the
// clock read at query time; nothing deletes an expired story, it simply
// stops being visible.
type Story struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	MediaURL  string      `json:"media_url"`
	MediaType MediaType   `json:"media_type"`
	Caption   string      `json:"caption,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	ExpiresAt time.Time   `json:"expires_at"`
	Viewers   []uuid.UUID `json:"viewers"`
}

// VisibleAt reports whether the story is still active at t.
func (s Story) VisibleAt(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}

// ViewedBy reports whether userID is already in the viewer set.
func (s Story) ViewedBy(userID uuid.UUID) bool {
	for _, v := range s.Viewers {
		if v == userID {
			return true
		}
	}
	return false
}
