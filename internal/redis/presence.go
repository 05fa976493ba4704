package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"ripple-chat/internal/domain/user"
)

// PresenceStatus is the published availability of a user.
type PresenceStatus struct {
	UserID   string        `json:"user_id"`
	Status   user.Presence `json:"status"`
	LastSeen time.Time     `json:"last_seen"`
}

const presenceKeyPrefix = "presence:"

// PresenceStore tracks per-user presence under TTL keys. A key that has
// expired reads back as offline; online/away entries are kept alive by
// periodic refresh from the client.
type PresenceStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewPresenceStore(client *goredis.Client, ttl time.Duration) *PresenceStore {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &PresenceStore{client: client, ttl: ttl}
}

// Set publishes a user's presence. Offline entries are kept longer so
// last-seen queries survive the TTL window.
func (p *PresenceStore) Set(ctx context.Context, userID uuid.UUID, status user.Presence) error {
	if !status.Valid() {
		return nil
	}

	entry := PresenceStatus{
		UserID:   userID.String(),
		Status:   status,
		LastSeen: time.Now(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ttl := p.ttl
	if status == user.PresenceOffline {
		ttl = 24 * time.Hour
	}
	return p.client.Set(ctx, presenceKeyPrefix+userID.String(), data, ttl).Err()
}

// Get reads a user's presence. Missing or expired keys resolve to offline.
func (p *PresenceStore) Get(ctx context.Context, userID uuid.UUID) (PresenceStatus, error) {
	data, err := p.client.Get(ctx, presenceKeyPrefix+userID.String()).Result()
	if err == goredis.Nil {
		return PresenceStatus{UserID: userID.String(), Status: user.PresenceOffline}, nil
	}
	if err != nil {
		return PresenceStatus{}, err
	}

	var entry PresenceStatus
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return PresenceStatus{}, err
	}
	return entry, nil
}
