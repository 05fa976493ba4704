package persist

import (
	"context"
	"encoding/json"

	goredis "github.com/redis/go-redis/v9"

	"ripple-chat/internal/domain/contact"
	"ripple-chat/internal/domain/story"
)

// Container keys. Three independent containers, mirroring the client's
// local storage layout.
const (
	contactsKey  = "messaging:contacts"
	messagingKey = "messaging:data"
	storiesKey   = "messaging:stories"
)

// RedisStore persists each container as a single JSON value. State has no
// TTL; it lives until overwritten.
type RedisStore struct {
	client *goredis.Client
}

func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SaveContacts(ctx context.Context, contacts []contact.Contact) error {
	return s.save(ctx, contactsKey, contacts)
}

func (s *RedisStore) LoadContacts(ctx context.Context) ([]contact.Contact, error) {
	var contacts []contact.Contact
	if err := s.load(ctx, contactsKey, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *RedisStore) SaveStories(ctx context.Context, stories []story.Story) error {
	return s.save(ctx, storiesKey, stories)
}

func (s *RedisStore) LoadStories(ctx context.Context) ([]story.Story, error) {
	var stories []story.Story
	if err := s.load(ctx, storiesKey, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *RedisStore) SaveMessaging(ctx context.Context, snap MessagingSnapshot) error {
	return s.save(ctx, messagingKey, snap)
}

func (s *RedisStore) LoadMessaging(ctx context.Context) (MessagingSnapshot, error) {
	var snap MessagingSnapshot
	if err := s.load(ctx, messagingKey, &snap); err != nil {
		return MessagingSnapshot{}, err
	}
	return snap, nil
}

func (s *RedisStore) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

// load leaves dest untouched on a cache miss.
func (s *RedisStore) load(ctx context.Context, key string, dest any) error {
	data, err := s.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}
