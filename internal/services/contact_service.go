package services

import (
	"context"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/contact"
	"ripple-chat/internal/domain/user"
	"ripple-chat/internal/redis"
	"ripple-chat/internal/store"
	"ripple-chat/pkg/logger"
)

// ContactService wraps the contact directory and feeds it presence read
// from the shared presence store.
type ContactService struct {
	directory *store.ContactDirectory
	presence  *redis.PresenceStore
	log       *logger.Logger
}

func NewContactService(directory *store.ContactDirectory, presence *redis.PresenceStore, log *logger.Logger) *ContactService {
	return &ContactService{directory: directory, presence: presence, log: log}
}

func (s *ContactService) Add(c contact.Contact) error {
	return s.directory.Add(c)
}

func (s *ContactService) Remove(userID uuid.UUID) {
	s.directory.Remove(userID)
}

func (s *ContactService) List() []contact.Contact {
	return s.directory.List()
}

func (s *ContactService) Get(userID uuid.UUID) (contact.Contact, bool) {
	return s.directory.Get(userID)
}

func (s *ContactService) UpdateStatus(userID uuid.UUID, status user.Presence) {
	s.directory.UpdateStatus(userID, status)
}

// RefreshPresence pulls each contact's published presence and applies it to
// the directory. Lookup failures skip the contact and keep its last known
// status.
func (s *ContactService) RefreshPresence(ctx context.Context) {
	if s.presence == nil {
		return
	}
	for _, c := range s.directory.List() {
		entry, err := s.presence.Get(ctx, c.UserID)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("presence lookup for %s: %s", c.UserID, err)
			}
			continue
		}
		s.directory.UpdateStatus(c.UserID, entry.Status)
	}
}
