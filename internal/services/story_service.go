package services

import (
	"github.com/google/uuid"

	"ripple-chat/internal/domain/story"
	"ripple-chat/internal/store"
)

// StoryService exposes the story ledger's operations.
type StoryService struct {
	ledger *store.StoryLedger
}

func NewStoryService(ledger *store.StoryLedger) *StoryService {
	return &StoryService{ledger: ledger}
}

func (s *StoryService) Add(actorID uuid.UUID, mediaURL string, mediaType story.MediaType, caption string) (story.Story, error) {
	return s.ledger.Add(actorID, mediaURL, mediaType, caption)
}

func (s *StoryService) View(actorID, storyID uuid.UUID) error {
	return s.ledger.View(actorID, storyID)
}

func (s *StoryService) Visible() []story.Story {
	return s.ledger.Visible()
}

func (s *StoryService) UserStories(userID uuid.UUID) []story.Story {
	return s.ledger.UserStories(userID)
}

func (s *StoryService) Active() []store.StoryGroup {
	return s.ledger.Active()
}
