package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/story"
	"ripple-chat/internal/persist"
	ripple_errors "ripple-chat/pkg/errors"
)

// StoryLedger owns every story ever created. Expiry is evaluated lazily at
// query time against the ledger clock; there is no background eviction, so
// an expired story is a permanent soft tombstone.
type StoryLedger struct {
	mu       sync.Mutex
	stories  []story.Story
	now      func() time.Time
	snap     persist.Snapshotter
	notifier *Notifier
}

func NewStoryLedger(snap persist.Snapshotter, notifier *Notifier) *StoryLedger {
	return &StoryLedger{
		now:      time.Now,
		snap:     snap,
		notifier: notifier,
	}
}

// Restore loads the persisted story container into memory.
func (l *StoryLedger) Restore(ctx context.Context) error {
	if l.snap == nil {
		return nil
	}
	stories, err := l.snap.LoadStories(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.stories = stories
	l.mu.Unlock()
	return nil
}

// StoryGroup pairs an author with their visible stories, in insertion
// order. Group order is the author's first appearance in the underlying
// sequence, not recency.
type StoryGroup struct {
	UserID  uuid.UUID
	Stories []story.Story
}

// Add creates a story authored by actorID, expiring a fixed TTL from now.
func (l *StoryLedger) Add(actorID uuid.UUID, mediaURL string, mediaType story.MediaType, caption string) (story.Story, error) {
	if actorID == uuid.Nil {
		return story.Story{}, ripple_errors.ErrUnauthenticated
	}
	if !mediaType.Valid() {
		return story.Story{}, ripple_errors.ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	s := story.Story{
		ID:        uuid.New(),
		UserID:    actorID,
		MediaURL:  mediaURL,
		MediaType: mediaType,
		Caption:   caption,
		Timestamp: now,
		ExpiresAt: now.Add(story.TTL),
		Viewers:   []uuid.UUID{},
	}
	l.stories = append(l.stories, s)
	l.commit()
	return s, nil
}

// View records actorID in the story's viewer set. Idempotent; unknown story
// ids are a no-op, not an error.
func (l *StoryLedger) View(actorID, storyID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ripple_errors.ErrUnauthenticated
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.stories {
		if l.stories[i].ID != storyID {
			continue
		}
		if l.stories[i].ViewedBy(actorID) {
			return nil
		}
		l.stories[i].Viewers = append(l.stories[i].Viewers, actorID)
		l.commit()
		return nil
	}
	return nil
}

// Visible returns the stories whose expiry has not passed, evaluated
// against the clock at call time. Never cached: "now" moves.
func (l *StoryLedger) Visible() []story.Story {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visibleLocked()
}

// UserStories returns the visible stories authored by userID, oldest first.
func (l *StoryLedger) UserStories(userID uuid.UUID) []story.Story {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []story.Story
	for _, s := range l.visibleLocked() {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

// Active groups visible stories by author. Both group order and the order
// within a group follow insertion order of the visible sequence; callers
// must not assume recency ordering across authors.
func (l *StoryLedger) Active() []StoryGroup {
	l.mu.Lock()
	defer l.mu.Unlock()

	var groups []StoryGroup
	index := make(map[uuid.UUID]int)
	for _, s := range l.visibleLocked() {
		i, ok := index[s.UserID]
		if !ok {
			i = len(groups)
			index[s.UserID] = i
			groups = append(groups, StoryGroup{UserID: s.UserID})
		}
		groups[i].Stories = append(groups[i].Stories, s)
	}
	return groups
}

func (l *StoryLedger) visibleLocked() []story.Story {
	now := l.now()
	var out []story.Story
	for _, s := range l.stories {
		if s.VisibleAt(now) {
			out = append(out, s)
		}
	}
	return out
}

func (l *StoryLedger) commit() {
	if l.snap != nil {
		snapshot := make([]story.Story, len(l.stories))
		copy(snapshot, l.stories)
		_ = l.snap.SaveStories(context.Background(), snapshot)
	}
	l.notifier.notify()
}
