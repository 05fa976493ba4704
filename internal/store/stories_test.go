package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple-chat/internal/domain/story"
	ripple_errors "ripple-chat/pkg/errors"
)

func TestStoryLedger_AddStampsExpiry(t *testing.T) {
	l := NewStoryLedger(nil, nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	author := uuid.New()
	s, err := l.Add(author, "https://cdn.example.com/a.jpg", story.MediaImage, "at the beach")
	require.NoError(t, err)

	assert.Equal(t, author, s.UserID)
	assert.Equal(t, base, s.Timestamp)
	assert.Equal(t, base.Add(story.TTL), s.ExpiresAt)
	assert.Empty(t, s.Viewers)
}

func TestStoryLedger_AddRequiresActor(t *testing.T) {
	l := NewStoryLedger(nil, nil)

	_, err := l.Add(uuid.Nil, "https://cdn.example.com/a.jpg", story.MediaImage, "")
	assert.ErrorIs(t, err, ripple_errors.ErrUnauthenticated)
	assert.Empty(t, l.Visible())
}

func TestStoryLedger_AddRejectsUnknownMediaType(t *testing.T) {
	l := NewStoryLedger(nil, nil)

	_, err := l.Add(uuid.New(), "https://cdn.example.com/a.gif", story.MediaType("gif"), "")
	assert.ErrorIs(t, err, ripple_errors.ErrInvalidInput)
}

func TestStoryLedger_VisibilityWindow(t *testing.T) {
	l := NewStoryLedger(nil, nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base
	l.now = func() time.Time { return current }

	s, err := l.Add(uuid.New(), "https://cdn.example.com/a.jpg", story.MediaImage, "")
	require.NoError(t, err)

	current = base.Add(23 * time.Hour)
	require.Len(t, l.Visible(), 1)

	current = base.Add(25 * time.Hour)
	assert.Empty(t, l.Visible())
	assert.Empty(t, l.UserStories(s.UserID))
}

func TestStoryLedger_ExpiryIsEvaluatedPerCall(t *testing.T) {
	l := NewStoryLedger(nil, nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base
	l.now = func() time.Time { return current }

	_, err := l.Add(uuid.New(), "https://cdn.example.com/a.jpg", story.MediaImage, "")
	require.NoError(t, err)

	current = base.Add(story.TTL - time.Second)
	assert.Len(t, l.Visible(), 1)

	current = base.Add(story.TTL)
	assert.Empty(t, l.Visible())

	// no eviction: winding the clock back makes the story visible again
	current = base.Add(time.Hour)
	assert.Len(t, l.Visible(), 1)
}

func TestStoryLedger_ViewIsIdempotent(t *testing.T) {
	l := NewStoryLedger(nil, nil)

	s, err := l.Add(uuid.New(), "https://cdn.example.com/a.jpg", story.MediaImage, "")
	require.NoError(t, err)

	viewer := uuid.New()
	require.NoError(t, l.View(viewer, s.ID))
	require.NoError(t, l.View(viewer, s.ID))

	stories := l.UserStories(s.UserID)
	require.Len(t, stories, 1)
	assert.Equal(t, []uuid.UUID{viewer}, stories[0].Viewers)
}

func TestStoryLedger_ViewUnknownStoryIsNoop(t *testing.T) {
	l := NewStoryLedger(nil, nil)
	assert.NoError(t, l.View(uuid.New(), uuid.New()))
}

func TestStoryLedger_ViewRequiresActor(t *testing.T) {
	l := NewStoryLedger(nil, nil)
	s, err := l.Add(uuid.New(), "https://cdn.example.com/a.jpg", story.MediaImage, "")
	require.NoError(t, err)

	assert.ErrorIs(t, l.View(uuid.Nil, s.ID), ripple_errors.ErrUnauthenticated)
}

func TestStoryLedger_ActiveGroupsByFirstAppearance(t *testing.T) {
	l := NewStoryLedger(nil, nil)

	alice := uuid.New()
	bob := uuid.New()

	first, err := l.Add(alice, "https://cdn.example.com/1.jpg", story.MediaImage, "")
	require.NoError(t, err)
	second, err := l.Add(bob, "https://cdn.example.com/2.mp4", story.MediaVideo, "")
	require.NoError(t, err)
	third, err := l.Add(alice, "https://cdn.example.com/3.jpg", story.MediaImage, "")
	require.NoError(t, err)

	groups := l.Active()
	require.Len(t, groups, 2)

	assert.Equal(t, alice, groups[0].UserID)
	require.Len(t, groups[0].Stories, 2)
	assert.Equal(t, first.ID, groups[0].Stories[0].ID)
	assert.Equal(t, third.ID, groups[0].Stories[1].ID)

	assert.Equal(t, bob, groups[1].UserID)
	require.Len(t, groups[1].Stories, 1)
	assert.Equal(t, second.ID, groups[1].Stories[0].ID)
}
