package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple-chat/internal/domain/contact"
	"ripple-chat/internal/domain/user"
	ripple_errors "ripple-chat/pkg/errors"
)

func newContact(username string) contact.Contact {
	return contact.Contact{
		UserID:   uuid.New(),
		Username: username,
		Status:   user.PresenceOffline,
	}
}

func TestContactDirectory_AddResetsUnread(t *testing.T) {
	d := NewContactDirectory(nil, nil)

	entry := newContact("ana")
	entry.UnreadCount = 7
	require.NoError(t, d.Add(entry))

	got, ok := d.Get(entry.UserID)
	require.True(t, ok)
	assert.Equal(t, 0, got.UnreadCount)
}

func TestContactDirectory_AddDuplicateRejected(t *testing.T) {
	d := NewContactDirectory(nil, nil)

	entry := newContact("ana")
	require.NoError(t, d.Add(entry))

	again := entry
	again.Username = "ana-updated"
	err := d.Add(again)
	assert.ErrorIs(t, err, ripple_errors.ErrAlreadyExists)

	got, _ := d.Get(entry.UserID)
	assert.Equal(t, "ana", got.Username)
	assert.Len(t, d.List(), 1)
}

func TestContactDirectory_RemoveUnknownIsNoop(t *testing.T) {
	d := NewContactDirectory(nil, nil)
	require.NoError(t, d.Add(newContact("ana")))

	d.Remove(uuid.New())
	assert.Len(t, d.List(), 1)
}

func TestContactDirectory_UnreadCounters(t *testing.T) {
	d := NewContactDirectory(nil, nil)
	entry := newContact("ana")
	require.NoError(t, d.Add(entry))

	d.IncrementUnread(entry.UserID)
	d.IncrementUnread(entry.UserID)
	got, _ := d.Get(entry.UserID)
	assert.Equal(t, 2, got.UnreadCount)

	d.ResetUnread(entry.UserID)
	got, _ = d.Get(entry.UserID)
	assert.Equal(t, 0, got.UnreadCount)

	// unknown ids never create entries
	d.IncrementUnread(uuid.New())
	assert.Len(t, d.List(), 1)
}

func TestContactDirectory_UpdateStatusValidation(t *testing.T) {
	d := NewContactDirectory(nil, nil)
	entry := newContact("ana")
	require.NoError(t, d.Add(entry))

	d.UpdateStatus(entry.UserID, user.PresenceAway)
	got, _ := d.Get(entry.UserID)
	assert.Equal(t, user.PresenceAway, got.Status)

	d.UpdateStatus(entry.UserID, user.Presence("invisible"))
	got, _ = d.Get(entry.UserID)
	assert.Equal(t, user.PresenceAway, got.Status)
}

func TestContactDirectory_UpdateLastMessage(t *testing.T) {
	d := NewContactDirectory(nil, nil)
	entry := newContact("ana")
	require.NoError(t, d.Add(entry))

	d.UpdateLastMessage(entry.UserID, "hey")
	got, _ := d.Get(entry.UserID)
	require.NotNil(t, got.LastMessage)
	assert.Equal(t, "hey", got.LastMessage.Content)
	assert.False(t, got.LastMessage.Timestamp.IsZero())
}

func TestContactDirectory_ListPreservesInsertionOrder(t *testing.T) {
	d := NewContactDirectory(nil, nil)
	first := newContact("first")
	second := newContact("second")
	third := newContact("third")
	require.NoError(t, d.Add(first))
	require.NoError(t, d.Add(second))
	require.NoError(t, d.Add(third))

	list := d.List()
	require.Len(t, list, 3)
	assert.Equal(t, first.UserID, list[0].UserID)
	assert.Equal(t, second.UserID, list[1].UserID)
	assert.Equal(t, third.UserID, list[2].UserID)
}

func TestContactDirectory_NotifierFires(t *testing.T) {
	n := NewNotifier()
	d := NewContactDirectory(nil, n)

	ticks := 0
	n.Subscribe(func() { ticks++ })

	entry := newContact("ana")
	require.NoError(t, d.Add(entry))
	d.IncrementUnread(entry.UserID)
	d.Remove(uuid.New()) // no-op, no tick

	assert.Equal(t, 2, ticks)
}
