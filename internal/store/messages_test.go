package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple-chat/internal/domain/conversation"
	"ripple-chat/internal/domain/message"
	ripple_errors "ripple-chat/pkg/errors"
)

func TestMessageLedger_OrCreateConversationIsIdempotent(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	first, err := l.OrCreateConversation(me, peer)
	require.NoError(t, err)
	assert.Equal(t, conversation.TypeIndividual, first.Type)
	assert.ElementsMatch(t, []uuid.UUID{me, peer}, first.Participants)

	// participant order must not matter
	second, err := l.OrCreateConversation(peer, me)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, l.Conversations(), 1)
}

func TestMessageLedger_ConversationLookupNeverCreates(t *testing.T) {
	l := NewMessageLedger(nil, nil)

	_, ok, err := l.Conversation(uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, l.Conversations())
}

func TestMessageLedger_ActorGating(t *testing.T) {
	l := NewMessageLedger(nil, nil)

	_, err := l.Send(uuid.Nil, "hi", uuid.New(), message.TypeText, "")
	assert.ErrorIs(t, err, ripple_errors.ErrUnauthenticated)

	_, err = l.OrCreateConversation(uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ripple_errors.ErrUnauthenticated)

	assert.ErrorIs(t, l.MarkRead(uuid.Nil, []uuid.UUID{uuid.New()}), ripple_errors.ErrUnauthenticated)
	assert.ErrorIs(t, l.SetActive(uuid.Nil, uuid.New()), ripple_errors.ErrUnauthenticated)
}

func TestMessageLedger_SendAppendsInOrder(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	first, err := l.Send(me, "one", peer, message.TypeText, "")
	require.NoError(t, err)
	second, err := l.Send(me, "two", peer, message.TypeText, "")
	require.NoError(t, err)

	assert.Equal(t, message.StatusSent, first.Status)

	conv, ok, err := l.Conversation(me, peer)
	require.NoError(t, err)
	require.True(t, ok)

	msgs := l.Messages(conv.ID)
	require.Len(t, msgs, 2)
	assert.Equal(t, first.ID, msgs[0].ID)
	assert.Equal(t, second.ID, msgs[1].ID)

	require.NotNil(t, conv.LastMessage)
	assert.Equal(t, second.ID, conv.LastMessage.ID)
}

func TestMessageLedger_StatusNeverRegresses(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	msg, err := l.Send(peer, "hello", me, message.TypeText, "")
	require.NoError(t, err)
	conv, _, err := l.Conversation(me, peer)
	require.NoError(t, err)

	require.NoError(t, l.MarkRead(me, []uuid.UUID{msg.ID}))
	assert.Equal(t, message.StatusRead, l.Messages(conv.ID)[0].Status)

	// delivered after read must not demote
	require.NoError(t, l.MarkDelivered(me, []uuid.UUID{msg.ID}))
	assert.Equal(t, message.StatusRead, l.Messages(conv.ID)[0].Status)

	// re-reading is a stable no-op
	require.NoError(t, l.MarkRead(me, []uuid.UUID{msg.ID}))
	assert.Equal(t, message.StatusRead, l.Messages(conv.ID)[0].Status)
}

func TestMessageLedger_MarkReadRecomputesUnread(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	first, err := l.Send(peer, "one", me, message.TypeText, "")
	require.NoError(t, err)
	_, err = l.Send(peer, "two", me, message.TypeText, "")
	require.NoError(t, err)

	conv, _, err := l.Conversation(me, peer)
	require.NoError(t, err)

	require.NoError(t, l.MarkRead(me, []uuid.UUID{first.ID}))
	conv, ok := l.ConversationByID(conv.ID)
	require.True(t, ok)
	assert.Equal(t, 1, conv.UnreadCount)
}

func TestMessageLedger_MarkReadUnknownIDsIsNoop(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()

	require.NoError(t, l.MarkRead(me, nil))
	require.NoError(t, l.MarkRead(me, []uuid.UUID{uuid.New()}))
}

func TestMessageLedger_DeleteRecomputesLastMessage(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	first, err := l.Send(me, "one", peer, message.TypeText, "")
	require.NoError(t, err)
	second, err := l.Send(me, "two", peer, message.TypeText, "")
	require.NoError(t, err)
	conv, _, err := l.Conversation(me, peer)
	require.NoError(t, err)

	l.Delete(second.ID, conv.ID)

	conv, ok := l.ConversationByID(conv.ID)
	require.True(t, ok)
	require.NotNil(t, conv.LastMessage)
	assert.Equal(t, first.ID, conv.LastMessage.ID)

	l.Delete(first.ID, conv.ID)
	conv, _ = l.ConversationByID(conv.ID)
	assert.Nil(t, conv.LastMessage)
	assert.Empty(t, l.Messages(conv.ID))
}

func TestMessageLedger_DeleteMidSequenceKeepsCache(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	first, err := l.Send(me, "one", peer, message.TypeText, "")
	require.NoError(t, err)
	second, err := l.Send(me, "two", peer, message.TypeText, "")
	require.NoError(t, err)
	conv, _, err := l.Conversation(me, peer)
	require.NoError(t, err)

	l.Delete(first.ID, conv.ID)

	conv, _ = l.ConversationByID(conv.ID)
	require.NotNil(t, conv.LastMessage)
	assert.Equal(t, second.ID, conv.LastMessage.ID)
}

func TestMessageLedger_EditRefreshesLastMessageCache(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	first, err := l.Send(me, "one", peer, message.TypeText, "")
	require.NoError(t, err)
	second, err := l.Send(me, "two", peer, message.TypeText, "")
	require.NoError(t, err)
	conv, _, err := l.Conversation(me, peer)
	require.NoError(t, err)

	// editing a non-last message leaves the cache alone
	l.Edit(first.ID, conv.ID, "one (edited)")
	conv, _ = l.ConversationByID(conv.ID)
	assert.Equal(t, "two", conv.LastMessage.Content)

	msgs := l.Messages(conv.ID)
	assert.Equal(t, "one (edited)", msgs[0].Content)
	assert.True(t, msgs[0].IsEdited)
	require.NotNil(t, msgs[0].EditedAt)

	// editing the last message refreshes the cache
	l.Edit(second.ID, conv.ID, "two (edited)")
	conv, _ = l.ConversationByID(conv.ID)
	assert.Equal(t, "two (edited)", conv.LastMessage.Content)
	assert.True(t, conv.LastMessage.IsEdited)
}

func TestMessageLedger_EditUnknownMessageIsNoop(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	_, err := l.Send(me, "one", peer, message.TypeText, "")
	require.NoError(t, err)
	conv, _, err := l.Conversation(me, peer)
	require.NoError(t, err)

	l.Edit(uuid.New(), conv.ID, "nope")
	assert.Equal(t, "one", l.Messages(conv.ID)[0].Content)
}

func TestMessageLedger_SetActiveMarksInboundRead(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	peer := uuid.New()

	inbound, err := l.Send(peer, "for me", me, message.TypeText, "")
	require.NoError(t, err)
	outbound, err := l.Send(me, "from me", peer, message.TypeText, "")
	require.NoError(t, err)
	conv, _, err := l.Conversation(me, peer)
	require.NoError(t, err)

	require.NoError(t, l.SetActive(me, conv.ID))

	active, ok := l.Active()
	require.True(t, ok)
	assert.Equal(t, conv.ID, active)

	byID := make(map[uuid.UUID]message.Message)
	for _, m := range l.Messages(conv.ID) {
		byID[m.ID] = m
	}
	assert.Equal(t, message.StatusRead, byID[inbound.ID].Status)
	// my own outbound message is untouched
	assert.Equal(t, message.StatusSent, byID[outbound.ID].Status)

	conv, _ = l.ConversationByID(conv.ID)
	assert.Equal(t, 0, conv.UnreadCount)
}

func TestMessageLedger_SetActiveUnknownConversation(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	me := uuid.New()
	ghost := uuid.New()

	require.NoError(t, l.SetActive(me, ghost))
	active, ok := l.Active()
	require.True(t, ok)
	assert.Equal(t, ghost, active)
}

func TestMessageLedger_ConversationsByRecency(t *testing.T) {
	l := NewMessageLedger(nil, nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base
	l.now = func() time.Time { return current }

	me := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	_, err := l.Send(me, "to alice", alice, message.TypeText, "")
	require.NoError(t, err)

	current = base.Add(time.Minute)
	_, err = l.Send(me, "to bob", bob, message.TypeText, "")
	require.NoError(t, err)

	recent := l.ConversationsByRecency()
	require.Len(t, recent, 2)
	assert.True(t, recent[0].Includes(bob))
	assert.True(t, recent[1].Includes(alice))

	// messaging alice again reorders the read view, not stored order
	current = base.Add(2 * time.Minute)
	_, err = l.Send(me, "to alice again", alice, message.TypeText, "")
	require.NoError(t, err)

	recent = l.ConversationsByRecency()
	assert.True(t, recent[0].Includes(alice))

	stored := l.Conversations()
	assert.True(t, stored[0].Includes(alice))
	assert.True(t, stored[1].Includes(bob))
}
