package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple-chat/internal/domain/contact"
	"ripple-chat/internal/domain/message"
	"ripple-chat/internal/domain/user"
	"ripple-chat/internal/store"
)

func newMessagingFixture(t *testing.T, peerID uuid.UUID) *MessagingService {
	t.Helper()
	contacts := store.NewContactDirectory(nil, nil)
	require.NoError(t, contacts.Add(contact.Contact{
		UserID:   peerID,
		Username: "peer",
		Status:   user.PresenceOnline,
	}))
	return NewMessagingService(store.NewMessageLedger(nil, nil), contacts)
}

func TestMessagingService_SendUpdatesContactPreview(t *testing.T) {
	me := uuid.New()
	peer := uuid.New()
	svc := newMessagingFixture(t, peer)

	msg, err := svc.Send(me, "hello", peer, message.TypeText, "")
	require.NoError(t, err)
	assert.Equal(t, message.StatusSent, msg.Status)

	entry, ok := svc.contacts.Get(peer)
	require.True(t, ok)
	require.NotNil(t, entry.LastMessage)
	assert.Equal(t, "hello", entry.LastMessage.Content)
	// sending to a contact never bumps my unread for them
	assert.Equal(t, 0, entry.UnreadCount)
}

func TestMessagingService_ReceiveBumpsUnread(t *testing.T) {
	me := uuid.New()
	peer := uuid.New()
	svc := newMessagingFixture(t, peer)

	msg, err := svc.Receive(me, peer, "incoming", message.TypeText, "")
	require.NoError(t, err)
	assert.Equal(t, message.StatusDelivered, msg.Status)
	assert.Equal(t, peer, msg.SenderID)
	assert.Equal(t, me, msg.ReceiverID)

	entry, ok := svc.contacts.Get(peer)
	require.True(t, ok)
	assert.Equal(t, 1, entry.UnreadCount)
	require.NotNil(t, entry.LastMessage)
	assert.Equal(t, "incoming", entry.LastMessage.Content)

	conv, found, err := svc.Conversation(me, peer)
	require.NoError(t, err)
	require.True(t, found)
	msgs := svc.Messages(conv.ID)
	require.Len(t, msgs, 1)
	assert.Equal(t, message.StatusDelivered, msgs[0].Status)
}

func TestMessagingService_ActivateReadsAndResetsUnread(t *testing.T) {
	me := uuid.New()
	peer := uuid.New()
	svc := newMessagingFixture(t, peer)

	_, err := svc.Receive(me, peer, "one", message.TypeText, "")
	require.NoError(t, err)
	_, err = svc.Receive(me, peer, "two", message.TypeText, "")
	require.NoError(t, err)

	entry, _ := svc.contacts.Get(peer)
	require.Equal(t, 2, entry.UnreadCount)

	conv, found, err := svc.Conversation(me, peer)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, svc.Activate(me, conv.ID))

	for _, m := range svc.Messages(conv.ID) {
		assert.Equal(t, message.StatusRead, m.Status)
	}
	entry, _ = svc.contacts.Get(peer)
	assert.Equal(t, 0, entry.UnreadCount)

	active, ok := svc.ActiveConversation()
	require.True(t, ok)
	assert.Equal(t, conv.ID, active)
}

func TestMessagingService_ReceiveFromUnknownSender(t *testing.T) {
	me := uuid.New()
	stranger := uuid.New()
	svc := newMessagingFixture(t, uuid.New())

	// unknown senders still land in the ledger; the directory is untouched
	msg, err := svc.Receive(me, stranger, "psst", message.TypeText, "")
	require.NoError(t, err)

	conv, found, err := svc.Conversation(me, stranger)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, msg.ID, svc.Messages(conv.ID)[0].ID)

	_, known := svc.contacts.Get(stranger)
	assert.False(t, known)
}
