package services

import (
	"github.com/google/uuid"

	"ripple-chat/internal/domain/conversation"
	"ripple-chat/internal/domain/message"
	"ripple-chat/internal/store"
)

// MessagingService orchestrates the message ledger and the contact
// directory. The ledger never touches the directory itself; the derived
// contact fields (last message, unread) are refreshed here, one explicit
// call per mutation path that can stale them.
type MessagingService struct {
	ledger   *store.MessageLedger
	contacts *store.ContactDirectory
}

func NewMessagingService(ledger *store.MessageLedger, contacts *store.ContactDirectory) *MessagingService {
	return &MessagingService{ledger: ledger, contacts: contacts}
}

// Send records an outgoing message from actorID and refreshes the peer
// contact's last-message preview.
func (s *MessagingService) Send(actorID uuid.UUID, content string, receiverID uuid.UUID, msgType message.Type, mediaURL string) (message.Message, error) {
	msg, err := s.ledger.Send(actorID, content, receiverID, msgType, mediaURL)
	if err != nil {
		return message.Message{}, err
	}
	s.contacts.UpdateLastMessage(receiverID, content)
	return msg, nil
}

// Receive records an incoming message addressed to actorID: the message is
// appended under the sender's identity, advanced to delivered, and the
// sender's contact entry gets its unread count bumped and preview updated.
func (s *MessagingService) Receive(actorID, senderID uuid.UUID, content string, msgType message.Type, mediaURL string) (message.Message, error) {
	msg, err := s.ledger.Send(senderID, content, actorID, msgType, mediaURL)
	if err != nil {
		return message.Message{}, err
	}
	if err := s.ledger.MarkDelivered(actorID, []uuid.UUID{msg.ID}); err != nil {
		return message.Message{}, err
	}
	s.contacts.IncrementUnread(senderID)
	s.contacts.UpdateLastMessage(senderID, content)

	msg.Status = message.StatusDelivered
	return msg, nil
}

// Activate focuses a conversation. Every unread message addressed to
// actorID inside it becomes read, and the peer contact's unread count is
// reset.
func (s *MessagingService) Activate(actorID, conversationID uuid.UUID) error {
	if err := s.ledger.SetActive(actorID, conversationID); err != nil {
		return err
	}
	if conv, ok := s.ledger.ConversationByID(conversationID); ok {
		if peer, ok := conv.Peer(actorID); ok {
			s.contacts.ResetUnread(peer)
		}
	}
	return nil
}

// MarkRead advances the given messages to read on behalf of actorID.
func (s *MessagingService) MarkRead(actorID uuid.UUID, messageIDs []uuid.UUID) error {
	return s.ledger.MarkRead(actorID, messageIDs)
}

// MarkDelivered advances the given messages to delivered.
func (s *MessagingService) MarkDelivered(actorID uuid.UUID, messageIDs []uuid.UUID) error {
	return s.ledger.MarkDelivered(actorID, messageIDs)
}

// Delete removes a message and keeps the conversation's last-message cache
// consistent.
func (s *MessagingService) Delete(messageID, conversationID uuid.UUID) {
	s.ledger.Delete(messageID, conversationID)
}

// Edit rewrites a message's content.
func (s *MessagingService) Edit(messageID, conversationID uuid.UUID, newContent string) {
	s.ledger.Edit(messageID, conversationID, newContent)
}

// Conversation looks up the individual conversation with participantID.
func (s *MessagingService) Conversation(actorID, participantID uuid.UUID) (conversation.Conversation, bool, error) {
	return s.ledger.Conversation(actorID, participantID)
}

// OrCreateConversation looks up or lazily creates the conversation.
func (s *MessagingService) OrCreateConversation(actorID, participantID uuid.UUID) (conversation.Conversation, error) {
	return s.ledger.OrCreateConversation(actorID, participantID)
}

// Messages returns a conversation's insertion-ordered sequence.
func (s *MessagingService) Messages(conversationID uuid.UUID) []message.Message {
	return s.ledger.Messages(conversationID)
}

// Conversations returns conversations most recently updated first.
func (s *MessagingService) Conversations() []conversation.Conversation {
	return s.ledger.ConversationsByRecency()
}

// ActiveConversation returns the focused conversation id, if any.
func (s *MessagingService) ActiveConversation() (uuid.UUID, bool) {
	return s.ledger.Active()
}
