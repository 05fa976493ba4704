package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/conversation"
	"ripple-chat/internal/domain/message"
	"ripple-chat/internal/persist"
	ripple_errors "ripple-chat/pkg/errors"
)

// MessageLedger owns conversations and their message sequences. Each
// sequence is strictly insertion-ordered; that order is canonical and is
// never corrected by timestamp. Conversation recency is a read-time sort,
// never stored order.
type MessageLedger struct {
	mu            sync.Mutex
	conversations []conversation.Conversation
	messages      map[uuid.UUID][]message.Message
	activeID      *uuid.UUID
	now           func() time.Time
	snap          persist.Snapshotter
	notifier      *Notifier
}

func NewMessageLedger(snap persist.Snapshotter, notifier *Notifier) *MessageLedger {
	return &MessageLedger{
		messages: make(map[uuid.UUID][]message.Message),
		now:      time.Now,
		snap:     snap,
		notifier: notifier,
	}
}

// Restore loads the persisted messaging container into memory.
func (l *MessageLedger) Restore(ctx context.Context) error {
	if l.snap == nil {
		return nil
	}
	snap, err := l.snap.LoadMessaging(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.conversations = snap.Conversations
	l.messages = make(map[uuid.UUID][]message.Message, len(snap.Messages))
	for key, msgs := range snap.Messages {
		id, err := uuid.Parse(key)
		if err != nil {
			continue
		}
		l.messages[id] = msgs
	}
	l.activeID = snap.ActiveConversationID
	return nil
}

// Conversation returns the unique individual conversation containing both
// actorID and participantID. Lookup only; never creates.
func (l *MessageLedger) Conversation(actorID, participantID uuid.UUID) (conversation.Conversation, bool, error) {
	if actorID == uuid.Nil {
		return conversation.Conversation{}, false, ripple_errors.ErrUnauthenticated
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	conv, ok := l.findLocked(actorID, participantID)
	return conv, ok, nil
}

// OrCreateConversation returns the conversation for the pair, creating an
// empty one when none exists. This is the sole creation path; repeated
// calls for the same pair always yield the same conversation.
func (l *MessageLedger) OrCreateConversation(actorID, participantID uuid.UUID) (conversation.Conversation, error) {
	if actorID == uuid.Nil {
		return conversation.Conversation{}, ripple_errors.ErrUnauthenticated
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.orCreateLocked(actorID, participantID), nil
}

// Send appends a message from actorID to receiverID, resolving or creating
// the conversation, and refreshes the conversation's last-message cache and
// updatedAt. The new message starts in the sent state.
func (l *MessageLedger) Send(actorID uuid.UUID, content string, receiverID uuid.UUID, msgType message.Type, mediaURL string) (message.Message, error) {
	if actorID == uuid.Nil {
		return message.Message{}, ripple_errors.ErrUnauthenticated
	}
	if msgType == "" {
		msgType = message.TypeText
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	conv := l.orCreateLocked(actorID, receiverID)
	now := l.now()
	msg := message.Message{
		ID:         uuid.New(),
		SenderID:   actorID,
		ReceiverID: receiverID,
		GroupID:    nil,
		Content:    content,
		Type:       msgType,
		MediaURL:   mediaURL,
		Timestamp:  now,
		Status:     message.StatusSent,
	}

	l.messages[conv.ID] = append(l.messages[conv.ID], msg)
	l.updateConversationLocked(conv.ID, func(c *conversation.Conversation) {
		last := msg
		c.LastMessage = &last
		c.UpdatedAt = now
	})
	l.commit()
	return msg, nil
}

// MarkRead advances every message whose id is in messageIDs to read, across
// all conversations, then recomputes each affected conversation's unread
// count as the number of messages addressed to actorID not yet read.
// Re-reading an already-read message is a no-op; status never regresses.
func (l *MessageLedger) MarkRead(actorID uuid.UUID, messageIDs []uuid.UUID) error {
	return l.advance(actorID, messageIDs, message.StatusRead)
}

// MarkDelivered advances matching messages to delivered. Messages already
// delivered or read are untouched.
func (l *MessageLedger) MarkDelivered(actorID uuid.UUID, messageIDs []uuid.UUID) error {
	return l.advance(actorID, messageIDs, message.StatusDelivered)
}

func (l *MessageLedger) advance(actorID uuid.UUID, messageIDs []uuid.UUID, target message.Status) error {
	if actorID == uuid.Nil {
		return ripple_errors.ErrUnauthenticated
	}
	if len(messageIDs) == 0 {
		return nil
	}

	wanted := make(map[uuid.UUID]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		wanted[id] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	touched := make(map[uuid.UUID]struct{})
	for convID, msgs := range l.messages {
		for i := range msgs {
			if _, ok := wanted[msgs[i].ID]; !ok {
				continue
			}
			if msgs[i].Status.CanAdvanceTo(target) {
				msgs[i].Status = target
			}
			touched[convID] = struct{}{}
		}
	}
	if len(touched) == 0 {
		return nil
	}

	for convID := range touched {
		unread := l.unreadCountLocked(convID, actorID)
		l.updateConversationLocked(convID, func(c *conversation.Conversation) {
			c.UnreadCount = unread
		})
	}
	l.commit()
	return nil
}

// Delete removes a message from its conversation's sequence. When the
// deleted message was the cached last message, the cache is recomputed to
// the new final element, or cleared if the sequence is now empty.
func (l *MessageLedger) Delete(messageID, conversationID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msgs, ok := l.messages[conversationID]
	if !ok {
		return
	}

	kept := msgs[:0]
	removed := false
	for _, m := range msgs {
		if m.ID == messageID {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	if !removed {
		return
	}
	l.messages[conversationID] = kept

	l.updateConversationLocked(conversationID, func(c *conversation.Conversation) {
		if len(kept) == 0 {
			c.LastMessage = nil
			return
		}
		last := kept[len(kept)-1]
		c.LastMessage = &last
	})
	l.commit()
}

// Edit rewrites a message's content in place, marking it edited. Insertion
// order is untouched. When the edited message is the conversation's cached
// last message, the cache is refreshed with the same fields.
func (l *MessageLedger) Edit(messageID, conversationID uuid.UUID, newContent string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msgs, ok := l.messages[conversationID]
	if !ok {
		return
	}

	now := l.now()
	edited := false
	for i := range msgs {
		if msgs[i].ID != messageID {
			continue
		}
		msgs[i].Content = newContent
		msgs[i].IsEdited = true
		editedAt := now
		msgs[i].EditedAt = &editedAt
		edited = true
		break
	}
	if !edited {
		return
	}

	l.updateConversationLocked(conversationID, func(c *conversation.Conversation) {
		if c.LastMessage == nil || c.LastMessage.ID != messageID {
			return
		}
		c.LastMessage.Content = newContent
		c.LastMessage.IsEdited = true
		editedAt := now
		c.LastMessage.EditedAt = &editedAt
	})
	l.commit()
}

// SetActive marks conversationID as the focused conversation and, as a
// deliberate side effect, marks every unread message addressed to actorID
// within it as read through the MarkRead path.
func (l *MessageLedger) SetActive(actorID, conversationID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ripple_errors.ErrUnauthenticated
	}

	l.mu.Lock()
	active := conversationID
	l.activeID = &active

	var unreadIDs []uuid.UUID
	if _, ok := l.conversationByIDLocked(conversationID); ok {
		for _, m := range l.messages[conversationID] {
			if m.ReceiverID == actorID && m.Status != message.StatusRead {
				unreadIDs = append(unreadIDs, m.ID)
			}
		}
	}
	l.commit()
	l.mu.Unlock()

	if len(unreadIDs) == 0 {
		return nil
	}
	return l.MarkRead(actorID, unreadIDs)
}

// Active returns the focused conversation id, if any.
func (l *MessageLedger) Active() (uuid.UUID, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.activeID == nil {
		return uuid.Nil, false
	}
	return *l.activeID, true
}

// Messages returns the insertion-ordered sequence for a conversation.
func (l *MessageLedger) Messages(conversationID uuid.UUID) []message.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	msgs := l.messages[conversationID]
	out := make([]message.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Conversations returns all conversations in stored (creation) order.
func (l *MessageLedger) Conversations() []conversation.Conversation {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]conversation.Conversation, len(l.conversations))
	copy(out, l.conversations)
	return out
}

// ConversationsByRecency returns conversations sorted most recently updated
// first. The sort happens at read time; stored order is untouched.
func (l *MessageLedger) ConversationsByRecency() []conversation.Conversation {
	out := l.Conversations()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// ConversationByID returns the conversation with the given id.
func (l *MessageLedger) ConversationByID(id uuid.UUID) (conversation.Conversation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conversationByIDLocked(id)
}

func (l *MessageLedger) findLocked(actorID, participantID uuid.UUID) (conversation.Conversation, bool) {
	for _, c := range l.conversations {
		if c.Type == conversation.TypeIndividual && c.Includes(actorID) && c.Includes(participantID) {
			return c, true
		}
	}
	return conversation.Conversation{}, false
}

func (l *MessageLedger) orCreateLocked(actorID, participantID uuid.UUID) conversation.Conversation {
	if existing, ok := l.findLocked(actorID, participantID); ok {
		return existing
	}

	now := l.now()
	conv := conversation.Conversation{
		ID:           uuid.New(),
		Type:         conversation.TypeIndividual,
		Participants: []uuid.UUID{actorID, participantID},
		UnreadCount:  0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	l.conversations = append(l.conversations, conv)
	l.messages[conv.ID] = []message.Message{}
	l.commit()
	return conv
}

func (l *MessageLedger) conversationByIDLocked(id uuid.UUID) (conversation.Conversation, bool) {
	for _, c := range l.conversations {
		if c.ID == id {
			return c, true
		}
	}
	return conversation.Conversation{}, false
}

func (l *MessageLedger) unreadCountLocked(conversationID, userID uuid.UUID) int {
	count := 0
	for _, m := range l.messages[conversationID] {
		if m.ReceiverID == userID && m.Status != message.StatusRead {
			count++
		}
	}
	return count
}

func (l *MessageLedger) updateConversationLocked(id uuid.UUID, fn func(*conversation.Conversation)) {
	for i := range l.conversations {
		if l.conversations[i].ID == id {
			fn(&l.conversations[i])
			return
		}
	}
}

// commit persists the whole messaging container and notifies. Caller holds
// the lock.
func (l *MessageLedger) commit() {
	if l.snap != nil {
		snap := persist.MessagingSnapshot{
			Conversations:        make([]conversation.Conversation, len(l.conversations)),
			Messages:             make(map[string][]message.Message, len(l.messages)),
			ActiveConversationID: l.activeID,
		}
		copy(snap.Conversations, l.conversations)
		for id, msgs := range l.messages {
			seq := make([]message.Message, len(msgs))
			copy(seq, msgs)
			snap.Messages[id.String()] = seq
		}
		_ = l.snap.SaveMessaging(context.Background(), snap)
	}
	l.notifier.notify()
}
