package persist

import (
	"context"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/contact"
	"ripple-chat/internal/domain/conversation"
	"ripple-chat/internal/domain/message"
	"ripple-chat/internal/domain/story"
	"ripple-chat/pkg/logger"
)

// MessagingSnapshot is the durable form of the conversation/message ledger:
// the conversation list, the per-conversation message sequences, and the
// active conversation marker. It is one container; contacts and stories are
// persisted independently with no cross-container transactionality.
type MessagingSnapshot struct {
	Conversations        []conversation.Conversation  `json:"conversations"`
	Messages             map[string][]message.Message `json:"messages"`
	ActiveConversationID *uuid.UUID                   `json:"active_conversation_id"`
}

// Snapshotter persists the three named state containers. Saves run after a
// mutation has already been applied in memory; reads never consult storage.
type Snapshotter interface {
	SaveContacts(ctx context.Context, contacts []contact.Contact) error
	LoadContacts(ctx context.Context) ([]contact.Contact, error)

	SaveStories(ctx context.Context, stories []story.Story) error
	LoadStories(ctx context.Context) ([]story.Story, error)

	SaveMessaging(ctx context.Context, snap MessagingSnapshot) error
	LoadMessaging(ctx context.Context) (MessagingSnapshot, error)
}

// Async wraps a Snapshotter so that saves are fire-and-forget: each Save
// launches the underlying write in a goroutine and returns immediately,
// keeping persistence off the mutation path. Errors are logged, not returned.
type Async struct {
	inner Snapshotter
	log   *logger.Logger
}

func NewAsync(inner Snapshotter, log *logger.Logger) *Async {
	return &Async{inner: inner, log: log}
}

func (a *Async) SaveContacts(ctx context.Context, contacts []contact.Contact) error {
	go func() {
		if err := a.inner.SaveContacts(context.Background(), contacts); err != nil {
			a.logf("persist contacts: %s", err)
		}
	}()
	return nil
}

func (a *Async) LoadContacts(ctx context.Context) ([]contact.Contact, error) {
	return a.inner.LoadContacts(ctx)
}

func (a *Async) SaveStories(ctx context.Context, stories []story.Story) error {
	go func() {
		if err := a.inner.SaveStories(context.Background(), stories); err != nil {
			a.logf("persist stories: %s", err)
		}
	}()
	return nil
}

func (a *Async) LoadStories(ctx context.Context) ([]story.Story, error) {
	return a.inner.LoadStories(ctx)
}

func (a *Async) SaveMessaging(ctx context.Context, snap MessagingSnapshot) error {
	go func() {
		if err := a.inner.SaveMessaging(context.Background(), snap); err != nil {
			a.logf("persist messaging: %s", err)
		}
	}()
	return nil
}

func (a *Async) LoadMessaging(ctx context.Context) (MessagingSnapshot, error) {
	return a.inner.LoadMessaging(ctx)
}

func (a *Async) logf(template string, args ...interface{}) {
	log := a.log
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if log != nil {
		log.Errorf(template, args...)
	}
}
