package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/contact"
	"ripple-chat/internal/domain/user"
	"ripple-chat/internal/persist"
	ripple_errors "ripple-chat/pkg/errors"
)

// ContactDirectory holds the known contact set with per-contact presence,
// unread count, and last-message metadata. It never reaches into the
// message ledger; services keep the derived fields consistent.
type ContactDirectory struct {
	mu       sync.Mutex
	contacts []contact.Contact
	now      func() time.Time
	snap     persist.Snapshotter
	notifier *Notifier
}

func NewContactDirectory(snap persist.Snapshotter, notifier *Notifier) *ContactDirectory {
	return &ContactDirectory{
		now:      time.Now,
		snap:     snap,
		notifier: notifier,
	}
}

// Restore loads the persisted contact container into memory. Call once at
// startup, before any reads or mutations.
func (d *ContactDirectory) Restore(ctx context.Context) error {
	if d.snap == nil {
		return nil
	}
	contacts, err := d.snap.LoadContacts(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.contacts = contacts
	d.mu.Unlock()
	return nil
}

// Add inserts a contact with its unread count initialized to zero.
// Inserting an already-known user id is rejected.
func (d *ContactDirectory) Add(c contact.Contact) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.contacts {
		if existing.UserID == c.UserID {
			return ripple_errors.ErrAlreadyExists
		}
	}

	c.UnreadCount = 0
	d.contacts = append(d.contacts, c)
	d.commit()
	return nil
}

// Remove deletes the entry for userID. Unknown ids are a no-op.
func (d *ContactDirectory) Remove(userID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.contacts[:0]
	removed := false
	for _, c := range d.contacts {
		if c.UserID == userID {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	d.contacts = kept
	if removed {
		d.commit()
	}
}

// UpdateStatus sets the presence of a known contact. Unknown ids and
// invalid presence values are a no-op.
func (d *ContactDirectory) UpdateStatus(userID uuid.UUID, status user.Presence) {
	if !status.Valid() {
		return
	}
	d.mutate(userID, func(c *contact.Contact) {
		c.Status = status
	})
}

// IncrementUnread bumps the unread counter for userID.
func (d *ContactDirectory) IncrementUnread(userID uuid.UUID) {
	d.mutate(userID, func(c *contact.Contact) {
		c.UnreadCount++
	})
}

// ResetUnread zeroes the unread counter for userID.
func (d *ContactDirectory) ResetUnread(userID uuid.UUID) {
	d.mutate(userID, func(c *contact.Contact) {
		c.UnreadCount = 0
	})
}

// UpdateLastMessage refreshes the denormalized last-message preview with
// content and the current time.
func (d *ContactDirectory) UpdateLastMessage(userID uuid.UUID, content string) {
	now := d.now()
	d.mutate(userID, func(c *contact.Contact) {
		c.LastMessage = &contact.LastMessagePreview{
			Content:   content,
			Timestamp: now,
		}
	})
}

// Get returns the contact for userID.
func (d *ContactDirectory) Get(userID uuid.UUID) (contact.Contact, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, c := range d.contacts {
		if c.UserID == userID {
			return c, true
		}
	}
	return contact.Contact{}, false
}

// List returns a copy of the directory in insertion order.
func (d *ContactDirectory) List() []contact.Contact {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]contact.Contact, len(d.contacts))
	copy(out, d.contacts)
	return out
}

func (d *ContactDirectory) mutate(userID uuid.UUID, fn func(*contact.Contact)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.contacts {
		if d.contacts[i].UserID == userID {
			fn(&d.contacts[i])
			d.commit()
			return
		}
	}
}

// commit persists and notifies. Caller holds the lock; the snapshot copy is
// taken before release so the async save sees a stable slice.
func (d *ContactDirectory) commit() {
	if d.snap != nil {
		snapshot := make([]contact.Contact, len(d.contacts))
		copy(snapshot, d.contacts)
		_ = d.snap.SaveContacts(context.Background(), snapshot)
	}
	d.notifier.notify()
}
