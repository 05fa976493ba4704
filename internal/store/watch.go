package store

import "sync"

// Notifier fans a no-payload "state changed" tick out to subscribers.
// It replaces the ambient store-subscription model: consumers register
// explicitly and re-read store state when ticked.
type Notifier struct {
	mu   sync.Mutex
	subs []func()
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn to run after every committed mutation. Callbacks
// run synchronously on the mutating goroutine and must not call back into
// the store that fired them.
func (n *Notifier) Subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *Notifier) notify() {
	if n == nil {
		return
	}
	n.mu.Lock()
	subs := make([]func(), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
