package marathons

import (
	"sync"

	"github.com/killallgit/marathon-api/internal/models"
)

type subscription struct {
	id       uint64
	listener Listener
}

// delivery is one queued fan-out of state to the listeners in subs
type delivery struct {
	subs  []subscription
	state models.MarathonState
}

// Broadcaster fans draft states out to listeners. A new listener is handed
// the latest state first.
//
// Listeners run one at a time, in publish order, on the goroutine that
// started delivering. A listener may publish, subscribe or unsubscribe:
// those calls queue their delivery and return, and the queued states are
// handed out after the current fan-out finishes. Publish and Subscribe
// called from another goroutine while a delivery is running likewise
// return once their state is queued.
type Broadcaster struct {
	mu         sync.Mutex
	subs       []subscription
	nextID     uint64
	last       models.MarathonState
	lastSeq    uint64
	queue      []delivery
	delivering bool
}

// NewBroadcaster creates a broadcaster holding an initial state
func NewBroadcaster(initial models.MarathonState) *Broadcaster {
	return &Broadcaster{last: cloneState(initial)}
}

// Subscribe registers listener, replays the latest state to it and returns
// a function that removes it
func (b *Broadcaster) Subscribe(listener Listener) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	sub := subscription{id: b.nextID, listener: listener}
	b.subs = append(b.subs, sub)
	b.queue = append(b.queue, delivery{subs: []subscription{sub}, state: cloneState(b.last)})
	b.drainLocked()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sub.id) })
	}
}

// Publish delivers state to every listener in subscription order. A state
// whose sequence number is not newer than the last published one is dropped
// and Publish reports false.
func (b *Broadcaster) Publish(seq uint64, state models.MarathonState) bool {
	b.mu.Lock()
	if seq <= b.lastSeq {
		b.mu.Unlock()
		return false
	}
	b.lastSeq = seq
	b.last = cloneState(state)
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.queue = append(b.queue, delivery{subs: subs, state: cloneState(state)})
	b.drainLocked()
	return true
}

// drainLocked hands out queued deliveries unless another call is already
// doing so. It is called with mu held and returns with mu released.
func (b *Broadcaster) drainLocked() {
	if b.delivering {
		b.mu.Unlock()
		return
	}
	b.delivering = true
	locked := true
	defer func() {
		// a panicking listener leaves mu released
		if !locked {
			b.mu.Lock()
		}
		b.delivering = false
		b.queue = nil
		b.mu.Unlock()
	}()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue[0] = delivery{}
		b.queue = b.queue[1:]

		locked = false
		b.mu.Unlock()
		b.deliver(next)
		b.mu.Lock()
		locked = true
	}
}

func (b *Broadcaster) deliver(d delivery) {
	for _, s := range d.subs {
		if !b.active(s.id) {
			continue
		}
		s.listener(cloneState(d.state))
	}
}

// Current returns the latest state
func (b *Broadcaster) Current() models.MarathonState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneState(b.last)
}

// Subscribers returns the number of registered listeners
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *Broadcaster) active(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

func cloneState(s models.MarathonState) models.MarathonState {
	return models.MarathonState{
		Movies:       models.CloneMovies(s.Movies),
		MarathonMode: s.MarathonMode,
	}
}
