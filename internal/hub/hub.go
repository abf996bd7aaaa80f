package hub

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"kanucontrol/internal/repository"
)

// listener is the hub's view of one subscription: a coalescing dirty signal
type listener struct {
	id    string
	name  string
	dirty chan struct{}
}

// Hub fans committed store changes out to live query subscriptions
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]*listener
	broadcast chan repository.Change
}

// New creates a new Hub
func New() *Hub {
	return &Hub{
		listeners: make(map[string]*listener),
		broadcast: make(chan repository.Change, 256),
	}
}

// Run starts the hub's event loop and returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-h.broadcast:
			h.markAll(change)
		}
	}
}

// Broadcast announces a committed change. It never blocks the writer: when
// the event loop falls behind, subscriptions are marked directly.
func (h *Hub) Broadcast(change repository.Change) {
	select {
	case h.broadcast <- change:
	default:
		log.Printf("[hub] broadcast channel full, marking subscriptions directly")
		h.markAll(change)
	}
}

func (h *Hub) markAll(change repository.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, l := range h.listeners {
		select {
		case l.dirty <- struct{}{}:
		default:
			// a refresh is already pending
		}
	}
}

func (h *Hub) add(l *listener) {
	h.mu.Lock()
	h.listeners[l.id] = l
	total := len(h.listeners)
	h.mu.Unlock()
	log.Printf("[hub] subscription %s (%s) started (total: %d)", l.id, l.name, total)
}

func (h *Hub) remove(l *listener) {
	h.mu.Lock()
	delete(h.listeners, l.id)
	total := len(h.listeners)
	h.mu.Unlock()
	log.Printf("[hub] subscription %s (%s) ended (total: %d)", l.id, l.name, total)
}

// SubscriptionCount returns the number of active subscriptions
func (h *Hub) SubscriptionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// Result is one evaluation of a live query
type Result[T any] struct {
	Items []T
	Err   error
}

// Subscription delivers a fresh result of its query after every committed change
type Subscription[T any] struct {
	id      string
	results chan Result[T]
	cancel  context.CancelFunc
	done    chan struct{}
}

// Subscribe runs query once and keeps re-running it whenever the hub sees a
// committed change. The initial result is already waiting on Results when
// Subscribe returns; later results follow in commit order. Each result holds
// a slice owned by the receiver.
//
// The subscription ends on Close or when ctx is done; Results is closed then.
func Subscribe[T any](ctx context.Context, h *Hub, name string, query func(context.Context) ([]T, error)) (*Subscription[T], error) {
	ctx, cancel := context.WithCancel(ctx)
	l := &listener{
		id:    uuid.NewString(),
		name:  name,
		dirty: make(chan struct{}, 1),
	}

	// register before the first read so no change can slip in between
	h.add(l)

	items, err := query(ctx)
	if err != nil {
		h.remove(l)
		cancel()
		return nil, fmt.Errorf("subscribe %s: %w", name, err)
	}

	sub := &Subscription[T]{
		id:      l.id,
		results: make(chan Result[T], 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	sub.results <- Result[T]{Items: items}

	go sub.run(ctx, h, l, query)
	return sub, nil
}

func (s *Subscription[T]) run(ctx context.Context, h *Hub, l *listener, query func(context.Context) ([]T, error)) {
	defer close(s.done)
	defer close(s.results)
	defer h.remove(l)

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.dirty:
		}

		items, err := query(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("[hub] subscription %s (%s) query failed: %v", l.id, l.name, err)
		}

		select {
		case s.results <- Result[T]{Items: items, Err: err}:
		case <-ctx.Done():
			return
		}
	}
}

// ID returns the subscription's unique id
func (s *Subscription[T]) ID() string {
	return s.id
}

// Results returns the channel results are delivered on
func (s *Subscription[T]) Results() <-chan Result[T] {
	return s.results
}

// Close ends the subscription and waits until no more results are delivered
func (s *Subscription[T]) Close() {
	s.cancel()
	<-s.done
}

// Done is closed once the subscription has ended
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}
