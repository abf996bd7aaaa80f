package hub

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"kanucontrol/internal/repository"
)

// source is an in-memory query target guarded like a store
type source struct {
	mu    sync.Mutex
	items []string
	reads int
}

func (s *source) add(item string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

func (s *source) query(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return append([]string(nil), s.items...), nil
}

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h
}

func receive[T any](t *testing.T, sub *Subscription[T]) Result[T] {
	t.Helper()
	select {
	case r, ok := <-sub.Results():
		if !ok {
			t.Fatal("results channel closed")
		}
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result[T]{}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	h := newRunningHub(t)
	src := &source{items: []string{"Anders, Bert", "Müller, Anna"}}

	sub, err := Subscribe(context.Background(), h, "persons", src.query)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()

	select {
	case r := <-sub.Results():
		if !reflect.DeepEqual(r.Items, []string{"Anders, Bert", "Müller, Anna"}) {
			t.Errorf("unexpected snapshot %v", r.Items)
		}
	default:
		t.Fatal("initial snapshot not ready when Subscribe returned")
	}

	if sub.ID() == "" {
		t.Error("expected subscription id")
	}
	if h.SubscriptionCount() != 1 {
		t.Errorf("expected 1 subscription, got %d", h.SubscriptionCount())
	}
}

func TestBroadcastTriggersRefresh(t *testing.T) {
	h := newRunningHub(t)
	src := &source{items: []string{"Müller, Anna"}}

	sub, err := Subscribe(context.Background(), h, "persons", src.query)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()
	receive(t, sub)

	src.add("Zimmer, Cara")
	h.Broadcast(repository.Change{Type: repository.ChangeSaved, Table: "person", Rows: 1})

	r := receive(t, sub)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if !reflect.DeepEqual(r.Items, []string{"Müller, Anna", "Zimmer, Cara"}) {
		t.Errorf("unexpected refresh %v", r.Items)
	}
}

func TestResultsAreIndependentSlices(t *testing.T) {
	h := newRunningHub(t)
	src := &source{items: []string{"a"}}

	sub, err := Subscribe(context.Background(), h, "letters", src.query)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()

	first := receive(t, sub)
	first.Items[0] = "changed"

	h.Broadcast(repository.Change{Type: repository.ChangeSaved})
	second := receive(t, sub)
	if second.Items[0] != "a" {
		t.Errorf("expected a fresh slice, got %v", second.Items)
	}
}

func TestBroadcastsCoalesce(t *testing.T) {
	h := newRunningHub(t)
	src := &source{}

	sub, err := Subscribe(context.Background(), h, "letters", src.query)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()
	receive(t, sub)

	for _, item := range []string{"a", "b", "c", "d", "e"} {
		src.add(item)
		h.Broadcast(repository.Change{Type: repository.ChangeSaved})
	}

	want := []string{"a", "b", "c", "d", "e"}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case r := <-sub.Results():
			if reflect.DeepEqual(r.Items, want) {
				src.mu.Lock()
				reads := src.reads
				src.mu.Unlock()
				if reads > 6 {
					t.Errorf("expected at most 6 reads, got %d", reads)
				}
				return
			}
		case <-deadline:
			t.Fatal("never observed the latest state")
		}
	}
}

func TestCloseEndsSubscription(t *testing.T) {
	h := newRunningHub(t)
	src := &source{}

	sub, err := Subscribe(context.Background(), h, "letters", src.query)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	sub.Close()

	receive(t, sub) // buffered initial snapshot
	if _, ok := <-sub.Results(); ok {
		t.Error("expected results channel to be closed")
	}
	if h.SubscriptionCount() != 0 {
		t.Errorf("expected no subscriptions, got %d", h.SubscriptionCount())
	}

	// broadcasting to an empty hub is harmless
	h.Broadcast(repository.Change{Type: repository.ChangeDeleted})
}

func TestContextCancelEndsSubscription(t *testing.T) {
	h := newRunningHub(t)
	src := &source{}

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := Subscribe(ctx, h, "letters", src.query)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancel()

	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not end after cancel")
	}
	if h.SubscriptionCount() != 0 {
		t.Errorf("expected no subscriptions, got %d", h.SubscriptionCount())
	}
}

func TestSubscribeQueryError(t *testing.T) {
	h := newRunningHub(t)
	boom := errors.New("boom")

	_, err := Subscribe(context.Background(), h, "broken", func(context.Context) ([]int, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if h.SubscriptionCount() != 0 {
		t.Errorf("expected no subscriptions, got %d", h.SubscriptionCount())
	}
}

func TestBroadcastWithoutRunStillMarks(t *testing.T) {
	h := New()
	src := &source{}

	sub, err := Subscribe(context.Background(), h, "letters", src.query)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()
	receive(t, sub)

	// fill the event loop's buffer; the overflow marks subscriptions directly
	src.add("a")
	for i := 0; i < cap(h.broadcast)+1; i++ {
		h.Broadcast(repository.Change{Type: repository.ChangeSaved})
	}

	r := receive(t, sub)
	if !reflect.DeepEqual(r.Items, []string{"a"}) {
		t.Errorf("unexpected refresh %v", r.Items)
	}
}
