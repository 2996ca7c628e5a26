package tasks

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
)

// SnapshotLoader produces the current ordered task list for one owner.
type SnapshotLoader func(ctx context.Context, ownerID int) ([]Task, error)

// Subscription is one live feed. Every value on C is a full replacement
// snapshot, newest-created-first. The consumer must call Unsubscribe on
// teardown; C is closed afterwards.
type Subscription struct {
	C    <-chan []Task
	stop func()
}

func (s *Subscription) Unsubscribe() {
	s.stop()
}

type subscriber struct {
	ownerID int
	ch      chan []Task
	closed  bool
}

// push runs under the hub lock. The channel is buffered with capacity 1
// so a slow consumer only ever sees the latest snapshot; intermediate
// ones are dropped, each snapshot supersedes the previous.
func (sub *subscriber) push(snap []Task) {
	if sub.closed {
		return
	}
	select {
	case sub.ch <- snap:
	default:
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snap
	}
}

// Hub fans task-list snapshots out to per-owner subscribers. Mutations in
// this process poke it through Invalidate; mutations elsewhere arrive as
// NOTIFY payloads through Run.
type Hub struct {
	load SnapshotLoader

	mu   sync.Mutex
	subs map[int]map[*subscriber]struct{}
}

func NewHub(load SnapshotLoader) *Hub {
	return &Hub{
		load: load,
		subs: make(map[int]map[*subscriber]struct{}),
	}
}

// Subscribe registers a feed for ownerID and delivers the current
// snapshot immediately. Registration happens before the initial load so
// a mutation landing in between still reaches the subscriber through
// Invalidate instead of being missed.
func (h *Hub) Subscribe(ctx context.Context, ownerID int) (*Subscription, error) {
	sub := &subscriber{ownerID: ownerID, ch: make(chan []Task, 1)}

	h.mu.Lock()
	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[*subscriber]struct{})
	}
	h.subs[ownerID][sub] = struct{}{}
	h.mu.Unlock()

	snap, err := h.load(ctx, ownerID)
	if err != nil {
		h.remove(sub)
		return nil, err
	}

	h.mu.Lock()
	// An Invalidate that raced with the load has already delivered a
	// snapshot at least as fresh as ours; keep it.
	if !sub.closed && len(sub.ch) == 0 {
		sub.push(snap)
	}
	h.mu.Unlock()

	return &Subscription{C: sub.ch, stop: func() { h.remove(sub) }}, nil
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	set := h.subs[sub.ownerID]
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.ownerID)
	}
	close(sub.ch)
}

// Invalidate reloads ownerID's snapshot and pushes it to every subscriber.
// On a load failure subscribers keep their last delivered snapshot.
func (h *Hub) Invalidate(ctx context.Context, ownerID int) {
	h.mu.Lock()
	active := len(h.subs[ownerID]) > 0
	h.mu.Unlock()
	if !active {
		return
	}

	snap, err := h.load(ctx, ownerID)
	if err != nil {
		log.Printf("[WARN] feed refresh failed owner=%d: %v", ownerID, err)
		return
	}

	h.mu.Lock()
	for sub := range h.subs[ownerID] {
		sub.push(snap)
	}
	h.mu.Unlock()
}

// Run consumes NOTIFY payloads (owner ids as decimal strings) until ctx is
// done or events closes. Unparseable payloads are dropped.
func (h *Hub) Run(ctx context.Context, events <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-events:
			if !ok {
				return
			}
			uid, err := strconv.Atoi(strings.TrimSpace(payload))
			if err != nil {
				continue
			}
			h.Invalidate(ctx, uid)
		}
	}
}
