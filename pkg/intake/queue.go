// Package intake contains the priority-ordered, single-worker request
// pipeline between the HTTP front door and the query processor: a
// priority queue keyed by (class, arrival sequence), a one-shot result
// slot per request, the worker loop, and the dispatcher tying them
// together.
package intake

import (
	"container/heap"
	"errors"
	"sync"
	"time"

	"triagedesk/pkg/models"
)

// Default and fallback queue capacities.
const defaultQueueCapacity = 64 * 1024
const fallbackQueueCapacity = 1024

var (
	// ErrQueueFull is returned by Push when the queue is at capacity.
	ErrQueueFull = errors.New("intake queue full")
	// ErrQueueClosed is returned by Push after Close.
	ErrQueueClosed = errors.New("intake queue closed")
)

// Entry is one queued request. Class orders service (lower first); Seq
// breaks ties strictly FIFO. Seq values are unique for the process
// lifetime, so no two entries ever compare equal.
type Entry struct {
	Class int
	Seq   uint64
	Req   *models.QueryRequest
	Slot  *Slot
}

type entryHeap []*Entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].Class != h[j].Class {
		return h[i].Class < h[j].Class
	}
	return h[i].Seq < h[j].Seq
}
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)        { *h = append(*h, x.(*Entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Queue is a bounded, thread-safe priority queue. Any number of
// producers may Push concurrently; a single consumer Pops.
type Queue struct {
	mu       sync.Mutex
	h        entryHeap
	capacity int
	closed   bool

	// notify wakes a parked Pop; closeCh unparks it permanently.
	notify  chan struct{}
	closeCh chan struct{}

	closeOnce sync.Once
}

// NewQueue creates a bounded Queue of given capacity (>0).
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = fallbackQueueCapacity
	}
	return &Queue{
		capacity: capacity,
		notify:   make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
	}
}

// Push adds e to the queue, waking the consumer if it is parked.
func (q *Queue) Push(e *Entry) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	if len(q.h) >= q.capacity {
		q.mu.Unlock()
		return ErrQueueFull
	}
	heap.Push(&q.h, e)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

// Pop removes and returns the highest-priority oldest entry, blocking up
// to timeout when the queue is empty. Returns nil on timeout or after
// Close with an empty queue, so the worker can re-check its stop flag.
func (q *Queue) Pop(timeout time.Duration) *Entry {
	deadline := time.Now().Add(timeout)
	for {
		q.mu.Lock()
		if len(q.h) > 0 {
			e := heap.Pop(&q.h).(*Entry)
			q.mu.Unlock()
			return e
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}
		t := time.NewTimer(remaining)
		select {
		case <-q.notify:
		case <-q.closeCh:
		case <-t.C:
		}
		t.Stop()
	}
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.h)
}

// Cap returns the configured capacity.
func (q *Queue) Cap() int { return q.capacity }

// Close rejects further pushes. Entries already queued can still be
// popped; an empty closed queue makes Pop return nil immediately.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.closeCh)
	})
}
