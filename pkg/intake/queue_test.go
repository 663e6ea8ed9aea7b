package intake

import (
	"sync"
	"testing"
	"time"

	"triagedesk/pkg/models"
)

func entry(class int, seq uint64) *Entry {
	return &Entry{Class: class, Seq: seq, Req: &models.QueryRequest{}, Slot: NewSlot()}
}

func TestQueuePopsByClassThenArrival(t *testing.T) {
	q := NewQueue(16)
	// pushed out of order on purpose
	_ = q.Push(entry(3, 1))
	_ = q.Push(entry(1, 2))
	_ = q.Push(entry(2, 3))
	_ = q.Push(entry(1, 4))
	_ = q.Push(entry(3, 5))

	want := []struct {
		class int
		seq   uint64
	}{
		{1, 2}, {1, 4}, {2, 3}, {3, 1}, {3, 5},
	}
	for i, w := range want {
		e := q.Pop(100 * time.Millisecond)
		if e == nil {
			t.Fatalf("pop %d: unexpected nil", i)
		}
		if e.Class != w.class || e.Seq != w.seq {
			t.Fatalf("pop %d: got (class=%d, seq=%d), want (%d, %d)", i, e.Class, e.Seq, w.class, w.seq)
		}
	}
}

func TestQueueFIFOWithinClass(t *testing.T) {
	q := NewQueue(64)
	for seq := uint64(1); seq <= 20; seq++ {
		_ = q.Push(entry(2, seq))
	}
	for seq := uint64(1); seq <= 20; seq++ {
		e := q.Pop(100 * time.Millisecond)
		if e == nil || e.Seq != seq {
			t.Fatalf("expected seq %d, got %+v", seq, e)
		}
	}
}

func TestQueuePopTimeoutWhenEmpty(t *testing.T) {
	q := NewQueue(4)
	start := time.Now()
	if e := q.Pop(50 * time.Millisecond); e != nil {
		t.Fatalf("expected nil from empty queue, got %+v", e)
	}
	if time.Since(start) < 40*time.Millisecond {
		t.Fatalf("pop returned too early")
	}
}

func TestQueuePopWakesOnPush(t *testing.T) {
	q := NewQueue(4)
	got := make(chan *Entry, 1)
	go func() { got <- q.Pop(2 * time.Second) }()

	time.Sleep(20 * time.Millisecond)
	_ = q.Push(entry(1, 1))

	select {
	case e := <-got:
		if e == nil || e.Seq != 1 {
			t.Fatalf("unexpected entry: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatalf("pop did not wake on push")
	}
}

func TestQueueFullRejects(t *testing.T) {
	q := NewQueue(2)
	_ = q.Push(entry(1, 1))
	_ = q.Push(entry(1, 2))
	if err := q.Push(entry(1, 3)); err != ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if q.Len() != 2 {
		t.Fatalf("len = %d", q.Len())
	}
}

func TestQueueCloseDrainsThenNil(t *testing.T) {
	q := NewQueue(4)
	_ = q.Push(entry(1, 1))
	q.Close()
	if err := q.Push(entry(1, 2)); err != ErrQueueClosed {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
	if e := q.Pop(50 * time.Millisecond); e == nil || e.Seq != 1 {
		t.Fatalf("queued entry should survive close: %+v", e)
	}
	if e := q.Pop(50 * time.Millisecond); e != nil {
		t.Fatalf("expected nil after drain, got %+v", e)
	}
}

func TestQueueConcurrentPushersLoseNothing(t *testing.T) {
	q := NewQueue(4096)
	const pushers = 8
	const perPusher = 100

	var wg sync.WaitGroup
	var seq uint64
	var mu sync.Mutex
	next := func() uint64 {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return seq
	}
	for i := 0; i < pushers; i++ {
		wg.Add(1)
		go func(class int) {
			defer wg.Done()
			for j := 0; j < perPusher; j++ {
				if err := q.Push(entry(class%3+1, next())); err != nil {
					t.Errorf("push failed: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	seen := map[uint64]bool{}
	lastClass := 0
	for i := 0; i < pushers*perPusher; i++ {
		e := q.Pop(100 * time.Millisecond)
		if e == nil {
			t.Fatalf("lost entries: popped %d of %d", i, pushers*perPusher)
		}
		if seen[e.Seq] {
			t.Fatalf("duplicate seq %d", e.Seq)
		}
		seen[e.Seq] = true
		if e.Class < lastClass {
			t.Fatalf("class order violated: %d after %d", e.Class, lastClass)
		}
		lastClass = e.Class
	}
}
