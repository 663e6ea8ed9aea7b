package intake

import (
	"context"
	"errors"
	"sync"
	"time"

	"triagedesk/pkg/models"
)

// ErrWaitTimeout is returned by Slot.Wait when no result arrived within
// the ceiling.
var ErrWaitTimeout = errors.New("intake: result wait timed out")

// Slot is a one-shot rendezvous between the worker and a submitter. At
// most one value is ever delivered; the waiter observes either that
// value or a timeout, never both. A late delivery after the waiter gave
// up is silently discarded.
type Slot struct {
	ch   chan models.TicketResult
	once sync.Once
}

// NewSlot allocates an unused Slot.
func NewSlot() *Slot {
	return &Slot{ch: make(chan models.TicketResult, 1)}
}

// Deliver hands the result to the waiter. The buffered channel means the
// worker never blocks here even when the waiter already timed out;
// subsequent calls are no-ops.
func (s *Slot) Deliver(res models.TicketResult) {
	s.once.Do(func() { s.ch <- res })
}

// Wait blocks until a result is delivered, the timeout elapses, or ctx
// is done. The slot is terminal after Wait returns and must be discarded.
func (s *Slot) Wait(ctx context.Context, timeout time.Duration) (models.TicketResult, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case res := <-s.ch:
		return res, nil
	case <-t.C:
		return models.TicketResult{}, ErrWaitTimeout
	case <-ctx.Done():
		return models.TicketResult{}, ctx.Err()
	}
}
