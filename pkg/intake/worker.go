package intake

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"triagedesk/pkg/logger"
	"triagedesk/pkg/models"
)

const defaultPollInterval = 1 * time.Second

// TicketHook observes completed results, e.g. to publish ticket events.
// Hooks run on the worker goroutine after the submitter was resolved and
// must not block for long.
type TicketHook func(req *models.QueryRequest, res models.TicketResult)

// Processor is the worker's view of the query processor.
type Processor interface {
	Process(ctx context.Context, req *models.QueryRequest) models.TicketResult
}

// Worker is the single background consumer of the queue. It pops the
// globally next entry, processes it, and resolves the entry's slot --
// always, regardless of how processing went.
type Worker struct {
	q    *Queue
	proc Processor
	poll time.Duration
	hook TicketHook

	stop chan struct{}
	done chan struct{}
}

// NewWorker builds a Worker over q and proc. hook may be nil.
func NewWorker(q *Queue, proc Processor, poll time.Duration, hook TicketHook) *Worker {
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &Worker{
		q:    q,
		proc: proc,
		poll: poll,
		hook: hook,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (w *Worker) Start() {
	go w.run()
}

// Stop signals shutdown and waits up to timeout for the worker to finish
// its in-flight cycle. Returns false if the join timed out.
func (w *Worker) Stop(timeout time.Duration) bool {
	close(w.stop)
	select {
	case <-w.done:
		return true
	case <-time.After(timeout):
		logger.Warn("worker_join_timeout", "timeout", timeout)
		return false
	}
}

func (w *Worker) run() {
	defer close(w.done)
	logger.Info("worker_started", "poll_interval", w.poll)
	for {
		select {
		case <-w.stop:
			logger.Info("worker_stopped")
			return
		default:
		}

		e := w.q.Pop(w.poll)
		if e == nil {
			continue
		}
		w.handle(e)
	}
}

// handle processes one entry. A panic anywhere in the cycle is converted
// into a failure result; the slot is resolved exactly once either way.
func (w *Worker) handle(e *Entry) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker_panic", "query_id", e.Req.QueryID, "panic", r)
			e.Slot.Deliver(models.Failure(fmt.Sprint(r)))
		}
	}()

	logger.Info("processing_query", "class", e.Class, "seq", e.Seq, "query_id", e.Req.QueryID)
	start := time.Now()
	res := w.proc.Process(context.Background(), e.Req)
	processSeconds.Observe(time.Since(start).Seconds())

	outcome := "success"
	if !res.Success {
		outcome = "failure"
	}
	processedTotal.WithLabelValues(outcome).Inc()

	e.Slot.Deliver(res)

	if w.hook != nil {
		w.hook(e.Req, res)
	}
}

func classLabel(class int) string { return strconv.Itoa(class) }
