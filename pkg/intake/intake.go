package intake

import (
	"context"
	"sync/atomic"
	"time"

	"triagedesk/pkg/logger"
	"triagedesk/pkg/models"
	"triagedesk/pkg/priority"
)

const defaultWaitCeiling = 600 * time.Second

// MsgProcessingTimeout is surfaced when the wait ceiling elapses.
const MsgProcessingTimeout = "Processing timeout"

// Options configures a Dispatcher; zero values pick defaults.
type Options struct {
	QueueCapacity int
	// WaitCeiling bounds how long Submit blocks for a result.
	WaitCeiling time.Duration
	// PollInterval is how often the idle worker re-checks for shutdown.
	PollInterval time.Duration
	// OnTicket observes completed results on the worker goroutine.
	OnTicket TicketHook
}

// Dispatcher is the submission façade over the queue and worker. Any
// number of goroutines may Submit concurrently; exactly one worker
// serves them in (class, arrival) order.
type Dispatcher struct {
	q       *Queue
	worker  *Worker
	ceiling time.Duration
	seq     uint64
}

// NewDispatcher wires a queue and worker around proc. Call Start to
// begin consuming.
func NewDispatcher(proc Processor, opts Options) *Dispatcher {
	capacity := opts.QueueCapacity
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	ceiling := opts.WaitCeiling
	if ceiling <= 0 {
		ceiling = defaultWaitCeiling
	}
	q := NewQueue(capacity)
	return &Dispatcher{
		q:       q,
		worker:  NewWorker(q, proc, opts.PollInterval, opts.OnTicket),
		ceiling: ceiling,
	}
}

// Start launches the background worker.
func (d *Dispatcher) Start() { d.worker.Start() }

// Stop closes the queue and joins the worker with a bounded wait.
func (d *Dispatcher) Stop(joinTimeout time.Duration) bool {
	d.q.Close()
	return d.worker.Stop(joinTimeout)
}

// Submit enqueues req and blocks until the worker delivers a result or
// the wait ceiling elapses. The request keeps its place in the queue on
// timeout; the worker's late result is then discarded.
func (d *Dispatcher) Submit(ctx context.Context, req *models.QueryRequest) models.TicketResult {
	class := priority.Class(req)
	e := &Entry{
		Class: class,
		Seq:   atomic.AddUint64(&d.seq, 1),
		Req:   req,
		Slot:  NewSlot(),
	}

	if err := d.q.Push(e); err != nil {
		rejectedTotal.Inc()
		logger.Warn("submit_rejected", "error", err, "query_id", req.QueryID)
		return models.Failure(err.Error())
	}
	submittedTotal.WithLabelValues(classLabel(class)).Inc()

	res, err := e.Slot.Wait(ctx, d.ceiling)
	if err != nil {
		timedOutTotal.Inc()
		logger.Warn("submit_timeout", "class", class, "seq", e.Seq, "query_id", req.QueryID)
		return models.Failure(MsgProcessingTimeout)
	}
	return res
}

// QueueDepth returns the number of pending entries, for health probes.
func (d *Dispatcher) QueueDepth() int { return d.q.Len() }
