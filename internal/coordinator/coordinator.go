package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixil98/go-console/internal/queue"
)

// Processor handles one dequeued input. It may suspend (engine calls,
// narration delays); the drain loop awaits it before touching the next item,
// which is what gives downstream consumers their total ordering.
type Processor func(ctx context.Context, in queue.QueuedInput) error

// Coordinator drains a priority ring buffer through a processor, one item at
// a time. At most one drain loop exists at any moment; enqueues during a
// drain are picked up by the loop already running. That single-flight
// property is what makes the processor's shared scratch buffers (parse
// scratch, effect buffer, session state) safe without locks.
type Coordinator struct {
	mu       sync.Mutex
	ring     *queue.Ring
	draining bool

	proc    Processor
	stopped atomic.Bool
	idle    sync.WaitGroup
}

func New(capacity int, proc Processor) *Coordinator {
	return &Coordinator{
		ring: queue.NewRing(capacity),
		proc: proc,
	}
}

// Enqueue queues a raw line at normal priority and starts a drain if none is
// running. Returns false once the coordinator has been stopped.
func (c *Coordinator) Enqueue(ctx context.Context, text, trace string) bool {
	return c.enqueue(ctx, text, trace, false)
}

// EnqueuePriority queues a raw line ahead of the normal backlog.
func (c *Coordinator) EnqueuePriority(ctx context.Context, text, trace string) bool {
	return c.enqueue(ctx, text, trace, true)
}

func (c *Coordinator) enqueue(ctx context.Context, text, trace string, priority bool) bool {
	if c.stopped.Load() {
		return false
	}

	c.mu.Lock()
	ts := time.Now().UnixMilli()
	if priority {
		c.ring.EnqueuePriority(text, trace, ts)
	} else {
		c.ring.Enqueue(text, trace, ts)
	}

	if !c.draining {
		c.draining = true
		c.ring.SetDraining(true)
		c.idle.Add(1)
		go c.drain(ctx)
	}
	c.mu.Unlock()

	return true
}

func (c *Coordinator) drain(ctx context.Context) {
	defer c.idle.Done()

	var item queue.QueuedInput
	for {
		c.mu.Lock()
		if c.stopped.Load() || !c.ring.Dequeue(&item) {
			c.draining = false
			c.ring.SetDraining(false)
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()

		if err := c.proc(ctx, item); err != nil {
			// A processor error is a defect, not a user condition.
			// Surface it and park the loop; queued items survive and
			// the next enqueue restarts draining.
			slog.Error("processing input", "trace", item.Trace, "error", err)
			c.mu.Lock()
			c.draining = false
			c.ring.SetDraining(false)
			c.mu.Unlock()
			return
		}
	}
}

// Stop permanently rejects new input and lets the current drain exit between
// items. It never interrupts an in-flight processor call.
func (c *Coordinator) Stop() {
	c.stopped.Store(true)
}

// Wait blocks until the active drain loop (if any) has parked. Mostly useful
// in tests and during shutdown.
func (c *Coordinator) Wait() {
	c.idle.Wait()
}

// Status reports the ring's occupancy.
func (c *Coordinator) Status() queue.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ring.Status()
}
