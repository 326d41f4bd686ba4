package queue

// QueuedInput is one raw line of user input waiting to be processed.
type QueuedInput struct {
	Text       string
	Trace      string
	EnqueuedAt int64 // unix milliseconds
}

// Status is a point-in-time snapshot of a ring's occupancy.
type Status struct {
	Length      int
	Capacity    int
	Utilization int // percent, 0-100
	Draining    bool
}

// Ring is a fixed-capacity circular queue of raw inputs with two insertion
// tiers. Normal inserts go at the tail and evict the oldest item when full;
// priority inserts go at the head and evict the newest normal item when full,
// so a priority item never displaces another priority item already queued
// ahead of it. It is not safe for concurrent use; the coordinator serializes
// access.
type Ring struct {
	slots    []QueuedInput
	head     int
	tail     int
	length   int
	draining bool
}

// NewRing creates a ring holding at most capacity items. Capacities below one
// are clamped to one.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{slots: make([]QueuedInput, capacity)}
}

// Enqueue inserts an item at the tail. When the ring is full the item at the
// head (the oldest) is evicted first, so Enqueue always succeeds.
func (r *Ring) Enqueue(text, trace string, ts int64) {
	n := len(r.slots)
	if r.length == n {
		r.slots[r.head] = QueuedInput{}
		r.head = (r.head + 1) % n
		r.length--
	}
	r.slots[r.tail] = QueuedInput{Text: text, Trace: trace, EnqueuedAt: ts}
	r.tail = (r.tail + 1) % n
	r.length++
}

// EnqueuePriority inserts an item just before the current head so it dequeues
// ahead of everything already queued. When the ring is full the item at the
// tail (the most recently queued normal item) is evicted first.
func (r *Ring) EnqueuePriority(text, trace string, ts int64) {
	n := len(r.slots)
	if r.length == n {
		r.tail = (r.tail - 1 + n) % n
		r.slots[r.tail] = QueuedInput{}
		r.length--
	}
	r.head = (r.head - 1 + n) % n
	r.slots[r.head] = QueuedInput{Text: text, Trace: trace, EnqueuedAt: ts}
	r.length++
}

// Dequeue copies the head item into out and clears its slot. It returns false
// when the ring is empty.
func (r *Ring) Dequeue(out *QueuedInput) bool {
	if r.length == 0 {
		return false
	}
	*out = r.slots[r.head]
	r.slots[r.head] = QueuedInput{}
	r.head = (r.head + 1) % len(r.slots)
	r.length--
	return true
}

// Len returns the number of queued items.
func (r *Ring) Len() int {
	return r.length
}

// SetDraining records whether a drain loop is currently consuming the ring.
// The flag is informational and only surfaces through Status.
func (r *Ring) SetDraining(d bool) {
	r.draining = d
}

// Status reports the ring's occupancy.
func (r *Ring) Status() Status {
	return Status{
		Length:      r.length,
		Capacity:    len(r.slots),
		Utilization: r.length * 100 / len(r.slots),
		Draining:    r.draining,
	}
}
