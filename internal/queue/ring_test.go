package queue

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func drain(r *Ring) []string {
	var out []string
	var item QueuedInput
	for r.Dequeue(&item) {
		out = append(out, item.Text)
	}
	return out
}

func TestRing_Enqueue(t *testing.T) {
	tests := map[string]struct {
		capacity int
		inputs   []string
		exp      []string
	}{
		"fifo order": {
			capacity: 4,
			inputs:   []string{"a", "b", "c"},
			exp:      []string{"a", "b", "c"},
		},
		"exactly full": {
			capacity: 3,
			inputs:   []string{"a", "b", "c"},
			exp:      []string{"a", "b", "c"},
		},
		"overflow evicts oldest": {
			capacity: 3,
			inputs:   []string{"a", "b", "c", "d"},
			exp:      []string{"b", "c", "d"},
		},
		"overflow twice": {
			capacity: 2,
			inputs:   []string{"a", "b", "c", "d"},
			exp:      []string{"c", "d"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewRing(tt.capacity)
			for i, in := range tt.inputs {
				r.Enqueue(in, "t", int64(i))
			}

			testutil.AssertEqual(t, "length", r.Len(), len(tt.exp))

			got := drain(r)
			testutil.AssertEqual(t, "drained count", len(got), len(tt.exp))
			for i := range tt.exp {
				testutil.AssertEqual(t, "item", got[i], tt.exp[i])
			}
		})
	}
}

func TestRing_EnqueuePriority(t *testing.T) {
	r := NewRing(4)
	r.Enqueue("a", "t", 0)
	r.Enqueue("b", "t", 1)
	r.EnqueuePriority("exit", "t", 2)

	got := drain(r)
	testutil.AssertEqual(t, "drained count", len(got), 3)
	testutil.AssertEqual(t, "first", got[0], "exit")
	testutil.AssertEqual(t, "second", got[1], "a")
	testutil.AssertEqual(t, "third", got[2], "b")
}

func TestRing_EnqueuePriority_FIFOWithinTier(t *testing.T) {
	r := NewRing(8)
	r.Enqueue("a", "t", 0)
	r.EnqueuePriority("p1", "t", 1)
	r.EnqueuePriority("p2", "t", 2)

	// p2 was queued after p1 but both jump the normal tier. Insertion is
	// always exactly at head, so p2 lands in front of p1.
	got := drain(r)
	testutil.AssertEqual(t, "first", got[0], "p2")
	testutil.AssertEqual(t, "second", got[1], "p1")
	testutil.AssertEqual(t, "third", got[2], "a")
}

func TestRing_EnqueuePriority_UnderPressure(t *testing.T) {
	r := NewRing(3)
	r.Enqueue("a", "t", 0)
	r.Enqueue("b", "t", 1)
	r.Enqueue("c", "t", 2)

	// Full ring: the priority insert must sacrifice the most recently
	// queued normal item (c), never the oldest.
	r.EnqueuePriority("exit", "t", 3)

	got := drain(r)
	testutil.AssertEqual(t, "drained count", len(got), 3)
	testutil.AssertEqual(t, "first", got[0], "exit")
	testutil.AssertEqual(t, "second", got[1], "a")
	testutil.AssertEqual(t, "third", got[2], "b")
}

func TestRing_Dequeue_Empty(t *testing.T) {
	r := NewRing(2)

	var item QueuedInput
	testutil.AssertEqual(t, "dequeue on empty", r.Dequeue(&item), false)

	r.Enqueue("a", "t", 0)
	testutil.AssertEqual(t, "dequeue", r.Dequeue(&item), true)
	testutil.AssertEqual(t, "text", item.Text, "a")
	testutil.AssertEqual(t, "dequeue drained", r.Dequeue(&item), false)
}

func TestRing_Dequeue_ClearsSlot(t *testing.T) {
	r := NewRing(2)
	r.Enqueue("secret", "trace-1", 42)

	var item QueuedInput
	r.Dequeue(&item)

	// Slot hygiene: nothing of the consumed item remains in the ring.
	for i := range r.slots {
		testutil.AssertEqual(t, "slot text", r.slots[i].Text, "")
		testutil.AssertEqual(t, "slot trace", r.slots[i].Trace, "")
	}
}

func TestRing_Status(t *testing.T) {
	r := NewRing(4)
	r.Enqueue("a", "t", 0)
	r.Enqueue("b", "t", 1)
	r.SetDraining(true)

	s := r.Status()
	testutil.AssertEqual(t, "length", s.Length, 2)
	testutil.AssertEqual(t, "capacity", s.Capacity, 4)
	testutil.AssertEqual(t, "utilization", s.Utilization, 50)
	testutil.AssertEqual(t, "draining", s.Draining, true)
}

func TestRing_WrapAround(t *testing.T) {
	r := NewRing(3)
	var item QueuedInput

	// Cycle the indices past the array boundary a few times.
	for i := 0; i < 10; i++ {
		r.Enqueue("x", "t", int64(i))
		if !r.Dequeue(&item) {
			t.Fatalf("dequeue %d failed", i)
		}
	}

	r.Enqueue("a", "t", 0)
	r.Enqueue("b", "t", 1)
	r.EnqueuePriority("p", "t", 2)

	got := drain(r)
	testutil.AssertEqual(t, "first", got[0], "p")
	testutil.AssertEqual(t, "second", got[1], "a")
	testutil.AssertEqual(t, "third", got[2], "b")
}
