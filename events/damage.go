package events

import "github.com/yohamta/donburi"

// DamageEvent is one hit: Source dealt Amount to Target.
type DamageEvent struct {
	Source donburi.Entity
	Target donburi.Entity
	Amount int
}

// DamageQueue is a fixed-capacity FIFO ring. When full, new events are
// dropped and counted instead of growing the buffer.
type DamageQueue struct {
	buf   []DamageEvent
	head  int
	size  int
	total uint64 // lifetime drops

	dropped int // drops since the last TakeDropped
}

func NewDamageQueue(capacity int) *DamageQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &DamageQueue{buf: make([]DamageEvent, capacity)}
}

// Push enqueues ev, returning false if the ring was full.
func (q *DamageQueue) Push(ev DamageEvent) bool {
	if q.size == len(q.buf) {
		q.dropped++
		q.total++
		return false
	}
	q.buf[(q.head+q.size)%len(q.buf)] = ev
	q.size++
	return true
}

func (q *DamageQueue) Len() int { return q.size }
func (q *DamageQueue) Cap() int { return len(q.buf) }

// Dropped is the number of events dropped over the queue's lifetime.
func (q *DamageQueue) Dropped() uint64 { return q.total }

// TakeDropped returns the drops since the previous call and resets the count.
func (q *DamageQueue) TakeDropped() int {
	n := q.dropped
	q.dropped = 0
	return n
}

// Drain returns the queued events in FIFO order and empties the ring.
func (q *DamageQueue) Drain() []DamageEvent {
	if q.size == 0 {
		return nil
	}
	out := make([]DamageEvent, q.size)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.head = 0
	q.size = 0
	return out
}

// DamageTotal is the aggregated damage for one target.
type DamageTotal struct {
	Target donburi.Entity
	Amount int
	Hits   int
}

// Aggregate groups events by target. Results are ordered by each target's
// first appearance in evs.
func Aggregate(evs []DamageEvent) []DamageTotal {
	index := make(map[donburi.Entity]int, len(evs))
	var out []DamageTotal
	for _, ev := range evs {
		i, ok := index[ev.Target]
		if !ok {
			i = len(out)
			index[ev.Target] = i
			out = append(out, DamageTotal{Target: ev.Target})
		}
		out[i].Amount += ev.Amount
		out[i].Hits++
	}
	return out
}
