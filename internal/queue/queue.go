package queue

import "container/heap"

// Entry is a single element of the queue. Seq records the arrival order
// and breaks ties between equal priorities.
type Entry[T any] struct {
	Priority float64
	Seq      uint64
	Value    T
}

type entries[T any] []Entry[T]

func (e entries[T]) Len() int { return len(e) }
func (e entries[T]) Less(i, j int) bool {
	if e[i].Priority != e[j].Priority {
		return e[i].Priority < e[j].Priority
	}
	return e[i].Seq < e[j].Seq
}
func (e entries[T]) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries[T]) Push(x any) {
	*e = append(*e, x.(Entry[T]))
}

func (e *entries[T]) Pop() any {
	old := *e
	n := len(old)
	item := old[n-1]
	var zero Entry[T]
	old[n-1] = zero
	*e = old[:n-1]
	return item
}

// PriorityQueue is a min-priority queue. Entries with the same priority
// are returned in the order they were pushed. Values are never updated
// in place: pushing a value that is already queued adds a second entry.
type PriorityQueue[T any] struct {
	items entries[T]
	seq   uint64
}

func New[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

func (q *PriorityQueue[T]) Len() int {
	return q.items.Len()
}

func (q *PriorityQueue[T]) Push(priority float64, value T) {
	heap.Push(&q.items, Entry[T]{Priority: priority, Seq: q.seq, Value: value})
	q.seq++
}

// Pop removes and returns the entry with the lowest priority. The boolean
// is false when the queue is empty.
func (q *PriorityQueue[T]) Pop() (Entry[T], bool) {
	if q.items.Len() == 0 {
		return Entry[T]{}, false
	}
	return heap.Pop(&q.items).(Entry[T]), true
}
