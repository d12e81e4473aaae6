// Package queue provides the shared candidate work queue.
package queue

import (
	"container/heap"
	"errors"
	"sync"

	"github.com/PentesterFlow/leftover/internal/generate"
)

var (
	ErrQueueEmpty  = errors.New("queue is empty")
	ErrQueueClosed = errors.New("queue is closed")
	ErrQueueFull   = errors.New("queue at capacity")
)

// item wraps a candidate with its admission sequence.
type item struct {
	candidate generate.Candidate
	seq       uint64
}

// candidateHeap orders by tier, then by admission order within a tier
// so workers drain the generator's sequence faithfully.
type candidateHeap []*item

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].candidate.Tier != h[j].candidate.Tier {
		return h[i].candidate.Tier < h[j].candidate.Tier
	}
	return h[i].seq < h[j].seq
}

func (h candidateHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(*item))
}

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return it
}

// WorkQueue is a thread-safe priority queue of scan candidates.
type WorkQueue struct {
	mu       sync.RWMutex
	h        candidateHeap
	closed   bool
	cond     *sync.Cond
	capacity int
	seq      uint64
}

// New creates a work queue. Zero capacity means unbounded.
func New(capacity int) *WorkQueue {
	q := &WorkQueue{
		h:        make(candidateHeap, 0),
		capacity: capacity,
	}
	q.cond = sync.NewCond(&q.mu)
	heap.Init(&q.h)
	return q
}

// Push adds a candidate to the queue.
func (q *WorkQueue) Push(c generate.Candidate) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if q.capacity > 0 && len(q.h) >= q.capacity {
		return ErrQueueFull
	}

	q.seq++
	heap.Push(&q.h, &item{candidate: c, seq: q.seq})
	q.cond.Signal()
	return nil
}

// Pop removes and returns the highest-priority candidate without
// blocking.
func (q *WorkQueue) Pop() (generate.Candidate, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.h) == 0 {
		if q.closed {
			return generate.Candidate{}, ErrQueueClosed
		}
		return generate.Candidate{}, ErrQueueEmpty
	}

	it := heap.Pop(&q.h).(*item)
	return it.candidate, nil
}

// PopWait blocks until a candidate is available or the queue is
// closed and drained.
func (q *WorkQueue) PopWait() (generate.Candidate, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.h) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.h) == 0 {
		return generate.Candidate{}, ErrQueueClosed
	}

	it := heap.Pop(&q.h).(*item)
	return it.candidate, nil
}

// Len returns the number of queued candidates.
func (q *WorkQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.h)
}

// Close stops admissions and wakes blocked consumers. Queued
// candidates can still be drained.
func (q *WorkQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Closed reports whether the queue has been closed.
func (q *WorkQueue) Closed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
