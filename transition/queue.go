package transition

import (
	"time"

	"github.com/kastheco/fold/markup"
)

// Queue is an engine without animation. Extents jump immediately and
// completions wait for Flush, which makes asynchronous completion
// deterministic for tests and static rendering.
type Queue struct {
	pending []func()
	extents map[*markup.Element]float64
}

func NewQueue() *Queue {
	return &Queue{extents: make(map[*markup.Element]float64)}
}

func (q *Queue) Reveal(target *markup.Element, _ time.Duration, _ string, done func()) {
	q.extents[target] = 1
	q.enqueue(done)
}

func (q *Queue) Collapse(target *markup.Element, _ time.Duration, _ string, done func()) {
	q.extents[target] = 0
	q.enqueue(done)
}

func (q *Queue) Settle(target *markup.Element, open bool) {
	q.extents[target] = goal(open)
}

func (q *Queue) Extent(target *markup.Element) float64 {
	return q.extents[target]
}

func (q *Queue) enqueue(done func()) {
	if done == nil {
		done = func() {}
	}
	q.pending = append(q.pending, done)
}

// Pending returns the number of completions not yet delivered.
func (q *Queue) Pending() int { return len(q.pending) }

// Flush delivers pending completions in request order, including any queued
// by the completions themselves, and returns how many fired.
func (q *Queue) Flush() int {
	n := 0
	for len(q.pending) > 0 {
		next := q.pending[0]
		q.pending = q.pending[1:]
		next()
		n++
	}
	return n
}

// FlushOne delivers only the oldest pending completion.
func (q *Queue) FlushOne() bool {
	if len(q.pending) == 0 {
		return false
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	next()
	return true
}
