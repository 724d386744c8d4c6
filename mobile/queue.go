package mobile

import (
	"sync"

	"github.com/hyperscape/shell/internal/platform"
)

type delivery struct {
	target *platform.Mobile
	batch  []string
}

// queue hands batches to their link source from a single goroutine. It is
// unbounded so a push from inside a delivery never blocks.
type queue struct {
	mu      sync.Mutex
	items   []delivery
	running bool
	idle    *sync.Cond
}

func newQueue() *queue {
	q := &queue{}
	q.idle = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(target *platform.Mobile, batch []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, delivery{target: target, batch: batch})
	if !q.running {
		q.running = true
		go q.drain()
	}
}

func (q *queue) drain() {
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.running = false
			q.idle.Broadcast()
			q.mu.Unlock()
			return
		}
		d := q.items[0]
		q.items = q.items[1:]
		q.mu.Unlock()

		d.target.Deliver(d.batch)
	}
}

// wait blocks until every pushed batch has been delivered.
func (q *queue) wait() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.running {
		q.idle.Wait()
	}
}
