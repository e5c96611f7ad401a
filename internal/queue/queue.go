package queue

import (
	"sync"

	"lumen/internal/command"
)

// Queue is a thread-safe FIFO of commands.
type Queue struct {
	mu    sync.Mutex
	items []command.Command
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{items: make([]command.Command, 0, 64)}
}

// Enqueue appends cmd to the back of the queue. Safe for concurrent use.
func (q *Queue) Enqueue(cmd command.Command) {
	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()
}

// TryDequeue removes and returns the oldest command, or false when empty.
func (q *Queue) TryDequeue() (command.Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return command.Command{}, false
	}

	cmd := q.items[0]
	// Zero the slot so the backing array does not pin params maps.
	q.items[0] = command.Command{}
	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}
	return cmd, true
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
