// Package queue provides the hand-off between API request handlers and the
// command worker.
//
// Queue is an unbounded FIFO guarded by a single mutex. Enqueue never blocks
// and never fails, so any number of request goroutines may submit commands
// concurrently. TryDequeue is non-blocking and is called only by the worker
// goroutine. Commands from one producer come out in that producer's
// submission order; commands from different producers come out in the order
// they acquired the lock.
//
// The queue is not persisted and has no capacity limit: a producer rate
// sustained above worker throughput grows memory without bound.
package queue
