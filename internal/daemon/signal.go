package daemon

import "sync"

// stopSignal is a one-shot flag shared by the controller and the worker.
// Once set it stays set.
type stopSignal struct {
	once sync.Once
	ch   chan struct{}
}

func newStopSignal() *stopSignal {
	return &stopSignal{ch: make(chan struct{})}
}

func (s *stopSignal) Set() {
	s.once.Do(func() { close(s.ch) })
}

func (s *stopSignal) Done() <-chan struct{} {
	return s.ch
}
