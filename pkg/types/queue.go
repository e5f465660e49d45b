package types

import (
	"sync"
)

// FIFO with unlimited capacity and internal buffer access
// not thread safe
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v
}

// 1 ctrl M send N recv
type ControlledQueue[T any] struct {
	data          queue[T]
	mu            sync.Mutex
	requestRecvCh chan struct{}
	stopCh        chan struct{}
	closed        bool
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	return &ControlledQueue[T]{
		stopCh:        make(chan struct{}),
		requestRecvCh: make(chan struct{}, 1),
	}
}

// stops accepting values, receivers drain what is left
// only call once from ctrl
func (cq *ControlledQueue[T]) Close() {
	cq.mu.Lock()
	cq.closed = true
	close(cq.stopCh)
	cq.mu.Unlock()
}

// return true on Send
// return false if closed and not Send
func (cq *ControlledQueue[T]) Send(v T) bool {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return false
	}
	cq.data.push(v)
	cq.wake()
	return true
}

// wakes one blocked receiver, caller holds mu
func (cq *ControlledQueue[T]) wake() {
	select {
	case cq.requestRecvCh <- struct{}{}:
	default:
	}
}

// blocks on empty to wait to receive
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.AttemptRecv(true)
	return v, ok
}

// return (false, zero, true) on empty
// return (true, v, true) on recv
// return (true, zero, false) on closed and drained
// can opt out of blocking on empty
func (cq *ControlledQueue[T]) AttemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	for {
		cq.mu.Lock()
		if cq.data.len() > 0 {
			break
		}
		closed := cq.closed
		cq.mu.Unlock()
		if closed {
			return true, v, false
		}
		if !blockOnEmpty {
			return false, v, true
		}
		select {
		case <-cq.requestRecvCh:
		case <-cq.stopCh:
		}
	}

	v = cq.data.pop()
	// more values left, pass the wakeup on to the next receiver
	if cq.data.len() > 0 {
		cq.wake()
	}
	cq.mu.Unlock()
	return true, v, true
}

func (cq *ControlledQueue[T]) Len() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.data.len()
}
