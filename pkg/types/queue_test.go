package types

import (
	"sync"
	"testing"
)

func TestControlledQueueFIFO(t *testing.T) {
	cq := NewControlledQueue[int]()
	for i := 0; i < 5; i++ {
		if !cq.Send(i) {
			t.Fatalf("send %d failed", i)
		}
	}
	if cq.Len() != 5 {
		t.Fatalf("Len = %d, want 5", cq.Len())
	}
	for i := 0; i < 5; i++ {
		v, ok := cq.Recv()
		if !ok || v != i {
			t.Fatalf("Recv = %d, %v, want %d, true", v, ok, i)
		}
	}
	canRecv, _, ok := cq.AttemptRecv(false)
	if canRecv || !ok {
		t.Errorf("AttemptRecv on empty = %v, %v, want false, true", canRecv, ok)
	}
}

func TestControlledQueueCloseDrains(t *testing.T) {
	cq := NewControlledQueue[string]()
	cq.Send("a")
	cq.Send("b")
	cq.Close()

	if cq.Send("c") {
		t.Error("Send after Close should fail")
	}
	for _, want := range []string{"a", "b"} {
		v, ok := cq.Recv()
		if !ok || v != want {
			t.Fatalf("Recv = %q, %v, want %q, true", v, ok, want)
		}
	}
	if _, ok := cq.Recv(); ok {
		t.Error("Recv on closed and drained queue should report !ok")
	}
}

func TestControlledQueueConcurrentReceivers(t *testing.T) {
	const n = 1000
	cq := NewControlledQueue[int]()

	var mu sync.Mutex
	seen := make(map[int]bool, n)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := cq.Recv()
				if !ok {
					return
				}
				mu.Lock()
				seen[v] = true
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < n; i++ {
		cq.Send(i)
	}
	cq.Close()
	wg.Wait()

	if len(seen) != n {
		t.Errorf("received %d distinct values, want %d", len(seen), n)
	}
}
