package concurrency

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestBufferPushPullRoundTrips(t *testing.T) {
	b := NewBuffer[int](2)
	b.Push(1)
	b.Push(2)

	v, err := b.Pull()
	if err != nil || v != 1 {
		t.Fatalf("expected (1, nil), got (%d, %v)", v, err)
	}
	v, err = b.Pull()
	if err != nil || v != 2 {
		t.Fatalf("expected (2, nil), got (%d, %v)", v, err)
	}
}

func TestBufferStopConsumingWakesBlockedPull(t *testing.T) {
	b := NewBuffer[int](1)
	done := make(chan error, 1)
	go func() {
		_, err := b.Pull()
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	b.StopConsuming()

	select {
	case err := <-done:
		if err != ErrStoppedConsuming {
			t.Fatalf("expected ErrStoppedConsuming, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Pull did not wake up after StopConsuming")
	}
}

func TestBufferDrainsBeforeReportingStopped(t *testing.T) {
	b := NewBuffer[int](2)
	b.Push(42)
	b.StopConsuming()

	v, err := b.Pull()
	if err != nil || v != 42 {
		t.Fatalf("expected to drain the queued value before reporting stopped, got (%d, %v)", v, err)
	}
	if _, err := b.Pull(); err != ErrStoppedConsuming {
		t.Fatalf("expected ErrStoppedConsuming once drained, got %v", err)
	}
}

func TestPoolRunsEnqueuedTasks(t *testing.T) {
	pool := NewPool(2, 8)
	var count int64
	const n = 20
	for i := 0; i < n; i++ {
		pool.Enqueue(func() { atomic.AddInt64(&count, 1) })
	}
	pool.Shutdown()
	if got := atomic.LoadInt64(&count); got != n {
		t.Fatalf("expected %d completed tasks, got %d", n, got)
	}
}
