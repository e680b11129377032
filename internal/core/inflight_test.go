package core

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestInFlight_AcquireRelease(t *testing.T) {
	guard := NewInFlight()

	// Initial state
	if got := guard.ActiveCount(); got != 0 {
		t.Errorf("initial ActiveCount = %d, want 0", got)
	}

	if !guard.TryAcquire(createFormKey) {
		t.Fatal("first TryAcquire(create) should succeed")
	}
	if !guard.Busy(createFormKey) {
		t.Error("create should be busy after TryAcquire")
	}

	// A different form is independent
	if !guard.TryAcquire(editFormKey(7)) {
		t.Fatal("TryAcquire(edit:7) should succeed while create is busy")
	}
	if got := guard.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}

	guard.Release(createFormKey)
	if guard.Busy(createFormKey) {
		t.Error("create should not be busy after Release")
	}

	guard.Release(editFormKey(7))
	if got := guard.ActiveCount(); got != 0 {
		t.Errorf("after Release, ActiveCount = %d, want 0", got)
	}
}

func TestInFlight_RejectsSameForm(t *testing.T) {
	guard := NewInFlight()

	if !guard.TryAcquire(editFormKey(3)) {
		t.Fatal("first TryAcquire should succeed")
	}

	// Second TryAcquire should fail immediately (no blocking)
	start := time.Now()
	if guard.TryAcquire(editFormKey(3)) {
		t.Error("second TryAcquire of the same form should fail")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("TryAcquire blocked for %v", elapsed)
	}

	guard.Release(editFormKey(3))
	if !guard.TryAcquire(editFormKey(3)) {
		t.Error("TryAcquire after Release should succeed")
	}
	guard.Release(editFormKey(3))
}

func TestInFlight_ConcurrentSameForm(t *testing.T) {
	const attempts = 20

	guard := NewInFlight()
	release := make(chan struct{})

	var wg sync.WaitGroup
	var acquired atomic.Int32

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.TryAcquire(createFormKey) {
				acquired.Add(1)
				<-release
				guard.Release(createFormKey)
			}
		}()
	}

	// Losers return immediately; give the winner time to park.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := acquired.Load(); got != 1 {
		t.Errorf("%d goroutines acquired the same form, want 1", got)
	}
	if got := guard.ActiveCount(); got != 0 {
		t.Errorf("final ActiveCount = %d, want 0", got)
	}
}

func TestInFlight_WaitForDrain(t *testing.T) {
	guard := NewInFlight()
	guard.TryAcquire(createFormKey)
	guard.TryAcquire(editFormKey(1))

	drainDone := make(chan error, 1)
	go func() {
		drainDone <- guard.WaitForDrain(context.Background())
	}()

	// Ensure WaitForDrain is blocked
	select {
	case <-drainDone:
		t.Error("WaitForDrain returned too early")
	case <-time.After(80 * time.Millisecond):
	}

	guard.Release(createFormKey)

	// Still waiting (one active)
	select {
	case <-drainDone:
		t.Error("WaitForDrain returned with one active")
	case <-time.After(80 * time.Millisecond):
	}

	guard.Release(editFormKey(1))

	select {
	case err := <-drainDone:
		if err != nil {
			t.Errorf("WaitForDrain returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("WaitForDrain did not complete after all released")
	}
}

func TestInFlight_WaitForDrain_ContextCancelled(t *testing.T) {
	guard := NewInFlight()
	guard.TryAcquire(createFormKey)

	cancelCtx, cancel := context.WithCancel(context.Background())

	drainDone := make(chan error, 1)
	go func() {
		drainDone <- guard.WaitForDrain(cancelCtx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-drainDone:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Error("WaitForDrain did not return after context cancellation")
	}

	guard.Release(createFormKey)
}

func TestInFlight_Status(t *testing.T) {
	guard := NewInFlight()

	status := guard.Status()
	if status.Active != 0 || status.Forms != nil {
		t.Errorf("initial Status = %+v, want empty", status)
	}

	guard.TryAcquire(editFormKey(9))
	guard.TryAcquire(createFormKey)

	status = guard.Status()
	if status.Active != 2 {
		t.Errorf("Active = %d, want 2", status.Active)
	}
	if want := []string{"create", "edit:9"}; !slices.Equal(status.Forms, want) {
		t.Errorf("Forms = %v, want %v", status.Forms, want)
	}
}
