package core

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestValidationLimiter_AcquireRelease(t *testing.T) {
	limiter := NewValidationLimiter(2, 1*time.Second)

	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	if got := limiter.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount() = %d, want 1", got)
	}

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if got := limiter.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}

	limiter.Release()
	if got := limiter.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount() after Release = %d, want 1", got)
	}

	limiter.Release()
	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() after all releases = %d, want 0", got)
	}
}

func TestValidationLimiter_BlocksWhenFull(t *testing.T) {
	limiter := NewValidationLimiter(1, 100*time.Millisecond)

	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer limiter.Release()

	start := time.Now()
	err := limiter.Acquire(ctx)
	elapsed := time.Since(start)

	if err != ErrTooManyValidations {
		t.Errorf("Acquire() on full limiter error = %v, want ErrTooManyValidations", err)
	}
	if elapsed < 90*time.Millisecond {
		t.Errorf("Acquire() returned after %v, should have waited for timeout", elapsed)
	}
}

func TestValidationLimiter_UnblocksWaiter(t *testing.T) {
	limiter := NewValidationLimiter(1, 2*time.Second)

	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	acquired := make(chan error, 1)
	go func() {
		acquired <- limiter.Acquire(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	limiter.Release()

	select {
	case err := <-acquired:
		if err != nil {
			t.Errorf("waiting Acquire() error = %v, want nil after slot freed", err)
		}
		limiter.Release()
	case <-time.After(1 * time.Second):
		t.Fatal("waiting Acquire() did not unblock after Release")
	}
}

func TestValidationLimiter_TryAcquire(t *testing.T) {
	limiter := NewValidationLimiter(1, 1*time.Second)

	if !limiter.TryAcquire() {
		t.Error("TryAcquire() on empty limiter = false, want true")
	}
	if limiter.TryAcquire() {
		t.Error("TryAcquire() on full limiter = true, want false")
	}

	limiter.Release()

	if !limiter.TryAcquire() {
		t.Error("TryAcquire() after Release = false, want true")
	}
	limiter.Release()
}

func TestValidationLimiter_ContextCancellation(t *testing.T) {
	limiter := NewValidationLimiter(1, 10*time.Second)

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := limiter.Acquire(ctx)
	if err != context.Canceled {
		t.Errorf("Acquire() with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestValidationLimiter_ConcurrentAccess(t *testing.T) {
	const maxConcurrent = 3
	limiter := NewValidationLimiter(maxConcurrent, 5*time.Second)

	var (
		mu      sync.Mutex
		peak    int
		current int
	)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := limiter.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			defer limiter.Release()

			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if peak > maxConcurrent {
		t.Errorf("peak concurrency = %d, want <= %d", peak, maxConcurrent)
	}
	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() after all done = %d, want 0", got)
	}
}

func TestValidationLimiter_WaitForDrain(t *testing.T) {
	limiter := NewValidationLimiter(2, 1*time.Second)

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	go func() {
		time.Sleep(200 * time.Millisecond)
		limiter.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := limiter.WaitForDrain(ctx); err != nil {
		t.Errorf("WaitForDrain() error = %v", err)
	}
	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() after drain = %d, want 0", got)
	}
}

func TestValidationLimiter_WaitForDrainTimeout(t *testing.T) {
	limiter := NewValidationLimiter(1, 1*time.Second)

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := limiter.WaitForDrain(ctx); err != context.DeadlineExceeded {
		t.Errorf("WaitForDrain() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestValidationLimiter_Status(t *testing.T) {
	limiter := NewValidationLimiter(3, 1*time.Second)

	status := limiter.Status()
	if status.Active != 0 || status.Available != 3 || status.MaxConcurrent != 3 {
		t.Errorf("initial Status() = %+v, want 0 active, 3 available, 3 max", status)
	}

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	status = limiter.Status()
	if status.Active != 1 || status.Available != 2 {
		t.Errorf("Status() after Acquire = %+v, want 1 active, 2 available", status)
	}

	limiter.Release()
}

func TestValidationLimiter_DefaultValues(t *testing.T) {
	limiter := NewValidationLimiter(0, 0)

	if got := limiter.MaxConcurrent(); got != DefaultMaxConcurrentValidations {
		t.Errorf("MaxConcurrent() = %d, want default %d", got, DefaultMaxConcurrentValidations)
	}

	limiter = NewValidationLimiter(-1, -1*time.Second)
	if got := limiter.MaxConcurrent(); got != DefaultMaxConcurrentValidations {
		t.Errorf("MaxConcurrent() with negative input = %d, want default %d", got, DefaultMaxConcurrentValidations)
	}
}
