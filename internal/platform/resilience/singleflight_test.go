package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightDeduplicates(t *testing.T) {
	var flight SingleFlight
	var executions atomic.Int32
	var shared atomic.Int32
	release := make(chan struct{})

	const callers = 8

	// The executing fn blocks until every caller has reached Do, so the
	// other callers must find the call in flight and wait on it.
	var entered sync.WaitGroup
	entered.Add(callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entered.Done()
			value, err, wasShared := flight.Do("slate:2026-01-05", func() (any, error) {
				executions.Add(1)
				entered.Wait()
				<-release
				return 42, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if value != 42 {
				t.Errorf("unexpected value: %v", value)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	entered.Wait()
	// Give the waiters time to park on the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected single execution, got %d", got)
	}
	if got := shared.Load(); got != callers-1 {
		t.Fatalf("expected %d shared results, got %d", callers-1, got)
	}
}

func TestSingleFlightDistinctKeys(t *testing.T) {
	var flight SingleFlight
	var executions atomic.Int32

	for _, key := range []string{"a", "b", "a"} {
		if _, err, _ := flight.Do(key, func() (any, error) {
			executions.Add(1)
			return nil, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Sequential calls re-execute; only concurrent calls share.
	if got := executions.Load(); got != 3 {
		t.Fatalf("expected 3 executions, got %d", got)
	}
}
