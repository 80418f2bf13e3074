package reactotron

import (
	"testing"
	"time"
)

func TestStopwatch_Elapsed(t *testing.T) {
	sw := NewStopwatch()

	first := sw.Elapsed()
	if first < 0 {
		t.Fatalf("Elapsed() = %v, want >= 0", first)
	}

	time.Sleep(10 * time.Millisecond)

	second := sw.Elapsed()
	if second <= first {
		t.Errorf("Elapsed() did not grow: %v then %v", first, second)
	}
}

func TestStopwatch_StopLatches(t *testing.T) {
	sw := NewStopwatch()
	time.Sleep(5 * time.Millisecond)

	stopped := sw.Stop()
	if stopped <= 0 {
		t.Fatalf("Stop() = %v, want > 0", stopped)
	}

	time.Sleep(10 * time.Millisecond)

	if got := sw.Elapsed(); got != stopped {
		t.Errorf("Elapsed() after Stop = %v, want latched %v", got, stopped)
	}
	if got := sw.Stop(); got != stopped {
		t.Errorf("second Stop() = %v, want first reading %v", got, stopped)
	}
}
