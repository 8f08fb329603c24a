package testkit

import "testing"

var lookupSeam = func(key string) string { return "real:" + key }

func TestSwapRestores(t *testing.T) {
	t.Run("swapped-in-subtest", func(t *testing.T) {
		Swap(t, &lookupSeam, func(key string) string { return "fake" })
		if got := lookupSeam("x"); got != "fake" {
			t.Fatalf("swap did not take effect, got %q", got)
		}
	})
	// Cleanup from the subtest must have restored the original
	if got := lookupSeam("x"); got != "real:x" {
		t.Fatalf("swap did not restore, got %q", got)
	}
}

func TestSwapValue(t *testing.T) {
	n := 1
	t.Run("inner", func(t *testing.T) {
		Swap(t, &n, 42)
		if n != 42 {
			t.Fatalf("n = %d, want 42", n)
		}
	})
	if n != 1 {
		t.Fatalf("n = %d after restore, want 1", n)
	}
}

func TestMustPanicHelpers(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
}

func TestSerial(t *testing.T) {
	Serial(t)
	// holding the lock: just verify nothing deadlocks on nested cleanup
}
