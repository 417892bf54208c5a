package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow("vector") {
		t.Error("first request within burst should be allowed")
	}
	if !l.Allow("vector") {
		t.Error("second request within burst should be allowed")
	}
	if l.Allow("vector") {
		t.Error("third immediate request should exceed the burst")
	}
}

func TestLimiterBackendsAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("vector") {
		t.Error("vector backend should start with a full bucket")
	}
	if !l.Allow("sparse") {
		t.Error("sparse backend should have its own bucket")
	}
}

func TestLimiterSetBackendRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetBackendRate("openai", 100, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("openai") {
			t.Errorf("request %d within custom burst should be allowed", i+1)
		}
	}
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow("slow") // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "slow"); err == nil {
		t.Error("Wait should fail once the context deadline passes")
	}
}

func TestLimiterWaitWithDelay(t *testing.T) {
	l := NewLimiter(1000, 10)

	start := time.Now()
	if err := l.WaitWithDelay(context.Background(), "llm", 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("elapsed %v, want at least the 20ms delay", elapsed)
	}
}
