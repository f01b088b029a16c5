package depparse

import (
	"testing"
	"time"
)

func TestCallStatsSnapshot(t *testing.T) {
	stats := NewCallStats(time.Hour)
	stats.Record(100)
	stats.Record(200)
	stats.Record(300)
	stats.Record(400)
	stats.Record(500)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got %d/%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
}

func TestCallStatsPrunesOldSamples(t *testing.T) {
	stats := NewCallStats(10 * time.Millisecond)
	stats.Record(100)
	time.Sleep(25 * time.Millisecond)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}
}

func TestCallStatsClampsNegative(t *testing.T) {
	stats := NewCallStats(time.Hour)
	stats.Record(-5)
	snap := stats.Snapshot()
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamp to 0, got %d/%d", snap.MinMs, snap.MaxMs)
	}
}
