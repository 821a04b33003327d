package bench

import (
	"testing"
	"time"

	"github.com/dsheffie/RandomAccess/config"
)

func TestGUPSRate(t *testing.T) {
	if got := GUPSRate(2_000_000_000, 2*time.Second); got != 1.0 {
		t.Errorf("GUPSRate(2e9, 2s) = %v, want 1.0", got)
	}
	if got := GUPSRate(100, 0); got != -1.0 {
		t.Errorf("GUPSRate(100, 0) = %v, want -1.0", got)
	}
}

func TestTableSizeFor(t *testing.T) {
	logSize, words := TableSizeFor(BenchConfig{LogTableSize: 10})
	if logSize != 10 || words != 1024 {
		t.Fatalf("explicit bits: got (%d, %d), want (10, 1024)", logSize, words)
	}

	// 1 MiB budget, half for the table: 64K words.
	logSize, words = TableSizeFor(BenchConfig{MemoryBytes: 1 << 20, Workers: 1})
	if logSize != 16 || words != 1<<16 {
		t.Fatalf("derived: got (%d, %d), want (16, %d)", logSize, words, 1<<16)
	}

	// Star mode splits the budget between workers.
	logSize, words = TableSizeFor(BenchConfig{MemoryBytes: 1 << 20, Workers: 4})
	if logSize != 14 || words != 1<<14 {
		t.Fatalf("star split: got (%d, %d), want (14, %d)", logSize, words, 1<<14)
	}
}

func TestRunBenchmarkSingle(t *testing.T) {
	perfStats := &config.PerformanceStats{}
	errorChan := make(chan string, 4)

	result, err := RunBenchmark(BenchConfig{
		LogTableSize: 10,
		Workers:      1,
		Verify:       true,
	}, errorChan, perfStats)
	if err != nil {
		t.Fatalf("benchmark failed: %v", err)
	}

	if result.Updates != 4096 {
		t.Errorf("updates = %d, want 4096", result.Updates)
	}
	if result.Errors != 0 {
		t.Errorf("errors = %d, want 0 for a single-threaded run", result.Errors)
	}
	if !result.Verified {
		t.Errorf("verification failed: %d errors in %d locations", result.Errors, result.Checked)
	}

	select {
	case msg := <-errorChan:
		t.Errorf("unexpected error reported: %s", msg)
	default:
	}

	perfStats.Lock()
	defer perfStats.Unlock()
	if perfStats.GUPS.Verified != "PASS" {
		t.Errorf("stats verified = %q, want PASS", perfStats.GUPS.Verified)
	}
	if perfStats.GUPS.Updates != 4096 {
		t.Errorf("stats updates = %d, want 4096", perfStats.GUPS.Updates)
	}
}

func TestRunBenchmarkStar(t *testing.T) {
	perfStats := &config.PerformanceStats{}
	errorChan := make(chan string, 4)

	result, err := RunBenchmark(BenchConfig{
		LogTableSize: 10,
		Workers:      2,
		Verify:       true,
	}, errorChan, perfStats)
	if err != nil {
		t.Fatalf("benchmark failed: %v", err)
	}

	// Every worker owns its table, so star mode stays exact too.
	if result.Updates != 2*4096 {
		t.Errorf("updates = %d, want %d", result.Updates, 2*4096)
	}
	if result.Errors != 0 {
		t.Errorf("errors = %d, want 0", result.Errors)
	}
	if result.Checked != 2*1024 {
		t.Errorf("checked = %d, want %d", result.Checked, 2*1024)
	}

	perfStats.Lock()
	defer perfStats.Unlock()
	if len(perfStats.Workers) != 2 {
		t.Fatalf("worker stats count = %d, want 2", len(perfStats.Workers))
	}
	for w, ws := range perfStats.Workers {
		if ws.Updates != 4096 {
			t.Errorf("worker %d updates = %d, want 4096", w, ws.Updates)
		}
		if ws.ErrorCount != 0 {
			t.Errorf("worker %d errors = %d, want 0", w, ws.ErrorCount)
		}
	}
}

func TestRunBenchmarkSkipVerify(t *testing.T) {
	perfStats := &config.PerformanceStats{}
	errorChan := make(chan string, 4)

	result, err := RunBenchmark(BenchConfig{
		LogTableSize: 8,
		Workers:      1,
		Verify:       false,
	}, errorChan, perfStats)
	if err != nil {
		t.Fatalf("benchmark failed: %v", err)
	}
	if !result.Skipped {
		t.Errorf("result not marked skipped")
	}

	perfStats.Lock()
	defer perfStats.Unlock()
	if perfStats.GUPS.Verified != "SKIPPED" {
		t.Errorf("stats verified = %q, want SKIPPED", perfStats.GUPS.Verified)
	}
}
