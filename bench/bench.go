package bench

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dsheffie/RandomAccess/config"
	"github.com/dsheffie/RandomAccess/gups"
	"github.com/dsheffie/RandomAccess/utils"

	"golang.org/x/sys/unix"
)

// GUPSRate converts an update count and a timed section into billions of
// updates per second. A section too short for the clock to resolve reports
// -1 rather than dividing by zero.
func GUPSRate(updates uint64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return -1.0
	}
	return float64(updates) / secs / 1e9
}

// TableSizeFor resolves the table geometry for one worker. An explicit bits
// setting wins; otherwise the table is the largest power of two fitting half
// this worker's share of the memory budget.
func TableSizeFor(cfg BenchConfig) (logSize uint, words uint64) {
	if cfg.LogTableSize > 0 {
		return cfg.LogTableSize, uint64(1) << cfg.LogTableSize
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return gups.SizeForMemory(cfg.MemoryBytes / uint64(workers))
}

// RunBenchmark allocates one table per worker, drives the update kernel on
// every worker inside a single timed section, then verifies each table.
// Worker 0 with Workers=1 is the reference single-cpu run; more workers is
// star mode: fully independent kernel instances, one per CPU, no shared
// table. Verification failures are reported through errorChan; the returned
// error covers only fatal conditions (allocation).
func RunBenchmark(cfg BenchConfig, errorChan chan<- string, perfStats *config.PerformanceStats) (BenchResult, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	logSize, words := TableSizeFor(cfg)
	perWorker := gups.NUpdate(words)
	totalUpdates := perWorker * uint64(workers)

	tables := make([]gups.Table, workers)
	for w := range tables {
		t, err := gups.NewTable(words)
		if err != nil {
			return BenchResult{}, fmt.Errorf("worker %d: %w", w, err)
		}
		tables[w] = t
	}

	perfStats.Lock()
	perfStats.GUPS.LogTableSize = logSize
	perfStats.GUPS.TableSize = words
	perfStats.GUPS.Updates = totalUpdates
	perfStats.GUPS.UpdatesDone = 0
	perfStats.Workers = make([]config.WorkerPerformance, workers)
	perfStats.Unlock()

	// Progress counter shared by all workers; a monitor goroutine copies it
	// into perfStats for the progress ticker in main.
	var done uint64
	monStop := make(chan struct{})
	var monWg sync.WaitGroup
	monWg.Add(1)
	go func() {
		defer monWg.Done()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				perfStats.Lock()
				perfStats.GUPS.UpdatesDone = atomic.LoadUint64(&done)
				perfStats.Unlock()
			case <-monStop:
				return
			}
		}
	}()

	elapsedPer := make([]time.Duration, workers)
	updatesPer := make([]uint64, workers)

	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if cfg.Pin {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				pinToCPU(id%runtime.NumCPU(), cfg.Debug)
			}
			workerStart := time.Now()
			updatesPer[id] = gups.Update(tables[id], &done)
			elapsedPer[id] = time.Since(workerStart)
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	close(monStop)
	monWg.Wait()

	result := BenchResult{
		LogTableSize: logSize,
		TableSize:    words,
		Elapsed:      elapsed,
		Skipped:      !cfg.Verify,
	}
	for w := 0; w < workers; w++ {
		result.Updates += updatesPer[w]
	}
	result.GUPS = GUPSRate(result.Updates, elapsed)

	perfStats.Lock()
	perfStats.GUPS.UpdatesDone = atomic.LoadUint64(&done)
	perfStats.GUPS.Elapsed = elapsed.Seconds()
	perfStats.GUPS.GUPS = result.GUPS
	for w := 0; w < workers; w++ {
		cpu := -1
		if cfg.Pin {
			cpu = w % runtime.NumCPU()
		}
		perfStats.Workers[w] = config.WorkerPerformance{
			CPU:     cpu,
			Updates: updatesPer[w],
			Elapsed: elapsedPer[w].Seconds(),
			GUPS:    GUPSRate(updatesPer[w], elapsedPer[w]),
		}
	}
	perfStats.Unlock()

	if !cfg.Verify {
		perfStats.Lock()
		perfStats.GUPS.Verified = "SKIPPED"
		perfStats.Unlock()
		return result, nil
	}

	// Verification replays the update stream sequentially per table. Not
	// part of the timed section.
	errorsPer := make([]uint64, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			errorsPer[id] = gups.Verify(tables[id])
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		result.Errors += errorsPer[w]
		result.Checked += words
		if cfg.Debug && errorsPer[w] > 0 {
			utils.LogMessage(fmt.Sprintf("Worker %d: %d verification errors in %d locations",
				w, errorsPer[w], words), cfg.Debug)
		}
	}
	result.Verified = gups.Tolerable(result.Errors, result.Checked)
	if !result.Verified {
		errorChan <- fmt.Sprintf("Memory verification failed: %d errors in %d locations exceeds 1%% tolerance",
			result.Errors, result.Checked)
	}

	perfStats.Lock()
	perfStats.GUPS.ErrorCount = result.Errors
	perfStats.GUPS.CheckedWords = result.Checked
	if result.Verified {
		perfStats.GUPS.Verified = "PASS"
	} else {
		perfStats.GUPS.Verified = "FAIL"
	}
	for w := 0; w < workers; w++ {
		perfStats.Workers[w].ErrorCount = errorsPer[w]
	}
	perfStats.Unlock()

	return result, nil
}

// pinToCPU binds the calling OS thread to a single CPU
func pinToCPU(cpuID int, debug bool) {
	cpuset := unix.CPUSet{}
	cpuset.Set(cpuID)
	err := unix.SchedSetaffinity(0, &cpuset)
	if err != nil {
		utils.LogMessage(fmt.Sprintf("Failed to set CPU affinity for CPU %d: %v (may require root privileges)", cpuID, err), true)
		return
	}
	if debug {
		var actualSet unix.CPUSet
		if err := unix.SchedGetaffinity(0, &actualSet); err == nil {
			utils.LogMessage(fmt.Sprintf("Actual CPU affinity for CPU %d: %v", cpuID, actualSet), debug)
		}
	}
}
