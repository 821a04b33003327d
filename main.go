package main

import (
	"flag"
	"fmt"
	"sync"
	"time"

	"github.com/dsheffie/RandomAccess/bench"
	cfg "github.com/dsheffie/RandomAccess/config"
	"github.com/dsheffie/RandomAccess/systeminfo"
	"github.com/dsheffie/RandomAccess/utils"
)

func main() {
	var bits uint
	var memBudget string
	var workers int
	var pin bool
	var verify bool
	var debugFlag bool
	var showHelp bool
	var printSystemInfo bool

	flag.UintVar(&bits, "bits", 0, "Log2 of update table size in words (0 = derive from -mem)")
	flag.StringVar(&memBudget, "mem", "", "Assumed memory budget; the table fills half of it (supports K, M, G units, default 4G)")
	flag.IntVar(&workers, "workers", 0, "Number of independent kernel instances (1 = single-cpu run, >1 = star mode)")
	flag.BoolVar(&pin, "pin", false, "Pin each worker's OS thread to its own CPU")
	flag.BoolVar(&verify, "verify", true, "Replay the update stream and check the table against its initial state")
	flag.BoolVar(&debugFlag, "d", false, "Enable debug mode")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&printSystemInfo, "print", false, "Print system resources relevant to benchmarking (alias: -list)")
	flag.BoolVar(&printSystemInfo, "list", false, "Alias for -print")
	flag.Parse()

	if showHelp {
		fmt.Println("GUPS RandomAccess Benchmark")
		fmt.Println("Usage: RandomAccess [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		fmt.Println("\nWith no options the table is sized from a 4G assumed memory budget.")
		fmt.Println("Use -print or -list to view available system resources.")
		return
	}

	if printSystemInfo {
		systeminfo.PrintSystemInfo(systeminfo.GetSystemInfo())
		return
	}

	configuration, err := cfg.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config.json, using default settings: %v\n", err)
	}

	debug := debugFlag || configuration.Debug
	if bits == 0 {
		bits = configuration.Bits
	}
	if memBudget == "" {
		memBudget = configuration.Memory
	}
	if workers <= 0 {
		workers = configuration.Workers
	}
	if workers <= 0 {
		workers = 1
	}
	pin = pin || configuration.Pin
	verify = verify && configuration.Verify

	memBytes, err := utils.ParseSize(memBudget)
	if err != nil || memBytes <= 0 {
		utils.LogMessage(fmt.Sprintf("Invalid memory budget %q, using default 4G", memBudget), true)
		memBytes = 4 * 1024 * 1024 * 1024
	}

	benchConfig := bench.BenchConfig{
		LogTableSize: bits,
		MemoryBytes:  uint64(memBytes),
		Workers:      workers,
		Pin:          pin,
		Verify:       verify,
		Debug:        debug,
	}

	logSize, words := bench.TableSizeFor(benchConfig)
	utils.LogMessage(fmt.Sprintf("Main table size   = 2^%d = %d words (%s)%s",
		logSize, words, utils.FormatSize(int64(words)*8), workerSuffix(workers)), true)
	utils.LogMessage(fmt.Sprintf("Number of updates = %d", 4*words*uint64(workers)), true)
	utils.LogMessage(fmt.Sprintf("Debug mode: %v", debug), debug)

	perfStats := &cfg.PerformanceStats{}
	errorChan := make(chan string, 100)

	results := cfg.TestResult{
		DIMM: "PASS",
	}
	var errorDetails []string

	var classifyWg sync.WaitGroup
	classifyWg.Add(1)
	go func() {
		defer classifyWg.Done()
		for err := range errorChan {
			if err == "" {
				continue
			}
			results.DIMM = "FAIL"
			errorDetails = append(errorDetails, err)
			utils.LogMessage(fmt.Sprintf("Error detected: %s", err), debug)
		}
	}()

	benchDone := make(chan struct{})
	progressTicker := time.NewTicker(10 * time.Second)
	go func() {
		for {
			select {
			case <-progressTicker.C:
				perfStats.Lock()
				done := perfStats.GUPS.UpdatesDone
				total := perfStats.GUPS.Updates
				perfStats.Unlock()
				if total > 0 {
					utils.LogMessage(fmt.Sprintf("Progress update - Updates: %s / %s (%.1f%%)",
						utils.FormatCount(done), utils.FormatCount(total),
						float64(done)*100/float64(total)), true)
				}
			case <-benchDone:
				progressTicker.Stop()
				return
			}
		}
	}()

	startTime := time.Now()
	result, err := bench.RunBenchmark(benchConfig, errorChan, perfStats)
	close(benchDone)
	close(errorChan)
	classifyWg.Wait()

	if err != nil {
		utils.LogMessage(fmt.Sprintf("Benchmark aborted: %v", err), true)
		return
	}

	utils.LogMessage("=== PERFORMANCE RESULTS ===", true)
	utils.LogMessage(fmt.Sprintf("Real time used = %.6f seconds", result.Elapsed.Seconds()), true)
	utils.LogMessage(fmt.Sprintf("%.9f Billion(10^9) Updates    per second [GUP/s]", result.GUPS), true)

	if workers > 1 {
		perfStats.Lock()
		for w, ws := range perfStats.Workers {
			utils.LogMessage(fmt.Sprintf("  Worker %d (CPU %d): %.9f GUP/s over %s updates",
				w, ws.CPU, ws.GUPS, utils.FormatCount(ws.Updates)), true)
		}
		perfStats.Unlock()
	}

	if result.Skipped {
		utils.LogMessage("Verification skipped.", true)
	} else {
		outcome := "failed"
		if result.Verified {
			outcome = "passed"
		}
		utils.LogMessage(fmt.Sprintf("Found %d errors in %d locations (%s).",
			result.Errors, result.Checked, outcome), true)
	}

	resultStr := fmt.Sprintf("GUPS Benchmark Summary - Duration: %s | DIMM: %s",
		time.Since(startTime).Round(time.Second), results.DIMM)
	if len(errorDetails) > 0 {
		resultStr += fmt.Sprintf("\nDIMM FAIL reason: %s", errorDetails[0])
		if len(errorDetails) > 1 {
			resultStr += fmt.Sprintf(" (and %d more errors)", len(errorDetails)-1)
		}
	}

	utils.LogMessage(resultStr, true)
	utils.LogMessage("Benchmark completed!", true)
}

func workerSuffix(workers int) string {
	if workers <= 1 {
		return ""
	}
	return fmt.Sprintf(" x %d workers", workers)
}
