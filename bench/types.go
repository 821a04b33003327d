package bench

import "time"

// BenchConfig holds configuration for a benchmark run
type BenchConfig struct {
	LogTableSize uint   // log2 of table words per worker; 0 derives it from MemoryBytes
	MemoryBytes  uint64 // assumed memory budget for the whole run
	Workers      int    // 1 is the reference single-cpu run, >1 is star mode
	Pin          bool   // pin each worker's OS thread to its own CPU
	Verify       bool   // replay the update stream and count errors
	Debug        bool
}

// BenchResult holds the results of a benchmark run
type BenchResult struct {
	LogTableSize uint
	TableSize    uint64 // words per worker table
	Updates      uint64 // total updates performed across workers
	Elapsed      time.Duration
	GUPS         float64
	Errors       uint64 // verification errors summed over workers
	Checked      uint64 // table words checked by verification
	Verified     bool   // errors within the 1% tolerance
	Skipped      bool   // verification was not run
}
