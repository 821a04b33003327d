// config/types.go
package config

import "sync"

// Config structure
type Config struct {
	Debug   bool   `json:"debug"`
	Bits    uint   `json:"Bits"`
	Memory  string `json:"Memory"`
	Workers int    `json:"Workers"`
	Pin     bool   `json:"Pin"`
	Verify  bool   `json:"Verify"`
}

// TestResult structure
type TestResult struct {
	DIMM string
}

// PerformanceStats tracks overall benchmark metrics
type PerformanceStats struct {
	GUPS    GUPSPerformance
	Workers []WorkerPerformance
	mu      sync.Mutex
}

// Lock locks the PerformanceStats mutex
func (ps *PerformanceStats) Lock() {
	ps.mu.Lock()
}

// Unlock unlocks the PerformanceStats mutex
func (ps *PerformanceStats) Unlock() {
	ps.mu.Unlock()
}

// GUPSPerformance tracks the aggregate result of the update kernel
type GUPSPerformance struct {
	LogTableSize uint    // log2 of table words per worker
	TableSize    uint64  // table words per worker
	Updates      uint64  // total updates scheduled across workers
	UpdatesDone  uint64  // total updates completed so far
	Elapsed      float64 // timed section in seconds
	GUPS         float64 // billion updates per second, -1 if unmeasurable
	ErrorCount   uint64  // table slots off after verification
	CheckedWords uint64  // table slots checked by verification
	Verified     string  // PASS, FAIL, or SKIPPED
}

// WorkerPerformance tracks one kernel instance in star mode
type WorkerPerformance struct {
	CPU        int     // CPU the worker was pinned to, -1 if unpinned
	Updates    uint64  // updates performed by this worker
	Elapsed    float64 // this worker's timed section in seconds
	GUPS       float64 // this worker's update rate
	ErrorCount uint64  // verification errors in this worker's table
}

// CacheInfo stores the sizes of L1, L2, and L3 caches
type CacheInfo struct {
	L1Size int64 // in bytes
	L2Size int64 // in bytes
	L3Size int64 // in bytes
}
