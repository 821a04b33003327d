package systeminfo

import (
	"fmt"
	"strings"

	gcpu "github.com/shirou/gopsutil/v4/cpu"
	gmem "github.com/shirou/gopsutil/v4/mem"

	"github.com/dsheffie/RandomAccess/gups"
	"github.com/dsheffie/RandomAccess/utils"
)

// SystemInfo holds the host properties that matter for a memory benchmark.
type SystemInfo struct {
	CPUInfo    string
	MemoryInfo string
	NUMAInfo   string
	CacheInfo  string
	TableInfo  string
}

// GetSystemInfo retrieves host information relevant to sizing a benchmark run.
func GetSystemInfo() SystemInfo {
	var info SystemInfo

	// CPU information
	cpuInfo, err := gcpu.Info()
	if err != nil || len(cpuInfo) == 0 {
		info.CPUInfo = "CPU Info: Unable to retrieve CPU information"
	} else {
		// Get total number of cores
		totalCores, _ := gcpu.Counts(true)
		info.CPUInfo = fmt.Sprintf("CPU Info: Model: %s, Cores: %d, Frequency: %.2f MHz",
			cpuInfo[0].ModelName, totalCores, cpuInfo[0].Mhz)
	}

	// Memory information, plus the largest table the host could host from
	// available memory alone
	vm, err := gmem.VirtualMemory()
	if err != nil {
		info.MemoryInfo = "Memory Info: Unable to retrieve memory information"
		info.TableInfo = "Table Info: Unable to size update table"
	} else {
		info.MemoryInfo = fmt.Sprintf("Memory Info: Total: %.2f GB, Available: %.2f GB (%.1f%%)",
			float64(vm.Total)/1024/1024/1024,
			float64(vm.Available)/1024/1024/1024,
			float64(vm.Available)/float64(vm.Total)*100)
		logSize, words := gups.SizeForMemory(vm.Available)
		info.TableInfo = fmt.Sprintf("Table Info: Largest update table in available memory: 2^%d = %d words (%s)",
			logSize, words, utils.FormatSize(int64(words)*8))
	}

	// NUMA topology
	numa, err := utils.GetNUMAInfo()
	if err != nil {
		info.NUMAInfo = "NUMA Info: Unable to retrieve NUMA information"
	} else {
		nodes := make([]string, 0, numa.NumNodes)
		for id := 0; id < numa.NumNodes; id++ {
			if id < len(numa.NodeCPUs) && len(numa.NodeCPUs[id]) > 0 {
				nodes = append(nodes, fmt.Sprintf("node%d: %d CPUs", id, len(numa.NodeCPUs[id])))
			}
		}
		info.NUMAInfo = fmt.Sprintf("NUMA Info: %d nodes (%s)", numa.NumNodes, strings.Join(nodes, ", "))
	}

	// Cache sizes
	cacheInfo, err := utils.GetCacheInfo()
	if err != nil {
		info.CacheInfo = "Cache Info: Unable to retrieve cache information"
	} else if cacheInfo.L3Size > 0 {
		info.CacheInfo = fmt.Sprintf("Cache Info: L1: %s, L2: %s, L3: %s",
			utils.FormatSize(cacheInfo.L1Size),
			utils.FormatSize(cacheInfo.L2Size),
			utils.FormatSize(cacheInfo.L3Size))
	} else {
		info.CacheInfo = fmt.Sprintf("Cache Info: L1: %s, L2: %s, L3: Not present",
			utils.FormatSize(cacheInfo.L1Size),
			utils.FormatSize(cacheInfo.L2Size))
	}

	return info
}

// PrintSystemInfo outputs the system information to the console.
func PrintSystemInfo(info SystemInfo) {
	fmt.Println("\n=== System Resources Available for Benchmarking ===")
	fmt.Println(info.CPUInfo)
	fmt.Println(info.NUMAInfo)
	fmt.Println(info.CacheInfo)
	fmt.Println(info.MemoryInfo)
	fmt.Println(info.TableInfo)
}
