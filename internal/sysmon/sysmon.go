// Package sysmon samples system-wide CPU and memory usage so timing runs can
// flag a busy machine.
package sysmon

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// BusyCPUPercent is the system CPU usage from which timings are considered
// unreliable.
const BusyCPUPercent = 25.0

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Busy reports whether other load is likely to perturb timings.
func (s Stats) Busy() bool {
	return s.CPUPercent >= BusyCPUPercent
}

func (s Stats) String() string {
	return fmt.Sprintf("CPU %.1f%%, memory %.1f%%", s.CPUPercent, s.MemPercent)
}

// Sample measures CPU usage over interval and memory usage at its end. A zero
// interval measures CPU usage since the previous call. Values that cannot be
// read are left at zero.
func Sample(ctx context.Context, interval time.Duration) Stats {
	var s Stats
	cpuPcts, err := cpu.PercentWithContext(ctx, interval, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}
