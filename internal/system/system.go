// Package system holds host-resource helpers for batch export: picking a
// worker count that fits the machine and reporting what a run cost.
package system

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// bytesPerWorker is a rough budget for one rasterization worker: a 1080p
// RGBA canvas plus gg context overhead.
const bytesPerWorker = 64 << 20

// Workers picks a worker count for a batch of jobs. It starts from the
// request (0 = all CPUs), never exceeds the job count, and backs off when
// available memory cannot hold that many rasterization buffers.
func Workers(requested, jobs int) int {
	w := requested
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if jobs > 0 && w > jobs {
		w = jobs
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		if fit := int(vm.Available / bytesPerWorker); fit > 0 && w > fit {
			w = fit
		}
	}
	if w < 1 {
		w = 1
	}
	return w
}

// PerfReport summarizes a finished export run: wall time, effective frames
// per second, and the process resident memory if it can be read.
func PerfReport(frames int, elapsed time.Duration) string {
	fps := 0.0
	if elapsed > 0 {
		fps = float64(frames) / elapsed.Seconds()
	}
	report := fmt.Sprintf(
		"--- [EXPORT REPORT] ---\nFrames: %d\nTotal Time: %.2fs\nEffective FPS: %.2f\n",
		frames, elapsed.Seconds(), fps,
	)
	if rss, ok := processRSS(); ok {
		report += fmt.Sprintf("Process RSS: %.1f MiB\n", float64(rss)/(1<<20))
	}
	report += "-----------------------"
	return report
}

func processRSS() (uint64, bool) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, false
	}
	info, err := proc.MemoryInfo()
	if err != nil || info == nil {
		return 0, false
	}
	return info.RSS, true
}
