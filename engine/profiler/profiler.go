// Package profiler tracks frame rate, per-phase timings, and memory
// statistics for performance monitoring.
package profiler

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Profiler tracks frame rate, named phase durations, and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	sections map[string]time.Duration
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		sections:       make(map[string]time.Duration),
	}
}

// Observe accumulates a duration under a named phase. Phase averages are
// reported alongside the frame statistics on the next logging tick.
//
// Parameters:
//   - name: the phase name
//   - d: the elapsed duration to accumulate
func (p *Profiler) Observe(name string, d time.Duration) {
	p.sections[name] += d
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, per-phase averages, heap usage, allocation rate,
// GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: bytes of live heap objects.
	// TotalAlloc: cumulative heap bytes, tracks churn.
	// Sys: total bytes obtained from the OS.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f%s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, p.sectionSummary(), allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	for name := range p.sections {
		delete(p.sections, name)
	}
	return true
}

// sectionSummary formats the per-phase averages in stable name order, or
// returns an empty string when no phases were observed.
func (p *Profiler) sectionSummary() string {
	if len(p.sections) == 0 || p.frameCount == 0 {
		return ""
	}
	names := make([]string, 0, len(p.sections))
	for name := range p.sections {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		avgMs := float64(p.sections[name].Microseconds()) / float64(p.frameCount) / 1000
		fmt.Fprintf(&sb, " | %s: %.2f ms", name, avgMs)
	}
	return sb.String()
}
