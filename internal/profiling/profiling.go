package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Lightweight per-frame CPU profiler plus session-wide counters.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)

	countersMu sync.RWMutex
	counters   = make(map[string]*atomic.Uint64)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats the top n durations of the current frame.
// Example: "world.ResidentWindow:4.2ms, physics.March:0.3ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", p.name, ms))
	}
	return strings.Join(parts, ", ")
}

// Count increments the named session counter.
func Count(name string) {
	counter(name).Inc()
}

// Counter returns the current value of a session counter.
func Counter(name string) uint64 {
	countersMu.RLock()
	c, ok := counters[name]
	countersMu.RUnlock()
	if !ok {
		return 0
	}
	return c.Load()
}

// Counters returns a copy of every session counter. Safe to call from any goroutine.
func Counters() map[string]uint64 {
	countersMu.RLock()
	defer countersMu.RUnlock()
	out := make(map[string]uint64, len(counters))
	for k, c := range counters {
		out[k] = c.Load()
	}
	return out
}

// ResetCounters zeroes every counter.
func ResetCounters() {
	countersMu.RLock()
	for _, c := range counters {
		c.Store(0)
	}
	countersMu.RUnlock()
}

func counter(name string) *atomic.Uint64 {
	countersMu.RLock()
	c, ok := counters[name]
	countersMu.RUnlock()
	if ok {
		return c
	}
	countersMu.Lock()
	defer countersMu.Unlock()
	if c, ok = counters[name]; ok {
		return c
	}
	c = atomic.NewUint64(0)
	counters[name] = c
	return c
}
