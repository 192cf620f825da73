package extract

import (
	"sort"
	"sync"
	"time"
)

type call struct {
	at time.Time
	ms int64
	ok bool
}

// StatsSnapshot aggregates recent outline-reading calls: volume, failure
// count, and latency percentiles over the rolling window.
type StatsSnapshot struct {
	Calls    int     `json:"calls"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
}

// LLMStats keeps a rolling window of LLM call outcomes.
type LLMStats struct {
	mu     sync.Mutex
	window time.Duration
	calls  []call
}

func NewLLMStats(window time.Duration) *LLMStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LLMStats{window: window}
}

// Record adds one call. ok marks whether the HTTP exchange succeeded;
// durations of failed calls still count toward the percentiles.
func (s *LLMStats) Record(d time.Duration, ok bool) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)
	s.calls = append(s.calls, call{at: now, ms: ms, ok: ok})
}

// Snapshot aggregates the current window.
func (s *LLMStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)

	if len(s.calls) == 0 {
		return StatsSnapshot{}
	}

	durations := make([]int64, len(s.calls))
	failures := 0
	var sum int64
	for i, c := range s.calls {
		durations[i] = c.ms
		sum += c.ms
		if !c.ok {
			failures++
		}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	return StatsSnapshot{
		Calls:    len(durations),
		Failures: failures,
		MinMs:    durations[0],
		MaxMs:    durations[len(durations)-1],
		AvgMs:    float64(sum) / float64(len(durations)),
		P50Ms:    percentile(durations, 50),
		P95Ms:    percentile(durations, 95),
	}
}

// evictLocked drops calls older than the window. Calls are appended in
// time order, so the survivors are a suffix.
func (s *LLMStats) evictLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.calls) && s.calls[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.calls = append(s.calls[:0], s.calls[i:]...)
	}
}

// percentile linearly interpolates over a sorted slice.
func percentile(sorted []int64, pct float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 || pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[n-1])
	}
	pos := pct / 100 * float64(n-1)
	i := int(pos)
	frac := pos - float64(i)
	if i+1 >= n {
		return float64(sorted[i])
	}
	return float64(sorted[i]) + frac*float64(sorted[i+1]-sorted[i])
}
