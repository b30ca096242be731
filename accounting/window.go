package accounting

import (
	"sort"
	"time"
)

// retentionHorizon is the longest window any quota can ask about. Events
// older than this are unreachable by every query and can be dropped.
const retentionHorizon = 24 * time.Hour

// slidingWindow tracks event timestamps so that "how many events in the
// last N seconds" stays correct as time advances, without a manual reset.
// Timestamps are unix nanoseconds in non-decreasing order. The lifetime
// total is kept separately and never decays.
//
// Not safe for concurrent use; the owning Tracker serializes access.
type slidingWindow struct {
	events []int64
	total  int64
}

// record appends an event at t and prunes entries that fell outside the
// retention horizon. Events recorded at identical timestamps are all kept.
func (w *slidingWindow) record(t time.Time) {
	ts := t.UnixNano()
	// Clamp out-of-order timestamps so the slice stays sorted. Callers
	// record under a single lock, so this only smooths clock jitter.
	if n := len(w.events); n > 0 && ts < w.events[n-1] {
		ts = w.events[n-1]
	}
	w.events = append(w.events, ts)
	w.total++
	w.prune(t)
}

// countSince returns how many events happened within the trailing window
// ending at now. The bound is inclusive: an event exactly window old counts.
func (w *slidingWindow) countSince(now time.Time, window time.Duration) int64 {
	cutoff := now.Add(-window).UnixNano()
	i := sort.Search(len(w.events), func(i int) bool {
		return w.events[i] >= cutoff
	})
	return int64(len(w.events) - i)
}

// lifetime returns the total number of events ever recorded.
func (w *slidingWindow) lifetime() int64 {
	return w.total
}

// prune drops events older than the retention horizon.
func (w *slidingWindow) prune(now time.Time) {
	cutoff := now.Add(-retentionHorizon).UnixNano()
	i := sort.Search(len(w.events), func(i int) bool {
		return w.events[i] >= cutoff
	})
	if i > 0 {
		w.events = append(w.events[:0], w.events[i:]...)
	}
}

// reset zeroes the window, including the lifetime total.
func (w *slidingWindow) reset() {
	w.events = w.events[:0]
	w.total = 0
}

// restoreWindow rebuilds a window from snapshot counts taken at restore
// time. calls60s synthetic events land at now and the remainder of
// calls24h just outside the 60 second window, so quota evaluation at the
// same instant sees the same per-window counts the snapshot recorded.
func restoreWindow(now time.Time, total, calls60s, calls24h int64) *slidingWindow {
	w := &slidingWindow{
		events: make([]int64, 0, calls24h),
		total:  total,
	}
	older := now.Add(-61 * time.Second).UnixNano()
	for i := int64(0); i < calls24h-calls60s; i++ {
		w.events = append(w.events, older)
	}
	recent := now.UnixNano()
	for i := int64(0); i < calls60s; i++ {
		w.events = append(w.events, recent)
	}
	return w
}
