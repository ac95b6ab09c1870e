package assets

import "sync"

// Progress is a byte count for an in-flight fetch. Total is zero when the
// size is unknown.
type Progress struct {
	Loaded int64
	Total  int64
}

// Known reports whether the total size is known.
func (p Progress) Known() bool {
	return p.Total > 0
}

// Fraction returns Loaded/Total clamped to [0, 1].
func (p Progress) Fraction() float64 {
	if !p.Known() {
		return 0
	}
	f := float64(p.Loaded) / float64(p.Total)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// Percent returns the integer percentage for display.
func (p Progress) Percent() int {
	if !p.Known() || p.Loaded <= 0 {
		return 0
	}
	if p.Loaded >= p.Total {
		return 100
	}
	return int(p.Loaded * 100 / p.Total)
}

// ReportFunc receives progress updates.
type ReportFunc func(Progress)

// progressTracker filters raw reports so listeners only ever see known
// totals and a non-decreasing fraction, even across retried strategies.
type progressTracker struct {
	mu   sync.Mutex
	last Progress
	seen bool
	emit ReportFunc
}

func newProgressTracker(emit ReportFunc) *progressTracker {
	return &progressTracker{emit: emit}
}

// Report forwards p when it is known and does not move backwards.
func (t *progressTracker) Report(p Progress) {
	if !p.Known() {
		return
	}
	t.mu.Lock()
	if t.seen && p.Fraction() < t.last.Fraction() {
		t.mu.Unlock()
		return
	}
	t.last, t.seen = p, true
	t.mu.Unlock()

	if t.emit != nil {
		t.emit(p)
	}
}

// Last returns the latest forwarded progress.
func (t *progressTracker) Last() (Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.seen
}
