package solver

import "sync/atomic"

// ScoreTracker keeps the highest foundation count seen during a search. It
// is safe for concurrent use.
type ScoreTracker struct {
	best atomic.Int64
}

// Record raises the best score to score if it is higher, and reports whether
// it did.
func (t *ScoreTracker) Record(score int) bool {
	for {
		cur := t.best.Load()
		if int64(score) <= cur {
			return false
		}
		if t.best.CompareAndSwap(cur, int64(score)) {
			return true
		}
	}
}

func (t *ScoreTracker) Best() int {
	return int(t.best.Load())
}

func (t *ScoreTracker) Reset() {
	t.best.Store(0)
}
