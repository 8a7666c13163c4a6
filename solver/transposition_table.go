package solver

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/patience/zobrist"
)

// The table only remembers positions that were searched to exhaustion
// without finding a win. An entry is the full 64-bit key of such a position;
// zero marks an empty slot.
const entrySize = 8

const minSizePowerOf2 = 16

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

type TranspositionTable struct {
	TableLock
	table        []uint64
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	// collisions counts lookups that found another position in the slot.
	collisions atomic.Uint64

	zobrist *zobrist.Zobrist
}

// GlobalTranspositionTable is a singleton instance. Tables are large and
// meant to be shared between solves, so only one is kept in memory.
var GlobalTranspositionTable = &TranspositionTable{TableLock: &FakeLock{}}

func (t *TranspositionTable) SetSingleThreadedMode() {
	t.TableLock = &FakeLock{}
}

func (t *TranspositionTable) SetMultiThreadedMode() {
	t.TableLock = new(sync.RWMutex)
}

// failed reports whether the position with key zval is known to be lost.
func (t *TranspositionTable) failed(zval uint64) bool {
	t.RLock()
	defer t.RUnlock()
	t.lookups.Add(1)
	stored := t.table[zval&t.sizeMask]
	if stored != zval {
		if stored != 0 {
			t.collisions.Add(1)
		}
		return false
	}
	t.hits.Add(1)
	return true
}

func (t *TranspositionTable) storeFailed(zval uint64) {
	idx := zval & t.sizeMask
	t.Lock()
	defer t.Unlock()
	// just overwrite whatever is there.
	t.table[idx] = zval
	t.created.Add(1)
}

// Reset sizes the table to about fractionOfMemory of the system's memory
// and clears it. A new zobrist hash is made if maxRedeals changed.
func (t *TranspositionTable) Reset(fractionOfMemory float64, maxRedeals int) {
	if t.TableLock == nil {
		t.TableLock = &FakeLock{}
	}
	t.Lock()
	defer t.Unlock()
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// find biggest power of 2 lower than desired.
	t.sizePowerOf2 = minSizePowerOf2
	if desiredNElems > 1 {
		t.sizePowerOf2 = int(math.Log2(desiredNElems))
	}
	if t.sizePowerOf2 < minSizePowerOf2 {
		t.sizePowerOf2 = minSizePowerOf2
	}

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]uint64, numElems)
	}

	if t.zobrist == nil || t.zobrist.MaxRedeals() != maxRedeals {
		log.Info().Int("max-redeals", maxRedeals).Msg("creating-zobrist-hash")
		t.zobrist = &zobrist.Zobrist{}
		t.zobrist.Initialize(maxRedeals)
	}

	log.Info().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.collisions.Store(0)
}

func (t *TranspositionTable) Zobrist() *zobrist.Zobrist {
	return t.zobrist
}

func (t *TranspositionTable) SetZobrist(z *zobrist.Zobrist) {
	t.zobrist = z
}

// Stats returns the entries created, lookups, hits and collisions since the
// last Reset.
func (t *TranspositionTable) Stats() (created, lookups, hits, collisions uint64) {
	return t.created.Load(), t.lookups.Load(), t.hits.Load(), t.collisions.Load()
}
