package solver

import (
	"testing"

	"github.com/matryer/is"
)

func TestTableStoresFailures(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(0, 3)
	is.Equal(len(tt.table), 1<<minSizePowerOf2)
	is.True(tt.Zobrist() != nil)
	is.Equal(tt.Zobrist().MaxRedeals(), 3)

	key := uint64(0xdeadbeef12345678)
	is.True(!tt.failed(key))
	tt.storeFailed(key)
	is.True(tt.failed(key))

	// same slot, different position.
	other := key ^ (1 << 40)
	is.True(!tt.failed(other))

	created, lookups, hits, collisions := tt.Stats()
	is.Equal(created, uint64(1))
	is.Equal(lookups, uint64(3))
	is.Equal(hits, uint64(1))
	is.Equal(collisions, uint64(1))

	z := tt.Zobrist()
	tt.Reset(0, 3)
	is.True(!tt.failed(key))
	// zobrist keys survive a reset with the same rules.
	is.True(tt.Zobrist() == z)
	tt.Reset(0, 1)
	is.True(tt.Zobrist() != z)
}

func TestTableMultiThreaded(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.SetMultiThreadedMode()
	tt.Reset(0, 3)
	done := make(chan bool)
	for i := 0; i < 4; i++ {
		go func(n uint64) {
			for k := uint64(1); k < 1000; k++ {
				tt.storeFailed(k<<20 | n)
				tt.failed(k)
			}
			done <- true
		}(uint64(i))
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	created, _, _, _ := tt.Stats()
	is.Equal(created, uint64(4*999))
}
