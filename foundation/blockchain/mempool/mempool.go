// Package mempool maintains the mempool for the ledger.
package mempool

import (
	"errors"
	"sync"

	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
)

// ErrExists is returned when a record with the same id is already pooled.
var ErrExists = errors.New("record already in mempool")

// Mempool represents a cache of records waiting to be mined, kept in the
// order they were accepted.
type Mempool struct {
	pool  map[string]struct{}
	order []database.Record
	mu    sync.RWMutex
}

// New constructs a new, empty mempool.
func New() *Mempool {
	return &Mempool{
		pool: make(map[string]struct{}),
	}
}

// Count returns the current number of records in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.order)
}

// Add appends the record to the end of the pool and returns the new size.
func (mp *Mempool) Add(rec database.Record) (int, error) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.pool[rec.ID]; exists {
		return len(mp.order), ErrExists
	}

	mp.pool[rec.ID] = struct{}{}
	mp.order = append(mp.order, rec)

	return len(mp.order), nil
}

// Truncate clears all the records from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]struct{})
	mp.order = nil
}

// Copy returns the pooled records in the order they were added.
func (mp *Mempool) Copy() []database.Record {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	recs := make([]database.Record, len(mp.order))
	copy(recs, mp.order)

	return recs
}
