package state

import (
	"fmt"

	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// QueryBalance returns the balance for the address, zero when the address
// has never been seen.
func (s *State) QueryBalance(address string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balances.Balance(address)
}

// Balances is a view of the balance sheet taken at one chain tip.
type Balances struct {
	LatestBlock string
	Uncommitted int
	Balances    map[string]decimal.Decimal
}

// QueryBalances returns the balances of the specified addresses, or of every
// known address when none are specified, together with the tip hash and the
// pending count they correspond to.
func (s *State) QueryBalances(addresses ...string) Balances {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Balances{
		LatestBlock: s.chain[len(s.chain)-1].Hash,
		Uncommitted: s.mempool.Count(),
	}

	switch len(addresses) {
	case 0:
		snap.Balances = s.balances.Values()
	default:
		snap.Balances = make(map[string]decimal.Decimal, len(addresses))
		for _, addr := range addresses {
			snap.Balances[addr] = s.balances.Balance(addr)
		}
	}

	return snap
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Count()
}

// QueryRecordByID scans the chain for the mined record with the specified id.
func (s *State) QueryRecordByID(id string) (database.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, block := range s.chain {
		for _, rec := range block.Records {
			if rec.ID == id {
				return rec, true
			}
		}
	}

	return database.Record{}, false
}

// QueryRecordsByAccount returns every mined record sent or received by the
// address in chain order.
func (s *State) QueryRecordsByAccount(address string) []database.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []database.Record
	for _, block := range s.chain {
		for _, rec := range block.Records {
			if rec.From == address || rec.To == address {
				out = append(out, rec)
			}
		}
	}

	return out
}

// IsValid reports whether the whole chain passes validation.
func (s *State) IsValid() bool {
	return s.Validate() == nil
}

// Validate walks the chain and returns the first integrity failure found.
// Every block must carry the hash of its content, solve the difficulty and,
// past the genesis block, link to the hash of the block before it.
func (s *State) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gen := s.chain[0]
	switch {
	case !gen.Parent.IsGenesis():
		return fmt.Errorf("block 0: %w: not a genesis block", database.ErrParentMismatch)
	case gen.Hash != gen.Recompute():
		return fmt.Errorf("block 0: %w", database.ErrHashMismatch)
	case !gen.IsSealed(s.genesis.Difficulty):
		return fmt.Errorf("block 0: %w", database.ErrNotSealed)
	}

	for i := 1; i < len(s.chain); i++ {
		if err := s.chain[i].ValidateNext(s.chain[i-1], s.genesis.Difficulty); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}

	return nil
}
