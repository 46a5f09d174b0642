package state

import (
	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/ardanlabs/crosspay/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveChain returns a copy of every block in the chain, genesis first.
func (s *State) RetrieveChain() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.chain))
	for i, block := range s.chain {
		blocks[i] = block.Clone()
	}

	return blocks
}

// RetrieveMempool returns a copy of the pending records in the order they
// were accepted.
func (s *State) RetrieveMempool() []database.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Copy()
}
