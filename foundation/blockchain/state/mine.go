package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
)

// ErrNoBeneficiary is returned when a block is requested to be mined
// without an address to receive the fees and reward.
var ErrNoBeneficiary = errors.New("no beneficiary address for mining")

// =============================================================================

// MineBlock packages every pending record into a new block linked to the
// current tip, seals it and appends it to the chain. For each record the
// sender pays the amount plus fee, the receiver gets the amount and the
// beneficiary gets the fee plus the mining reward.
//
// All balance changes are staged on a copy of the balance sheet and only
// committed with the block. If the context is cancelled during the proof
// of work, nothing changes. The write lock is held for the whole operation.
func (s *State) MineBlock(ctx context.Context, beneficiary string) (database.Block, error) {
	if beneficiary == "" {
		return database.Block{}, ErrNoBeneficiary
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineBlock: MINING: started: pending[%d]", s.mempool.Count())
	defer s.evHandler("state: MineBlock: MINING: completed")

	tip := s.chain[len(s.chain)-1]
	block := database.NewBlock(database.LinkedTo(tip.Hash))
	staged := s.balances.Clone()

	for _, rec := range s.mempool.Copy() {
		if !block.AddRecord(&rec) {
			s.evHandler("state: MineBlock: WARNING: rec[%s]: discarded: %s", rec.ID, rec.Validate())
			continue
		}

		staged.ApplyRecord(beneficiary, rec)
		block.Records[len(block.Records)-1].Status = database.StatusCompleted
	}

	s.evHandler("state: MineBlock: MINING: perform POW: records[%d]", len(block.Records))

	if err := block.Mine(ctx, s.genesis.Difficulty, s.evHandler); err != nil {
		return database.Block{}, err
	}

	s.chain = append(s.chain, block)
	s.balances.Replace(staged)
	s.mempool.Truncate()

	blocksMined.Inc()
	recordsMined.Add(float64(len(block.Records)))
	chainHeight.Set(float64(len(s.chain)))

	s.evHandler("state: MineBlock: mined: blk[%s]: prevBlk[%s]: records[%d]: nonce[%d]", block.Hash, block.Parent.Hash(), len(block.Records), block.Nonce)

	return block.Clone(), nil
}
