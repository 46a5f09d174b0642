// Package state is the core API for the ledger and implements all the
// business rules and processing.
//
// The ledger is single node and single writer. Mining runs the proof of work
// while holding the ledger's write lock, which is only acceptable at the low
// fixed difficulty used here. It is not a consensus protocol and must not be
// extended to multiple writers without a redesign.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/ardanlabs/crosspay/foundation/blockchain/balance"
	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/ardanlabs/crosspay/foundation/blockchain/genesis"
	"github.com/ardanlabs/crosspay/foundation/blockchain/mempool"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// State manages the chain, the pending records and the balance sheet as
// one unit guarded by a single lock.
type State struct {
	evHandler EventHandler
	genesis   genesis.Genesis

	mu       sync.RWMutex
	chain    []database.Block
	known    map[string]struct{}
	mempool  *mempool.Mempool
	balances *balance.Sheet

	Worker Worker
}

// New constructs a new ledger with a mined genesis block and the starting
// balances from the genesis information.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// The genesis block holds no records but is sealed like any other block.
	gen := database.NewBlock(database.GenesisParent())
	if err := gen.Mine(context.Background(), cfg.Genesis.Difficulty, ev); err != nil {
		return nil, fmt.Errorf("mining genesis block: %w", err)
	}

	state := State{
		evHandler: ev,
		genesis:   cfg.Genesis,
		chain:     []database.Block{gen},
		known:     make(map[string]struct{}),
		mempool:   mempool.New(),
		balances:  balance.NewSheet(cfg.Genesis.MiningReward),
	}

	// Starting balances go through the same funding hook as any deposit.
	for addr, amount := range cfg.Genesis.Balances {
		if err := state.Fund(addr, amount); err != nil {
			return nil, fmt.Errorf("applying genesis balance for %q: %w", addr, err)
		}
	}

	chainHeight.Set(float64(len(state.chain)))

	ev("state: New: genesis[%s]: difficulty[%d]: reward[%s]", gen.Hash, cfg.Genesis.Difficulty, cfg.Genesis.MiningReward)

	// The Worker is not set here. The call to worker.Run will assign itself
	// when background mining is turned on.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all background mining activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
