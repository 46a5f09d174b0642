// Package worker implements background mining for the ledger.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ardanlabs/crosspay/foundation/blockchain/state"
)

// =============================================================================

// Worker mines pending records in the background on behalf of one
// beneficiary account.
type Worker struct {
	state       *state.State
	beneficiary string
	wg          sync.WaitGroup
	ticker      *time.Ticker
	shut        chan struct{}
	startMining chan bool
	ctx         context.Context
	cancel      context.CancelFunc
	evHandler   state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the background mining goroutine. A mining operation is signaled
// when a record is submitted and on every interval tick.
func Run(st *state.State, beneficiary string, interval time.Duration, evHandler state.EventHandler) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	w := Worker{
		state:       st,
		beneficiary: beneficiary,
		ticker:      time.NewTicker(interval),
		shut:        make(chan struct{}),
		startMining: make(chan bool, 1),
		ctx:         ctx,
		cancel:      cancel,
		evHandler:   evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work. A mining operation in
// progress is cancelled and leaves the ledger unchanged.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: stop ticker")
	w.ticker.Stop()

	w.evHandler("worker: shutdown: terminate goroutines")
	w.cancel()
	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If there is already a signal
// pending in the channel, just return since a mining operation will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
		w.evHandler("worker: SignalStartMining: mining signaled")
	default:
	}
}

// =============================================================================

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}

		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runMiningOperation()
			}

		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation takes all the records from the mempool and mines
// them into a new block.
func (w *Worker) runMiningOperation() {
	length := w.state.QueryMempoolLength()
	if length == 0 {
		return
	}

	w.evHandler("worker: runMiningOperation: MINING: started: records[%d]", length)
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	block, err := w.state.MineBlock(w.ctx, w.beneficiary)
	if err != nil {
		w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		return
	}

	w.evHandler("worker: runMiningOperation: MINING: blk[%s]", block.Hash)
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
