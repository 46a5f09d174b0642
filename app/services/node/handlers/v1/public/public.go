// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/ardanlabs/crosspay/business/sys/validate"
	"github.com/ardanlabs/crosspay/business/web/errs"
	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/ardanlabs/crosspay/foundation/blockchain/state"
	"github.com/ardanlabs/crosspay/foundation/events"
	"github.com/ardanlabs/crosspay/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	Miner string
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// This starts a ticker to keep the connection alive.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case e, open := <-ch:

			// If the channel is closed, release the websocket.
			if !open {
				return nil
			}

			// A failed write means the client went away.
			if err := c.WriteJSON(e); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitRecord creates a payment record and submits it to the ledger. A
// record the ledger refuses is reported with success false.
func (h Handlers) SubmitRecord(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nr NewRecord
	if err := web.Decode(r, &nr); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(nr); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	rec, err := database.NewRecord(nr.From, nr.To, nr.Amount, nr.Currency, nr.FromCountry, nr.ToCountry)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	h.Log.Infow("submit record", "traceid", v.TraceID, "id", rec.ID, "from", rec.From, "to", rec.To, "amount", rec.Amount, "currency", rec.Currency)

	resp := submitted{
		Success:  true,
		RecordID: rec.ID,
		Message:  "record submitted",
	}

	if err := h.State.Submit(rec); err != nil {
		resp.Success = false
		resp.Message = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// MineBlock mines every pending record into a new block on behalf of the
// node's miner account.
func (h Handlers) MineBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk, err := h.State.MineBlock(ctx, h.Miner)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return errs.NewTrusted(err, http.StatusServiceUnavailable)
		}
		return fmt.Errorf("mining block: %w", err)
	}

	resp := mined{
		Success: true,
		Message: fmt.Sprintf("block mined with %d records", len(blk.Records)),
		Block:   toBlock(blk),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// QueryRecord returns the mined record with the specified id.
func (h Handlers) QueryRecord(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id := web.Param(r, "id")

	rec, found := h.State.QueryRecordByID(id)
	if !found {
		return errs.NotFound(fmt.Errorf("record %q not found", id))
	}

	return web.Respond(ctx, w, toRecord(rec), http.StatusOK)
}

// RecordsByAccount returns every mined record where the account is the
// sender or the receiver.
func (h Handlers) RecordsByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	recs := h.State.QueryRecordsByAccount(account)

	return web.Respond(ctx, w, toRecords(recs), http.StatusOK)
}

// Mempool returns the set of uncommitted records.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toRecords(h.State.RetrieveMempool()), http.StatusOK)
}

// Fund credits an account outside of any record.
func (h Handlers) Fund(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var dep Deposit
	if err := web.Decode(r, &dep); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(dep); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	h.Log.Infow("fund account", "traceid", v.TraceID, "account", dep.Account, "amount", dep.Amount)

	if err := h.State.Fund(dep.Account, dep.Amount); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := balance{
		Account: dep.Account,
		Balance: h.State.QueryBalance(dep.Account),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// Balances returns the current balances for all accounts or the specified
// account. An unknown account has a balance of zero.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var accounts []string
	if account := web.Param(r, "account"); account != "" {
		accounts = append(accounts, account)
	}

	snap := h.State.QueryBalances(accounts...)

	bals := make([]balance, 0, len(snap.Balances))
	for acct, amount := range snap.Balances {
		bals = append(bals, balance{Account: acct, Balance: amount})
	}
	slices.SortFunc(bals, func(a, b balance) int {
		return strings.Compare(a.Account, b.Account)
	})

	resp := balances{
		LatestBlock: snap.LatestBlock,
		Uncommitted: snap.Uncommitted,
		Balances:    bals,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Blocks returns the full chain starting with the genesis block.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain := h.State.RetrieveChain()

	blocks := make([]block, len(chain))
	for i, blk := range chain {
		blocks[i] = toBlock(blk)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Validate reports whether the chain passes every integrity check.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validity{IsValid: true}

	if err := h.State.Validate(); err != nil {
		resp.IsValid = false
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
