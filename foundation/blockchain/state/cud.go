package state

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// Set of errors returned when a record or deposit is not accepted.
var (
	ErrInvalidRecord     = errors.New("invalid record")
	ErrDuplicateRecord   = errors.New("record already submitted")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// =============================================================================

// Submit accepts a record for inclusion in the next mined block. The record
// must be valid, must never have been submitted before and the sender's
// current balance must cover the amount plus the fee. A rejected record
// leaves the ledger untouched.
func (s *State) Submit(rec database.Record) error {
	if err := s.submit(rec); err != nil {
		s.evHandler("state: Submit: REJECTED: rec[%s]: %s", rec.ID, err)
		recordsRejected.Inc()
		return err
	}

	s.evHandler("state: Submit: accepted: rec[%s]: from[%s]: to[%s]: amount[%s %s]", rec.ID, rec.From, rec.To, rec.Amount, rec.Currency)
	recordsAccepted.Inc()

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}

// Fund credits the address with the amount. This is the funding hook for
// seeding accounts and is not a record, so it never appears in a block.
func (s *State) Fund(address string, amount decimal.Decimal) error {
	if address == "" {
		return ErrInvalidAddress
	}

	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances.ApplyValue(address, amount)
	s.evHandler("state: Fund: funded: account[%s]: amount[%s]", address, amount)

	return nil
}

// =============================================================================

// submit performs the admission checks and queues the record while holding
// the write lock, so the balance checked is the live balance.
func (s *State) submit(rec database.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.known[rec.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
	}

	// Pending records from the same sender are not counted against the
	// balance here or re-checked at mining time. A sender can overdraw by
	// submitting several records before a block is mined.
	bal := s.balances.Balance(rec.From)
	if cost := rec.Cost(); bal.LessThan(cost) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, rec.From, bal, cost)
	}

	if _, err := s.mempool.Add(rec); err != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, err)
	}
	s.known[rec.ID] = struct{}{}

	return nil
}
