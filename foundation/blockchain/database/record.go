package database

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ardanlabs/crosspay/foundation/blockchain/signature"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents where a record is in its lifecycle.
type Status string

// Set of known record statuses.
const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Fee pricing: 0.1% of the amount with a floor of 0.01.
var (
	feeRate = decimal.RequireFromString("0.001")
	feeMin  = decimal.RequireFromString("0.01")
)

// =============================================================================

// Record is the payment information between two parties. Everything but the
// status is fixed at construction and bound by the content hash.
type Record struct {
	ID          string          `json:"id"`           // Unique id assigned when the record is created.
	From        string          `json:"from"`         // Address of the account sending the amount.
	To          string          `json:"to"`           // Address of the account receiving the amount.
	Amount      decimal.Decimal `json:"amount"`       // Value being transferred, always positive.
	Currency    string          `json:"currency"`     // Currency code for the amount.
	FromCountry string          `json:"from_country"` // Country code of the sender.
	ToCountry   string          `json:"to_country"`   // Country code of the receiver.
	TimeStamp   uint64          `json:"timestamp"`    // Milliseconds since epoch when the record was created.
	Hash        string          `json:"hash"`         // Content hash computed at construction.
	Status      Status          `json:"status"`       // Lifecycle state, owned by the ledger.
}

// NewRecord constructs a new pending payment record. An error is only
// returned when a unique id can't be produced, which means the environment's
// random source is unusable.
func NewRecord(from string, to string, amount decimal.Decimal, currency string, fromCountry string, toCountry string) (Record, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Record{}, fmt.Errorf("generating record id: %w", err)
	}

	rec := Record{
		ID:          id.String(),
		From:        from,
		To:          to,
		Amount:      amount,
		Currency:    currency,
		FromCountry: fromCountry,
		ToCountry:   toCountry,
		TimeStamp:   uint64(time.Now().UTC().UnixMilli()),
		Status:      StatusPending,
	}
	rec.Hash = rec.Recompute()

	return rec, nil
}

// Recompute digests the current field values the same way the content hash
// was produced at construction.
func (rec Record) Recompute() string {
	return signature.Hash(rec.String())
}

// Validate checks the record is well formed and hasn't been altered since
// construction.
func (rec Record) Validate() error {
	if rec.From == "" {
		return errors.New("missing from address")
	}

	if rec.To == "" {
		return errors.New("missing to address")
	}

	if !rec.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", rec.Amount)
	}

	if rec.Currency == "" {
		return errors.New("missing currency")
	}

	if rec.Hash != rec.Recompute() {
		return errors.New("content hash mismatch")
	}

	return nil
}

// IsValid reports whether the record passes validation.
func (rec Record) IsValid() bool {
	return rec.Validate() == nil
}

// Fee returns the charge for this record, credited to the miner.
func (rec Record) Fee() decimal.Decimal {
	return Fee(rec.Amount)
}

// Cost returns what the sender is debited when the record is mined.
func (rec Record) Cost() decimal.Decimal {
	return rec.Amount.Add(rec.Fee())
}

// String implements the fmt.Stringer interface. The output is the content
// that is digested, both for the record and the block holding it.
func (rec Record) String() string {
	return rec.ID + rec.From + rec.To + rec.Amount.String() + rec.Currency + strconv.FormatUint(rec.TimeStamp, 10)
}

// =============================================================================

// Fee calculates the fee for the specified amount.
func Fee(amount decimal.Decimal) decimal.Decimal {
	return decimal.Max(amount.Mul(feeRate), feeMin)
}
