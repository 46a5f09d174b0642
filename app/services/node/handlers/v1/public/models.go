package public

import (
	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// NewRecord is what a client sends to submit a payment.
type NewRecord struct {
	From        string          `json:"from" validate:"required"`
	To          string          `json:"to" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Currency    string          `json:"currency" validate:"required"`
	FromCountry string          `json:"from_country"`
	ToCountry   string          `json:"to_country"`
}

// Deposit is what a client sends to fund an account.
type Deposit struct {
	Account string          `json:"account" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"gte=0"`
}

type submitted struct {
	Success  bool   `json:"success"`
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
}

type mined struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Block   block  `json:"block"`
}

type validity struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

type balance struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

// record is a ledger record along with the fee it carries.
type record struct {
	database.Record
	Fee decimal.Decimal `json:"fee"`
}

// block is a ledger block whose records carry their fee.
type block struct {
	database.Block
	Records []record `json:"records"`
}

func toRecord(rec database.Record) record {
	return record{
		Record: rec,
		Fee:    rec.Fee(),
	}
}

func toRecords(recs []database.Record) []record {
	out := make([]record, len(recs))
	for i, rec := range recs {
		out[i] = toRecord(rec)
	}
	return out
}

func toBlock(blk database.Block) block {
	return block{
		Block:   blk,
		Records: toRecords(blk.Records),
	}
}
