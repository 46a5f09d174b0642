// Package balance maintains account balances in memory.
package balance

import (
	"sync"

	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

// Sheet represents the data representation to maintain address balances.
// Addresses that have never been seen have a balance of zero.
type Sheet struct {
	miningReward decimal.Decimal
	sheet        map[string]decimal.Decimal
	mu           sync.RWMutex
}

// NewSheet constructs an empty balance sheet. Starting balances are
// credited with ApplyValue.
func NewSheet(miningReward decimal.Decimal) *Sheet {
	return &Sheet{
		miningReward: miningReward,
		sheet:        make(map[string]decimal.Decimal),
	}
}

// Replace updates the balance sheet for a new version.
func (bs *Sheet) Replace(newBS *Sheet) {
	newBS.mu.RLock()
	sheet := newBS.sheet
	newBS.mu.RUnlock()

	bs.mu.Lock()
	defer bs.mu.Unlock()

	bs.sheet = sheet
}

// Clone makes a copy of the current balance sheet.
func (bs *Sheet) Clone() *Sheet {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	balanceSheet := NewSheet(bs.miningReward)
	for address, value := range bs.sheet {
		balanceSheet.sheet[address] = value
	}
	return balanceSheet
}

// Values makes a copy of the current balance sheet but returns the raw data.
func (bs *Sheet) Values() map[string]decimal.Decimal {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	sheet := make(map[string]decimal.Decimal)
	for address, value := range bs.sheet {
		sheet[address] = value
	}
	return sheet
}

// Balance returns the balance for the address, zero if it has never
// been seen.
func (bs *Sheet) Balance(address string) decimal.Decimal {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	return bs.sheet[address]
}

// ApplyValue gives the specified address the specified value.
func (bs *Sheet) ApplyValue(address string, value decimal.Decimal) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	bs.sheet[address] = bs.sheet[address].Add(value)
}

// ApplyRecord performs the business logic for applying a mined record to
// the balance sheet. The sender pays the amount plus the fee, the receiver
// gets the amount and the miner gets the fee plus the mining reward.
//
// Balances are not checked here. Funds are only checked when a record is
// submitted, so a sender can go negative when several of its pending
// records are mined together.
func (bs *Sheet) ApplyRecord(minerAddress string, rec database.Record) {
	fee := rec.Fee()

	bs.mu.Lock()
	defer bs.mu.Unlock()
	{
		bs.sheet[rec.From] = bs.sheet[rec.From].Sub(rec.Amount.Add(fee))
		bs.sheet[rec.To] = bs.sheet[rec.To].Add(rec.Amount)
		bs.sheet[minerAddress] = bs.sheet[minerAddress].Add(fee.Add(bs.miningReward))
	}
}
