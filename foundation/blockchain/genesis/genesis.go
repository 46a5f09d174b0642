// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/crosspay/foundation/blockchain/signature"
	"github.com/shopspring/decimal"
)

// Protocol constants used when no genesis file is provided.
const (
	DefaultDifficulty   = 2
	DefaultMiningReward = "0.01"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time                  `json:"date"`
	Difficulty   uint                       `json:"difficulty"`    // How many leading hex zeros a sealed block hash needs.
	MiningReward decimal.Decimal            `json:"mining_reward"` // Flat reward credited per mined record.
	Balances     map[string]decimal.Decimal `json:"balances"`      // Starting balances applied through the funding hook.
}

// Default returns the protocol constants with no starting balances.
func Default() Genesis {
	return Genesis{
		Date:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Difficulty:   DefaultDifficulty,
		MiningReward: decimal.RequireFromString(DefaultMiningReward),
		Balances:     map[string]decimal.Decimal{},
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis: %w", err)
	}

	// No hash can carry more leading zeros than it has digits.
	if limit := uint(len(signature.ZeroHash)); genesis.Difficulty > limit {
		return Genesis{}, fmt.Errorf("genesis difficulty %d is above the hash length %d", genesis.Difficulty, limit)
	}

	for addr, balance := range genesis.Balances {
		if balance.IsNegative() {
			return Genesis{}, fmt.Errorf("genesis balance for %s is negative: %s", addr, balance)
		}
	}

	return genesis, nil
}
