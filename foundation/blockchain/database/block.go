package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/crosspay/foundation/blockchain/signature"
)

// Set of errors returned when a block fails validation against the chain.
var (
	ErrHashMismatch   = errors.New("block hash does not match its content")
	ErrParentMismatch = errors.New("block parent hash does not match previous block")
	ErrNotSealed      = errors.New("block hash does not solve the difficulty")
)

// =============================================================================

// Parent identifies what a block is linked to. A block is either the
// genesis block or is linked to the hash of its predecessor.
type Parent struct {
	linked bool
	hash   string
}

// GenesisParent returns the parent used by the first block in a chain.
func GenesisParent() Parent {
	return Parent{}
}

// LinkedTo returns a parent pointing at the block with the specified hash.
func LinkedTo(hash string) Parent {
	return Parent{linked: true, hash: hash}
}

// IsGenesis reports whether this is the genesis parent.
func (p Parent) IsGenesis() bool {
	return !p.linked
}

// Hash returns the hash of the parent block. The genesis parent reports
// the zero hash.
func (p Parent) Hash() string {
	if !p.linked {
		return signature.ZeroHash
	}

	return p.hash
}

// MarshalJSON implements the json.Marshaler interface.
func (p Parent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Hash())
}

// =============================================================================

// Block represents a group of payment records batched together and sealed
// by proof of work.
type Block struct {
	Parent    Parent   `json:"prev_block_hash"` // Link to the previous block in the chain.
	TimeStamp uint64   `json:"timestamp"`       // Milliseconds since epoch when the block was constructed.
	Nonce     uint64   `json:"nonce"`           // Value identified to solve the hash solution.
	Records   []Record `json:"records"`         // Records in the order they were added.
	Hash      string   `json:"hash"`            // Hash as of the last construction or mining step.
}

// NewBlock constructs an empty, unsealed block linked to the specified parent.
func NewBlock(parent Parent) Block {
	b := Block{
		Parent:    parent,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
		Records:   []Record{},
	}
	b.Hash = b.Recompute()

	return b
}

// AddRecord appends the record to the block. A nil record is ignored. Blocks
// other than the genesis block discard invalid records and report false. The
// block hash is not refreshed, that happens when the block is mined.
func (b *Block) AddRecord(rec *Record) bool {
	if rec == nil {
		return false
	}

	if !b.Parent.IsGenesis() && !rec.IsValid() {
		return false
	}

	b.Records = append(b.Records, *rec)
	return true
}

// Recompute returns the hash for the block's current parent, timestamp,
// nonce and records.
func (b Block) Recompute() string {
	var recs strings.Builder
	for _, rec := range b.Records {
		recs.WriteString(rec.String())
	}

	return signature.Hash(
		b.Parent.Hash(),
		strconv.FormatUint(b.TimeStamp, 10),
		strconv.FormatUint(b.Nonce, 10),
		recs.String(),
	)
}

// Mine does the work to find a nonce that makes the block hash solve the
// difficulty. Pointer semantics are being used since a nonce is being
// discovered. The search runs on the calling goroutine and only returns
// early if the context is cancelled.
func (b *Block) Mine(ctx context.Context, difficulty uint, ev func(v string, args ...any)) error {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("database: Mine: MINING: started: records[%d]", len(b.Records))
	defer ev("database: Mine: MINING: completed")

	b.Hash = b.Recompute()

	var attempts uint64
	for !IsHashSolved(difficulty, b.Hash) {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if attempts%10_000 == 0 && ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED")
			return ctx.Err()
		}

		b.Nonce++
		b.Hash = b.Recompute()
	}

	ev("database: Mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: attempts[%d]", b.Parent.Hash(), b.Hash, attempts)

	return nil
}

// IsSealed reports whether the stored hash solves the difficulty.
func (b Block) IsSealed(difficulty uint) bool {
	return IsHashSolved(difficulty, b.Hash)
}

// ValidateNext checks this block can follow the specified previous block
// in a chain mined at the specified difficulty.
func (b Block) ValidateNext(prev Block, difficulty uint) error {
	if b.Hash != b.Recompute() {
		return fmt.Errorf("%w: stored %s", ErrHashMismatch, b.Hash)
	}

	if b.Parent.IsGenesis() || b.Parent.Hash() != prev.Hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrParentMismatch, b.Parent.Hash(), prev.Hash)
	}

	if !b.IsSealed(difficulty) {
		return fmt.Errorf("%w: difficulty %d, hash %s", ErrNotSealed, difficulty, b.Hash)
	}

	return nil
}

// Clone returns a copy of the block that shares no records with the original.
func (b Block) Clone() Block {
	recs := make([]Record, len(b.Records))
	copy(recs, b.Records)
	b.Records = recs

	return b
}

// =============================================================================

// IsHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func IsHashSolved(difficulty uint, hash string) bool {
	return signature.HasLeadingZeros(hash, difficulty)
}
