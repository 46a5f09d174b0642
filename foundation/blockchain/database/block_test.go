package database_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/ardanlabs/crosspay/foundation/blockchain/signature"
)

func Test_BlockConstruction(t *testing.T) {
	t.Log("Given the need to construct blocks.")
	{
		b := database.NewBlock(database.GenesisParent())

		if !b.Parent.IsGenesis() || b.Parent.Hash() != signature.ZeroHash {
			t.Fatalf("\t%s\tShould link a genesis block to the zero hash.", failed)
		}
		t.Logf("\t%s\tShould link a genesis block to the zero hash.", success)

		if b.Nonce != 0 || len(b.Records) != 0 {
			t.Fatalf("\t%s\tShould start empty with a zero nonce.", failed)
		}
		t.Logf("\t%s\tShould start empty with a zero nonce.", success)

		if b.Hash == "" || b.Hash != b.Recompute() {
			t.Fatalf("\t%s\tShould compute the hash on construction.", failed)
		}
		t.Logf("\t%s\tShould compute the hash on construction.", success)

		linked := database.NewBlock(database.LinkedTo(b.Hash))
		if linked.Parent.IsGenesis() || linked.Parent.Hash() != b.Hash {
			t.Fatalf("\t%s\tShould link to the parent hash.", failed)
		}
		t.Logf("\t%s\tShould link to the parent hash.", success)
	}
}

func Test_BlockJSON(t *testing.T) {
	t.Log("Given the need to publish blocks as JSON.")
	{
		gen := database.NewBlock(database.GenesisParent())
		next := database.NewBlock(database.LinkedTo(gen.Hash))
		rec := newRecord(t, "alice", "bob", "40")
		next.AddRecord(&rec)

		tests := []struct {
			name   string
			block  database.Block
			parent string
		}{
			{name: "genesis", block: gen, parent: signature.ZeroHash},
			{name: "linked", block: next, parent: gen.Hash},
		}

		for testID, tst := range tests {
			f := func(t *testing.T) {
				data, err := json.Marshal(tst.block)
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to marshal the block: %v", failed, testID, err)
				}

				var doc struct {
					PrevBlockHash string            `json:"prev_block_hash"`
					Hash          string            `json:"hash"`
					Records       []json.RawMessage `json:"records"`
				}
				if err := json.Unmarshal(data, &doc); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to decode the document: %v", failed, testID, err)
				}

				if doc.PrevBlockHash != tst.parent {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, doc.PrevBlockHash)
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.parent)
					t.Fatalf("\t%s\tTest %d:\tShould publish the parent as a plain hash.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould publish the parent as a plain hash.", success, testID)

				if doc.Hash != tst.block.Hash || doc.Records == nil || len(doc.Records) != len(tst.block.Records) {
					t.Fatalf("\t%s\tTest %d:\tShould publish the hash and every record.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould publish the hash and every record.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_AddRecord(t *testing.T) {
	t.Log("Given the need to add records to a block.")
	{
		b := database.NewBlock(database.LinkedTo(strings.Repeat("0", 64)))
		hash := b.Hash

		if b.AddRecord(nil) {
			t.Fatalf("\t%s\tShould ignore a nil record.", failed)
		}
		t.Logf("\t%s\tShould ignore a nil record.", success)

		good := newRecord(t, "alice", "bob", "40")
		bad := newRecord(t, "alice", "bob", "40")
		bad.To = "mallory"

		if !b.AddRecord(&good) {
			t.Fatalf("\t%s\tShould accept a valid record.", failed)
		}
		t.Logf("\t%s\tShould accept a valid record.", success)

		if b.AddRecord(&bad) {
			t.Fatalf("\t%s\tShould discard an invalid record.", failed)
		}
		t.Logf("\t%s\tShould discard an invalid record.", success)

		if len(b.Records) != 1 || b.Records[0].ID != good.ID {
			t.Fatalf("\t%s\tShould only hold the valid record.", failed)
		}
		t.Logf("\t%s\tShould only hold the valid record.", success)

		if b.Hash != hash {
			t.Fatalf("\t%s\tShould not refresh the hash when adding.", failed)
		}
		t.Logf("\t%s\tShould not refresh the hash when adding.", success)

		if b.Recompute() == hash {
			t.Fatalf("\t%s\tShould include records in the recomputed hash.", failed)
		}
		t.Logf("\t%s\tShould include records in the recomputed hash.", success)

		gen := database.NewBlock(database.GenesisParent())
		if !gen.AddRecord(&bad) {
			t.Fatalf("\t%s\tShould not gate records in the genesis block.", failed)
		}
		t.Logf("\t%s\tShould not gate records in the genesis block.", success)
	}
}

func Test_Mine(t *testing.T) {
	tt := []struct {
		name       string
		difficulty uint
	}{
		{name: "none", difficulty: 0},
		{name: "one", difficulty: 1},
		{name: "two", difficulty: 2},
		{name: "three", difficulty: 3},
	}

	t.Log("Given the need to seal blocks with proof of work.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				b := database.NewBlock(database.GenesisParent())
				rec := newRecord(t, "alice", "bob", "40")
				b.AddRecord(&rec)

				if err := b.Mine(context.Background(), tst.difficulty, nil); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to mine the block: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould be able to mine the block.", success, testID)

				prefix := strings.Repeat("0", int(tst.difficulty))
				if !strings.HasPrefix(b.Hash, prefix) || !b.IsSealed(tst.difficulty) {
					t.Fatalf("\t%s\tTest %d:\tShould have %d leading zeros: %s", failed, testID, tst.difficulty, b.Hash)
				}
				t.Logf("\t%s\tTest %d:\tShould have %d leading zeros.", success, testID, tst.difficulty)

				if b.Hash != b.Recompute() {
					t.Fatalf("\t%s\tTest %d:\tShould store the hash for the final nonce.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould store the hash for the final nonce.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_MineCancelled(t *testing.T) {
	t.Log("Given the need to stop mining when the caller gives up.")
	{
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		b := database.NewBlock(database.GenesisParent())
		err := b.Mine(ctx, 64, nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("\t%s\tShould return the context error, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould return the context error.", success)
	}
}

func Test_ValidateNext(t *testing.T) {
	const difficulty = 2

	mine := func(t *testing.T, b *database.Block) {
		if err := b.Mine(context.Background(), difficulty, nil); err != nil {
			t.Fatalf("\t%s\tShould be able to mine the block: %v", failed, err)
		}
	}

	t.Log("Given the need to validate block linkage.")
	{
		gen := database.NewBlock(database.GenesisParent())
		mine(t, &gen)

		next := database.NewBlock(database.LinkedTo(gen.Hash))
		rec := newRecord(t, "alice", "bob", "40")
		next.AddRecord(&rec)
		mine(t, &next)

		if err := next.ValidateNext(gen, difficulty); err != nil {
			t.Fatalf("\t%s\tShould accept a properly linked block: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept a properly linked block.", success)

		tampered := next.Clone()
		tampered.Records[0].Amount = tampered.Records[0].Amount.Add(tampered.Records[0].Amount)
		if err := tampered.ValidateNext(gen, difficulty); !errors.Is(err, database.ErrHashMismatch) {
			t.Fatalf("\t%s\tShould detect altered content, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould detect altered content.", success)

		if next.Records[0].Amount.Equal(tampered.Records[0].Amount) {
			t.Fatalf("\t%s\tShould not share records between clones.", failed)
		}
		t.Logf("\t%s\tShould not share records between clones.", success)

		orphan := database.NewBlock(database.LinkedTo(strings.Repeat("f", 64)))
		mine(t, &orphan)
		if err := orphan.ValidateNext(gen, difficulty); !errors.Is(err, database.ErrParentMismatch) {
			t.Fatalf("\t%s\tShould detect a broken link, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould detect a broken link.", success)

		unsealed := database.NewBlock(database.LinkedTo(gen.Hash))
		for unsealed.IsSealed(difficulty) {
			unsealed.Nonce++
			unsealed.Hash = unsealed.Recompute()
		}
		if err := unsealed.ValidateNext(gen, difficulty); !errors.Is(err, database.ErrNotSealed) {
			t.Fatalf("\t%s\tShould detect an unsealed block, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould detect an unsealed block.", success)
	}
}
