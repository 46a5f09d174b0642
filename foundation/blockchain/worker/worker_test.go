package worker_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/ardanlabs/crosspay/foundation/blockchain/genesis"
	"github.com/ardanlabs/crosspay/foundation/blockchain/state"
	"github.com/ardanlabs/crosspay/foundation/blockchain/worker"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_BackgroundMining(t *testing.T) {
	t.Log("Given the need to mine submitted records in the background.")
	{
		ev := func(v string, args ...any) { t.Logf(v, args...) }

		st, err := state.New(state.Config{Genesis: genesis.Default()})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		w := worker.Run(st, "miner", time.Hour, ev)
		defer st.Shutdown()

		if st.Worker != w {
			t.Fatalf("\t%s\tShould register with the ledger.", failed)
		}
		t.Logf("\t%s\tShould register with the ledger.", success)

		if err := st.Fund("alice", decimal.NewFromInt(100)); err != nil {
			t.Fatalf("\t%s\tShould be able to fund: %v", failed, err)
		}

		rec, err := database.NewRecord("alice", "bob", decimal.NewFromInt(40), "USD", "US", "MX")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a record: %v", failed, err)
		}

		if err := st.Submit(rec); err != nil {
			t.Fatalf("\t%s\tShould be able to submit: %v", failed, err)
		}

		deadline := time.Now().Add(5 * time.Second)
		for {
			if got, exists := st.QueryRecordByID(rec.ID); exists && got.Status == database.StatusCompleted {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould mine the record without being asked.", failed)
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould mine the record without being asked.", success)

		if !st.QueryBalance("bob").Equal(decimal.NewFromInt(40)) || !st.IsValid() {
			t.Fatalf("\t%s\tShould apply the record and stay valid.", failed)
		}
		t.Logf("\t%s\tShould apply the record and stay valid.", success)
	}
}
