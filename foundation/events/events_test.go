package events_test

import (
	"testing"

	"github.com/ardanlabs/crosspay/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestNewEvent(t *testing.T) {
	type table struct {
		msg    string
		source string
		text   string
	}

	tt := []table{
		{msg: "state: Submit: accepted", source: "state", text: "Submit: accepted"},
		{msg: "no prefix here", source: "ledger", text: "no prefix here"},
	}

	t.Log("Given the need to turn ledger messages into events.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %q.", testID, tst.msg)
			{
				e := events.NewEvent(tst.msg)
				if e.Source != tst.source {
					t.Fatalf("\t%s\tTest %d:\tShould get source %q, got %q.", failed, testID, tst.source, e.Source)
				}
				t.Logf("\t%s\tTest %d:\tShould get source %q.", success, testID, tst.source)

				if e.Message != tst.text {
					t.Fatalf("\t%s\tTest %d:\tShould get message %q, got %q.", failed, testID, tst.text, e.Message)
				}
				t.Logf("\t%s\tTest %d:\tShould get message %q.", success, testID, tst.text)
			}
		}
	}
}

func TestFanOut(t *testing.T) {
	t.Log("Given the need to fan events out to listeners.")
	{
		t.Logf("\tTest 0:\tWhen two listeners are registered.")
		{
			evts := events.New()
			defer evts.Shutdown()

			ch1 := evts.Acquire("one")
			ch2 := evts.Acquire("two")

			if evts.Len() != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have 2 listeners, got %d.", failed, evts.Len())
			}
			t.Logf("\t%s\tTest 0:\tShould have 2 listeners.", success)

			evts.Send("worker: mined block")

			for i, ch := range []<-chan events.Event{ch1, ch2} {
				e := <-ch
				if e.Source != "worker" {
					t.Fatalf("\t%s\tTest 0:\tShould deliver to listener %d, got %+v.", failed, i, e)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould deliver to every listener.", success)

			if err := evts.Release("one"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould release a listener: %v", failed, err)
			}
			if _, open := <-ch1; open {
				t.Fatalf("\t%s\tTest 0:\tShould close a released channel.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould close a released channel.", success)

			if err := evts.Release("one"); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould fail to release an unknown id.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould fail to release an unknown id.", success)
		}
	}
}
