package signature_test

import (
	"testing"

	"github.com/ardanlabs/crosspay/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Hash(t *testing.T) {
	tt := []struct {
		name  string
		parts []string
		hash  string
	}{
		{
			name:  "empty",
			parts: nil,
			hash:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "single",
			parts: []string{"abc"},
			hash:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:  "concatenated",
			parts: []string{"a", "b", "c"},
			hash:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	t.Log("Given the need to digest values.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				got := signature.Hash(tst.parts...)
				if got != tst.hash {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.hash)
					t.Fatalf("\t%s\tTest %d:\tShould get back the right hash.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get back the right hash.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_HasLeadingZeros(t *testing.T) {
	tt := []struct {
		name string
		hash string
		n    uint
		exp  bool
	}{
		{name: "none-required", hash: "abc", n: 0, exp: true},
		{name: "solved", hash: "00ab", n: 2, exp: true},
		{name: "one-short", hash: "0a0b", n: 2, exp: false},
		{name: "too-short", hash: "0", n: 2, exp: false},
		{name: "zero-hash", hash: signature.ZeroHash, n: 64, exp: true},
	}

	t.Log("Given the need to check a hash against a difficulty.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				if got := signature.HasLeadingZeros(tst.hash, tst.n); got != tst.exp {
					t.Fatalf("\t%s\tTest %d:\tShould get %v for %q at %d, got %v.", failed, testID, tst.exp, tst.hash, tst.n, got)
				}
				t.Logf("\t%s\tTest %d:\tShould get %v for %q at %d.", success, testID, tst.exp, tst.hash, tst.n)
			}

			t.Run(tst.name, f)
		}
	}
}
