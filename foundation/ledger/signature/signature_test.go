package signature_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/learnchain/foundation/ledger/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	from     = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
)

// =============================================================================

func Test_Signing(t *testing.T) {
	message := "Sign in to learnchain: register Alice"

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	sig, err := signature.SignMessage(message, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if len(sig) != 132 {
		t.Logf("got: %d", len(sig))
		t.Logf("exp: %d", 132)
		t.Fatalf("Should get back a 65 byte hex encoded signature.")
	}

	if sig[130:] != "1b" && sig[130:] != "1c" {
		t.Logf("got: %s", sig[130:])
		t.Fatalf("Should get back a recovery id of 27 or 28.")
	}

	addr, err := signature.FromMessage(message, sig)
	if err != nil {
		t.Fatalf("Should be able to recover the from address: %s", err)
	}

	if from != addr {
		t.Logf("got: %s", addr)
		t.Logf("exp: %s", from)
		t.Fatalf("Should get back the right address.")
	}
}

func Test_Tampered(t *testing.T) {
	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	sig, err := signature.SignMessage("complete lesson-1", pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	addr, err := signature.FromMessage("complete lesson-2", sig)
	if err == nil && addr == from {
		t.Fatalf("Should not recover the signer for a different message.")
	}
}

func Test_Malformed(t *testing.T) {
	type table struct {
		name string
		sig  string
	}

	tt := []table{
		{name: "empty", sig: ""},
		{name: "nohex", sig: "hello"},
		{name: "short", sig: "0x1234"},
		{name: "zero", sig: "0x" + zeros(130)},
	}

	t.Log("Given the need to reject malformed signatures.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				_, err := signature.FromMessage("message", tst.sig)
				if !errors.Is(err, signature.ErrInvalidSignature) {
					t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, err)
					t.Fatalf("\t%s\tTest %d:\tShould get back an invalid signature error.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get back an invalid signature error.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}
	hash := "0x0f6887ac85101d6d6425a617edf35bd721b5f619fb92c36c3d2224e3bdb0ee5a"

	h := signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the right hash: %s", h[:6])
	}

	h = signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the same hash twice.")
	}
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
