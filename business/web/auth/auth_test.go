package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardanlabs/learnchain/business/web/auth"
	"github.com/ardanlabs/learnchain/foundation/ledger/database"
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
	address  = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
)

func Test_Authenticate(t *testing.T) {
	t.Log("Given the need to authenticate a signed message.")
	{
		pk, err := crypto.HexToECDSA(pkHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}

		sig, err := signature.SignMessage("register", pk)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the message: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to sign the message.", success)

		caller, err := auth.Authenticate("0xdd6b972ffcc631a62cae1bb9d80b7ff429c8eba4", "register", sig)
		if err != nil {
			t.Fatalf("\t%s\tShould accept the lower case address: %v", failed, err)
		}
		if caller != database.Address(address) {
			t.Logf("\t%s\tgot: %s", failed, caller)
			t.Logf("\t%s\texp: %s", failed, address)
			t.Fatalf("\t%s\tShould get back the checksum address.", failed)
		}
		t.Logf("\t%s\tShould get back the checksum address.", success)

		_, err = auth.Authenticate("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8", "register", sig)
		if !errors.Is(err, auth.ErrForbidden) {
			t.Fatalf("\t%s\tShould reject a claimed address that didn't sign: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a claimed address that didn't sign.", success)

		if _, err := auth.Authenticate(address, "register", "0x00"); err == nil {
			t.Fatalf("\t%s\tShould reject a malformed signature.", failed)
		}
		t.Logf("\t%s\tShould reject a malformed signature.", success)
	}
}

func Test_Caller(t *testing.T) {
	t.Log("Given the need to carry the caller in the context.")
	{
		if _, err := auth.GetCaller(context.Background()); err == nil {
			t.Fatalf("\t%s\tShould get an error from an empty context.", failed)
		}
		t.Logf("\t%s\tShould get an error from an empty context.", success)

		ctx := auth.SetCaller(context.Background(), database.Address(address))
		caller, err := auth.GetCaller(ctx)
		if err != nil || caller != database.Address(address) {
			t.Fatalf("\t%s\tShould get back the caller: %s %v", failed, caller, err)
		}
		t.Logf("\t%s\tShould get back the caller.", success)
	}
}
