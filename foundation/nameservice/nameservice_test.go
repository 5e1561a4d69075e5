package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	address  = database.Address("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
)

func Test_NameService(t *testing.T) {
	t.Log("Given the need to name known accounts.")
	{
		dir := t.TempDir()

		pk, err := crypto.HexToECDSA(pkHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
		}
		if err := crypto.SaveECDSA(filepath.Join(dir, "owner.ecdsa"), pk); err != nil {
			t.Fatalf("\t%s\tShould be able to save the key: %v", failed, err)
		}

		ns, err := nameservice.New(dir)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the name service: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the name service.", success)

		got, err := ns.AddressOf("owner")
		if err != nil || got != address.Canonical() {
			t.Logf("\t%s\tgot: %s", failed, got)
			t.Logf("\t%s\texp: %s", failed, address)
			t.Fatalf("\t%s\tShould resolve the owner address: %v", failed, err)
		}
		t.Logf("\t%s\tShould resolve the owner address.", success)

		if name := ns.Lookup(address); name != "owner" {
			t.Fatalf("\t%s\tShould look up the name, got %s.", failed, name)
		}
		t.Logf("\t%s\tShould look up the name.", success)

		if _, err := ns.AddressOf("nobody"); err == nil {
			t.Fatalf("\t%s\tShould fail for an unknown name.", failed)
		}
		t.Logf("\t%s\tShould fail for an unknown name.", success)
	}
}
