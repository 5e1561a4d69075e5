// Package nameservice reads the zblock/accounts folder and creates a name
// service lookup for the known accounts, such as the ledger owner.
package nameservice

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ethereum/go-ethereum/crypto"
)

// keyExtension is the extension of the private key files.
const keyExtension = ".ecdsa"

// NameService maintains a map of accounts for name lookup.
type NameService struct {
	accounts map[database.Address]string
	names    map[string]database.Address
}

// New constructs a Name Service with accounts from the specified folder.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[database.Address]string),
		names:    make(map[string]database.Address),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if path.Ext(fileName) != keyExtension {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading %s: %w", fileName, err)
		}

		address := database.PublicKeyToAddress(privateKey.PublicKey)
		name := strings.TrimSuffix(path.Base(fileName), keyExtension)

		ns.accounts[address] = name
		ns.names[name] = address

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified address. The address itself
// is returned when it isn't known.
func (ns *NameService) Lookup(address database.Address) string {
	name, exists := ns.accounts[address.Canonical()]
	if !exists {
		return string(address)
	}
	return name
}

// AddressOf returns the address of the account with the specified name.
func (ns *NameService) AddressOf(name string) (database.Address, error) {
	address, exists := ns.names[name]
	if !exists {
		return "", fmt.Errorf("account %q not found", name)
	}
	return address, nil
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[database.Address]string {
	cpy := make(map[database.Address]string, len(ns.accounts))
	for address, name := range ns.accounts {
		cpy[address] = name
	}
	return cpy
}
