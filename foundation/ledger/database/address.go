package database

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Address represents the identity of a caller of the ledger. It is the
// EIP-55 checksum form of a 20 byte account address, so two spellings of
// the same account compare equal.
type Address string

// ZeroAddress is the address of no account.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// ToAddress converts a hex-encoded string to an address and validates the
// hex-encoded string is formatted correctly.
func ToAddress(hex string) (Address, error) {
	if !common.IsHexAddress(hex) {
		return "", errors.New("invalid address format")
	}

	return Address(common.HexToAddress(hex).Hex()), nil
}

// PublicKeyToAddress converts the public key to an address value.
func PublicKeyToAddress(pk ecdsa.PublicKey) Address {
	return Address(crypto.PubkeyToAddress(pk).Hex())
}

// IsAddress verifies whether the underlying data represents a valid
// hex-encoded address.
func (a Address) IsAddress() bool {
	return common.IsHexAddress(string(a))
}

// Canonical returns the checksum form of the address. Values that are not
// addresses are returned unchanged so lookups with them simply miss.
func (a Address) Canonical() Address {
	if !a.IsAddress() {
		return a
	}

	return Address(common.HexToAddress(string(a)).Hex())
}
