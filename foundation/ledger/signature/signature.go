// Package signature provides helper functions for handling the ledger
// signature needs. Messages are signed and recovered using the same scheme
// wallets like MetaMask use for personal_sign.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// ethereumID is the offset wallets add to the recovery id when producing a
// personal_sign signature.
const ethereumID = 27

// ErrInvalidSignature is returned when a signature can't be decoded or
// doesn't recover to a public key.
var ErrInvalidSignature = errors.New("invalid signature")

// =============================================================================

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// SignMessage uses the specified private key to sign the message. The
// signature is returned hex-encoded in the [R|S|V] format with V as 27 or 28.
func SignMessage(message string, privateKey *ecdsa.PrivateKey) (string, error) {

	// Prepare the data for signing.
	data := stamp(message)

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return "", err
	}

	// Check the public key extracted from the data and signature.
	publicKey, err := crypto.SigToPub(data, sig)
	if err != nil {
		return "", err
	}

	rs := sig[:crypto.RecoveryIDOffset]
	if !crypto.VerifySignature(crypto.FromECDSAPub(publicKey), data, rs) {
		return "", ErrInvalidSignature
	}

	sig[crypto.RecoveryIDOffset] += ethereumID

	return hexutil.Encode(sig), nil
}

// FromMessage extracts the address for the account that signed the message.
func FromMessage(message string, sigStr string) (string, error) {

	// NOTE: If the same exact message for the given signature is not provided
	// we will get a different address back and no error. The caller must
	// compare the result against the address it expected to see.

	sig, err := ToSignatureBytes(sigStr)
	if err != nil {
		return "", err
	}

	// Capture the public key associated with this message and signature.
	publicKey, err := crypto.SigToPub(stamp(message), sig)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	// Extract the account address from the public key.
	return crypto.PubkeyToAddress(*publicKey).String(), nil
}

// ToSignatureBytes decodes a hex-encoded signature and normalizes the
// recovery id to 0 or 1.
func ToSignatureBytes(sigStr string) ([]byte, error) {
	sig, err := hexutil.Decode(sigStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("%w: length %d, exp %d", ErrInvalidSignature, len(sig), crypto.SignatureLength)
	}

	// Wallets publish V as 27 or 28, older ones as 0 or 1.
	v := sig[crypto.RecoveryIDOffset]
	if v >= ethereumID {
		v -= ethereumID
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(v, r, s, false) {
		return nil, fmt.Errorf("%w: invalid signature values", ErrInvalidSignature)
	}

	sig[crypto.RecoveryIDOffset] = v

	return sig, nil
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents the message with the
// Ethereum stamp embedded into the final hash.
func stamp(message string) []byte {

	// The length of the message is part of the stamp so a signature over
	// one message can't be replayed over a prefix of it.
	stamp := "\x19Ethereum Signed Message:\n" + strconv.Itoa(len(message))

	return crypto.Keccak256([]byte(stamp), []byte(message))
}
