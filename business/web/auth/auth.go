// Package auth provides support for authenticating callers of the relay
// with signed messages.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/signature"
)

// ErrForbidden is returned when the signer of a message is not the address
// the caller claims to be.
var ErrForbidden = errors.New("attempted action is not allowed")

// ctxKey represents the type of value for the context key.
type ctxKey int

// key is used to store/retrieve the caller from a context.Context.
const key ctxKey = 1

// =============================================================================

// Authenticate recovers the signer of the message and checks it against the
// claimed address. The checksum form of the address is returned when the
// two match.
func Authenticate(address string, message string, sig string) (database.Address, error) {
	signer, err := signature.FromMessage(message, sig)
	if err != nil {
		return "", fmt.Errorf("recover signer: %w", err)
	}

	if !strings.EqualFold(signer, address) {
		return "", fmt.Errorf("signer %s claimed %s: %w", signer, address, ErrForbidden)
	}

	return database.ToAddress(signer)
}

// SetCaller stores the authenticated caller in the context.
func SetCaller(ctx context.Context, caller database.Address) context.Context {
	return context.WithValue(ctx, key, caller)
}

// GetCaller returns the authenticated caller from the context.
func GetCaller(ctx context.Context) (database.Address, error) {
	v, ok := ctx.Value(key).(database.Address)
	if !ok {
		return "", errors.New("caller not found in context")
	}
	return v, nil
}
