package mid

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ardanlabs/learnchain/business/sys/validate"
	"github.com/ardanlabs/learnchain/business/web/auth"
	"github.com/ardanlabs/learnchain/business/web/errs"
	"github.com/ardanlabs/learnchain/foundation/ledger/signature"
	"github.com/ardanlabs/learnchain/foundation/web"
)

// maxBodySize bounds the payload read to authenticate a request.
const maxBodySize = 1 << 20

// signed is the envelope every mutating request carries in its body.
type signed struct {
	Address   string `json:"address" validate:"required,eth_addr"`
	Message   string `json:"message" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// Authenticate validates the signed envelope in the request body and places
// the signer into the context as the caller. The body is restored so the
// handler can decode its own fields.
func Authenticate() web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
			if err != nil {
				return errs.NewTrusted(err, http.StatusBadRequest)
			}
			r.Body.Close()

			var env signed
			if err := json.Unmarshal(body, &env); err != nil {
				return errs.NewTrusted(err, http.StatusBadRequest)
			}

			if err := validate.Check(env); err != nil {
				return err
			}

			caller, err := auth.Authenticate(env.Address, env.Message, env.Signature)
			if err != nil {
				return errs.NewTrusted(signature.ErrInvalidSignature, http.StatusUnauthorized)
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			ctx = auth.SetCaller(ctx, caller)

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
