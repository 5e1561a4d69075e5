package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/learnchain/business/web/errs"
	"github.com/ardanlabs/learnchain/foundation/ledger/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_FromLedger(t *testing.T) {
	type table struct {
		name    string
		err     error
		trusted bool
		status  int
	}

	tt := []table{
		{name: "registered", err: state.ErrAlreadyRegistered, trusted: true, status: http.StatusBadRequest},
		{name: "notregistered", err: state.ErrNotRegistered, trusted: true, status: http.StatusBadRequest},
		{name: "completed", err: fmt.Errorf("lesson %w", state.ErrAlreadyCompleted), trusted: true, status: http.StatusBadRequest},
		{name: "owner", err: state.ErrNotOwner, trusted: true, status: http.StatusForbidden},
		{name: "disk", err: errors.New("disk full"), trusted: false},
	}

	t.Log("Given the need to map ledger errors to responses.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				err := errs.FromLedger(tst.err)

				if errs.IsTrusted(err) != tst.trusted {
					t.Fatalf("\t%s\tTest %d:\tShould get back the right kind of error: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould get back the right kind of error.", success, testID)

				if !tst.trusted {
					return
				}

				trusted := errs.GetTrusted(err)
				if trusted.Status != tst.status {
					t.Fatalf("\t%s\tTest %d:\tShould get status %d, got %d.", failed, testID, tst.status, trusted.Status)
				}
				if trusted.Error() != tst.err.Error() {
					t.Fatalf("\t%s\tTest %d:\tShould keep the ledger message: %s", failed, testID, trusted.Error())
				}
				t.Logf("\t%s\tTest %d:\tShould get status %d.", success, testID, tst.status)
			}

			t.Run(tst.name, f)
		}
	}
}
