package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/state"
	"go.uber.org/zap"
)

// Verify replays the journal through the ledger rules. Any broken hash
// link or entry the rules would have rejected fails the verification.
func Verify(w io.Writer, log *zap.SugaredLogger, serializer database.Serializer) error {
	jnl, err := database.New(serializer, nil)
	if err != nil {
		return err
	}

	if jnl.IsEmpty() {
		return errors.New("journal is empty")
	}

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	ledger, err := state.New(state.Config{
		Serializer: serializer,
		EvHandler:  ev,
	})
	if err != nil {
		return err
	}

	latest := ledger.RetrieveLatestEntry()
	fmt.Fprintf(w, "owner:   %s\n", ledger.Owner())
	fmt.Fprintf(w, "entries: %d\n", latest.Entry.Number+1)
	fmt.Fprintf(w, "latest:  %s\n", latest.Hash)

	return nil
}
