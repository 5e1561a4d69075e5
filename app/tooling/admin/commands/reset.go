package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/state"
	"go.uber.org/zap"
)

// Reset truncates the journal, keeping only a new genesis entry for the
// owner the journal was created with. Only the genesis entry is read so a
// journal that no longer replays can still be reset.
func Reset(w io.Writer, log *zap.SugaredLogger, serializer database.Serializer) error {
	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	genesis, err := serializer.GetEntry(0)
	if err != nil {
		return fmt.Errorf("reading genesis: %w", err)
	}

	if genesis.Entry.Op != database.OpGenesis || !genesis.Entry.Caller.IsAddress() {
		return errors.New("entry 0 is not a genesis entry")
	}
	owner := genesis.Entry.Caller

	if err := serializer.Reset(); err != nil {
		return err
	}

	ledger, err := state.New(state.Config{
		Owner:      owner,
		Serializer: serializer,
		EvHandler:  ev,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "journal reset, owner: %s\n", ledger.Owner())

	return nil
}
