// This program performs administrative tasks for the progress ledger.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/learnchain/app/tooling/admin/commands"
	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/storage/disk"
	"github.com/ardanlabs/learnchain/foundation/ledger/storage/sqlite"
	"github.com/ardanlabs/learnchain/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Errorw("startup", "ERROR", err)
		}
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Args   conf.Args
		Ledger struct {
			Storage string `conf:"default:disk"`
			DBPath  string `conf:"default:zledger/journal"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "RELAY"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	var serializer database.Serializer
	switch cfg.Ledger.Storage {
	case "disk":
		serializer, err = disk.New(cfg.Ledger.DBPath)
	case "sqlite":
		serializer, err = sqlite.New(cfg.Ledger.DBPath)
	default:
		return fmt.Errorf("unsupported ledger storage %q", cfg.Ledger.Storage)
	}
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer serializer.Close()

	return processCommands(cfg.Args, log, serializer)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args conf.Args, log *zap.SugaredLogger, serializer database.Serializer) error {
	switch args.Num(0) {
	case "journal":
		if err := commands.Journal(os.Stdout, args.Num(1), serializer); err != nil {
			return fmt.Errorf("listing journal: %w", err)
		}

	case "verify":
		if err := commands.Verify(os.Stdout, log, serializer); err != nil {
			return fmt.Errorf("verifying journal: %w", err)
		}

	case "reset":
		if err := commands.Reset(os.Stdout, log, serializer); err != nil {
			return fmt.Errorf("resetting journal: %w", err)
		}

	default:
		fmt.Println("journal [address]: list the journal entries, optionally for one address")
		fmt.Println("verify:            replay the journal and verify its hash chain")
		fmt.Println("reset:             truncate the journal to a new genesis entry")
		fmt.Println("provide a command to get more help.")
		return commands.ErrHelp
	}

	return nil
}
