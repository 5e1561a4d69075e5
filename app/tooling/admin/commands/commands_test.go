package commands_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/learnchain/app/tooling/admin/commands"
	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/state"
	"github.com/ardanlabs/learnchain/foundation/ledger/storage/disk"
	"github.com/ardanlabs/learnchain/foundation/ledger/storage/memory"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	owner = database.Address("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")
	user1 = database.Address("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
)

func Test_Commands(t *testing.T) {
	t.Log("Given the need to inspect a journal on disk.")
	{
		dbPath := t.TempDir()

		d, err := disk.New(dbPath)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to open the journal: %v", failed, err)
		}

		ledger, err := state.New(state.Config{
			Owner:      owner,
			Serializer: d,
			Now:        func() time.Time { return time.Unix(1700000000, 0) },
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		if _, err := ledger.RegisterUser(user1, "Alice"); err != nil {
			t.Fatalf("\t%s\tShould be able to register: %v", failed, err)
		}
		if _, err := ledger.CompleteStep(user1, "step-1", "course-1"); err != nil {
			t.Fatalf("\t%s\tShould be able to complete a step: %v", failed, err)
		}
		ledger.Shutdown()
		t.Logf("\t%s\tShould be able to write a journal.", success)

		d, err = disk.New(dbPath)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to reopen the journal: %v", failed, err)
		}
		defer d.Close()

		var out bytes.Buffer
		if err := commands.Journal(&out, strings.ToLower(string(user1)), d); err != nil {
			t.Fatalf("\t%s\tShould be able to list the journal: %v", failed, err)
		}
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if len(lines) != 2 || !strings.Contains(lines[1], "course[course-1] step[step-1]") {
			t.Fatalf("\t%s\tShould list the entries of the address: %q", failed, out.String())
		}
		t.Logf("\t%s\tShould list the entries of the address.", success)

		out.Reset()
		if err := commands.Verify(&out, zap.NewNop().Sugar(), d); err != nil {
			t.Fatalf("\t%s\tShould be able to verify the journal: %v", failed, err)
		}
		if !strings.Contains(out.String(), "entries: 3") || !strings.Contains(out.String(), string(owner)) {
			t.Fatalf("\t%s\tShould report the owner and entries: %q", failed, out.String())
		}
		t.Logf("\t%s\tShould report the owner and entries.", success)

		out.Reset()
		if err := commands.Reset(&out, zap.NewNop().Sugar(), d); err != nil {
			t.Fatalf("\t%s\tShould be able to reset the journal: %v", failed, err)
		}

		out.Reset()
		if err := commands.Verify(&out, zap.NewNop().Sugar(), d); err != nil {
			t.Fatalf("\t%s\tShould be able to verify the reset journal: %v", failed, err)
		}
		if !strings.Contains(out.String(), "entries: 1") || !strings.Contains(out.String(), string(owner)) {
			t.Fatalf("\t%s\tShould keep only genesis for the owner: %q", failed, out.String())
		}
		t.Logf("\t%s\tShould keep only genesis for the owner.", success)
	}
}

func Test_ResetCorrupted(t *testing.T) {
	t.Log("Given the need to reset a journal that no longer replays.")
	{
		dbPath := t.TempDir()

		d, err := disk.New(dbPath)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to open the journal: %v", failed, err)
		}
		defer d.Close()

		ledger, err := state.New(state.Config{Owner: owner, Serializer: d})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		receipt, err := ledger.RegisterUser(user1, "Alice")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to register: %v", failed, err)
		}

		// An entry altered after it was hashed breaks the chain.
		latest := ledger.RetrieveLatestEntry()
		entry := database.NewEntry(user1, database.OpCompleteLesson, time.Unix(1700000000, 0))
		entry.Number = receipt.Number + 1
		entry.PrevHash = latest.Hash
		entry.LessonID = "lesson-1"
		entryData := database.NewEntryData(entry)
		entryData.Entry.LessonID = "lesson-2"
		if err := d.Write(entryData); err != nil {
			t.Fatalf("\t%s\tShould be able to write the altered entry: %v", failed, err)
		}

		var out bytes.Buffer
		if err := commands.Verify(&out, zap.NewNop().Sugar(), d); err == nil {
			t.Fatalf("\t%s\tShould fail to verify the altered journal.", failed)
		}
		t.Logf("\t%s\tShould fail to verify the altered journal.", success)

		out.Reset()
		if err := commands.Reset(&out, zap.NewNop().Sugar(), d); err != nil {
			t.Fatalf("\t%s\tShould be able to reset the altered journal: %v", failed, err)
		}
		if !strings.Contains(out.String(), string(owner)) {
			t.Fatalf("\t%s\tShould report the genesis owner: %q", failed, out.String())
		}
		t.Logf("\t%s\tShould be able to reset the altered journal.", success)

		out.Reset()
		if err := commands.Verify(&out, zap.NewNop().Sugar(), d); err != nil {
			t.Fatalf("\t%s\tShould be able to verify the reset journal: %v", failed, err)
		}
		if !strings.Contains(out.String(), "entries: 1") {
			t.Fatalf("\t%s\tShould keep only genesis: %q", failed, out.String())
		}
		t.Logf("\t%s\tShould keep only genesis.", success)

		if err := commands.Reset(&out, zap.NewNop().Sugar(), memory.New()); err == nil {
			t.Fatalf("\t%s\tShould refuse to reset a journal without genesis.", failed)
		}
		t.Logf("\t%s\tShould refuse to reset a journal without genesis.", success)
	}
}
