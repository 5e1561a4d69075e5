package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/learnchain/foundation/ledger/signature"
)

// Set of operations that can be recorded in the journal.
const (
	OpGenesis        Op = "genesis"
	OpRegisterUser   Op = "register_user"
	OpCompleteLesson Op = "complete_lesson"
	OpCompleteStep   Op = "complete_step"
	OpSetTotalSteps  Op = "set_course_total_steps"
)

// Op names the ledger operation an entry records.
type Op string

// =============================================================================

// Entry is one committed ledger operation. Only the fields the operation
// uses are set.
type Entry struct {
	Number     uint64  `json:"number"`
	PrevHash   string  `json:"prev_hash"`
	TimeStamp  uint64  `json:"timestamp"`
	Caller     Address `json:"caller"`
	Op         Op      `json:"op"`
	Username   string  `json:"username,omitempty"`
	LessonID   string  `json:"lesson_id,omitempty"`
	StepID     string  `json:"step_id,omitempty"`
	CourseID   string  `json:"course_id,omitempty"`
	TotalSteps uint64  `json:"total_steps,omitempty"`
}

// NewEntry constructs an entry for the specified operation. The number and
// previous hash are assigned by the journal when it's appended.
func NewEntry(caller Address, op Op, now time.Time) Entry {
	return Entry{
		TimeStamp: uint64(now.UTC().Unix()),
		Caller:    caller,
		Op:        op,
	}
}

// Hash returns the unique hash for the entry.
func (e Entry) Hash() string {
	return signature.Hash(e)
}

// =============================================================================

// EntryData represents what is serialized to storage.
type EntryData struct {
	Hash  string `json:"hash"`
	Entry Entry  `json:"entry"`
}

// NewEntryData constructs the storage form of an entry.
func NewEntryData(entry Entry) EntryData {
	return EntryData{
		Hash:  entry.Hash(),
		Entry: entry,
	}
}

// ValidateEntry takes an entry read from storage and validates it against
// the entry that should come before it.
func (ed EntryData) ValidateEntry(previous EntryData) error {
	if hash := ed.Entry.Hash(); hash != ed.Hash {
		return fmt.Errorf("entry %d hash mismatch, got %s, exp %s", ed.Entry.Number, ed.Hash, hash)
	}

	if ed.Entry.Op == OpGenesis {
		if ed.Entry.Number != 0 || ed.Entry.PrevHash != signature.ZeroHash {
			return errors.New("genesis entry must be number 0 with a zero parent hash")
		}
		return nil
	}

	if ed.Entry.Number != previous.Entry.Number+1 {
		return fmt.Errorf("entry %d out of order, exp %d", ed.Entry.Number, previous.Entry.Number+1)
	}

	if ed.Entry.PrevHash != previous.Hash {
		return fmt.Errorf("entry %d parent hash mismatch, got %s, exp %s", ed.Entry.Number, ed.Entry.PrevHash, previous.Hash)
	}

	return nil
}
