package state

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
)

// RegisterUser creates the record for the caller. A caller can only
// register once. Usernames are not required to be unique.
func (s *State) RegisterUser(caller database.Address, username string) (Receipt, error) {
	entry := database.NewEntry(caller.Canonical(), database.OpRegisterUser, s.now())
	entry.Username = username

	return s.submit(entry)
}

// CompleteLesson marks the lesson complete for the caller and awards the
// lesson points.
func (s *State) CompleteLesson(caller database.Address, lessonID string) (Receipt, error) {
	entry := database.NewEntry(caller.Canonical(), database.OpCompleteLesson, s.now())
	entry.LessonID = lessonID

	return s.submit(entry)
}

// CompleteStep marks the step complete for the caller within the course,
// awards the step points and counts the step towards the course. The
// course doesn't need to be known to the ledger.
func (s *State) CompleteStep(caller database.Address, stepID string, courseID string) (Receipt, error) {
	entry := database.NewEntry(caller.Canonical(), database.OpCompleteStep, s.now())
	entry.StepID = stepID
	entry.CourseID = courseID

	return s.submit(entry)
}

// SetCourseTotalSteps sets the number of steps that complete a course for
// every user. Only the owner can call this and no event is emitted.
func (s *State) SetCourseTotalSteps(caller database.Address, courseID string, total uint64) (Receipt, error) {
	entry := database.NewEntry(caller.Canonical(), database.OpSetTotalSteps, s.now())
	entry.CourseID = courseID
	entry.TotalSteps = total

	return s.submit(entry)
}

// =============================================================================

// submit runs an operation under the write lock. The state only changes
// once the entry is safely in the journal.
func (s *State) submit(entry database.Entry) (Receipt, error) {
	if !entry.Caller.IsAddress() {
		return Receipt{}, ErrInvalidCaller
	}

	// The entry hash is taken over its JSON form, which can't carry
	// invalid UTF-8. Identifiers are stored the way they will replay.
	entry.Username = strings.ToValidUTF8(entry.Username, "\uFFFD")
	entry.LessonID = strings.ToValidUTF8(entry.LessonID, "\uFFFD")
	entry.StepID = strings.ToValidUTF8(entry.StepID, "\uFFFD")
	entry.CourseID = strings.ToValidUTF8(entry.CourseID, "\uFFFD")

	s.mu.Lock()
	defer s.mu.Unlock()

	// A journal left empty by a failed truncate gets its genesis entry
	// back before anything else is written.
	if s.journal.IsEmpty() {
		if err := s.writeGenesis(); err != nil {
			return Receipt{}, fmt.Errorf("journal: %w", err)
		}
	}

	if err := s.check(entry); err != nil {
		s.evHandler("state: %s: caller[%s]: REJECTED: %s", entry.Op, entry.Caller, err)
		return Receipt{}, err
	}

	entryData, err := s.journal.Append(entry)
	if err != nil {
		s.evHandler("state: %s: caller[%s]: ERROR: %s", entry.Op, entry.Caller, err)
		return Receipt{}, fmt.Errorf("journal: %w", err)
	}

	events := s.commit(entryData.Entry)
	for _, evt := range events {
		s.subscriber(evt)
	}

	s.evHandler("state: %s: caller[%s]: committed[%d] hash[%s]", entry.Op, entry.Caller, entryData.Entry.Number, entryData.Hash)

	receipt := Receipt{
		Number: entryData.Entry.Number,
		Hash:   entryData.Hash,
		Events: events,
	}

	return receipt, nil
}
