package state

import (
	"math"
	"math/bits"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
)

// GetUserProgress returns the record for the address. The zero record is
// returned for addresses that never registered.
func (s *State) GetUserProgress(address database.Address) User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.users[address.Canonical()]
}

// IsLessonCompleted reports whether the address completed the lesson.
func (s *State) IsLessonCompleted(address database.Address, lessonID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.lessons[itemKey{address.Canonical(), lessonID}]
	return exists
}

// IsStepCompleted reports whether the address completed the step under
// any course.
func (s *State) IsStepCompleted(address database.Address, stepID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.stepsAny[itemKey{address.Canonical(), stepID}]
	return exists
}

// GetCourseProgress returns the progress the address made on the course.
func (s *State) GetCourseProgress(address database.Address, courseID string) CourseProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	completed := s.courses[courseKey{address.Canonical(), courseID}]
	total := s.totalSteps[courseID]

	cp := CourseProgress{
		CompletedSteps:       completed,
		TotalSteps:           total,
		CompletionPercentage: percentage(completed, total),
		IsCompleted:          total > 0 && completed >= total,
	}

	return cp
}

// CalculateCourseProgress returns the completion percentage of the course
// for the address.
func (s *State) CalculateCourseProgress(address database.Address, courseID string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return percentage(s.courses[courseKey{address.Canonical(), courseID}], s.totalSteps[courseID])
}

// Owner returns the address allowed to configure courses.
func (s *State) Owner() database.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.owner
}

// =============================================================================

// RetrieveLatestEntry returns a copy of the latest journal entry.
func (s *State) RetrieveLatestEntry() database.EntryData {
	return s.journal.Latest()
}

// QueryEntriesByAddress returns the journal entries submitted by the
// address. If the address is empty, all entries are returned.
func (s *State) QueryEntriesByAddress(address database.Address) ([]database.EntryData, error) {
	address = address.Canonical()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []database.EntryData

	iter := s.journal.ForEach()
	for entryData, err := iter.Next(); !iter.Done(); entryData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if address == "" || entryData.Entry.Caller == address {
			out = append(out, entryData)
		}
	}

	return out, nil
}

// =============================================================================

// percentage returns floor(completed*100/total) with 0 for a zero total.
// Completions past the total produce values over 100.
func percentage(completed uint64, total uint64) uint64 {
	if total == 0 {
		return 0
	}

	hi, lo := bits.Mul64(completed, 100)
	if hi >= total {
		return math.MaxUint64
	}

	quo, _ := bits.Div64(hi, lo, total)
	return quo
}
