package state

import (
	"fmt"
	"math"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
)

// check validates the preconditions of the operation the entry records
// against the current state. It doesn't change anything. The caller must
// hold the write lock.
func (s *State) check(entry database.Entry) error {
	switch entry.Op {
	case database.OpGenesis:
		return nil

	case database.OpRegisterUser:
		if s.users[entry.Caller].IsActive {
			return ErrAlreadyRegistered
		}
		return nil

	case database.OpCompleteLesson:
		user := s.users[entry.Caller]
		if !user.IsActive {
			return ErrNotRegistered
		}
		if _, exists := s.lessons[itemKey{entry.Caller, entry.LessonID}]; exists {
			return errLessonCompleted
		}
		if user.TotalPoints > math.MaxUint64-LessonPoints {
			return ErrPointsOverflow
		}
		return nil

	case database.OpCompleteStep:
		user := s.users[entry.Caller]
		if !user.IsActive {
			return ErrNotRegistered
		}
		if _, exists := s.steps[stepKey{entry.Caller, entry.CourseID, entry.StepID}]; exists {
			return errStepCompleted
		}
		if user.TotalPoints > math.MaxUint64-StepPoints {
			return ErrPointsOverflow
		}
		return nil

	case database.OpSetTotalSteps:
		if entry.Caller != s.owner {
			return ErrNotOwner
		}
		return nil
	}

	return fmt.Errorf("unknown operation %q", entry.Op)
}

// commit applies the entry to the state and returns the events it emits.
// The entry must have passed check. The caller must hold the write lock.
func (s *State) commit(entry database.Entry) []Event {
	evt := func(name string) Event {
		return Event{
			Number:  entry.Number,
			Name:    name,
			Address: entry.Caller,
		}
	}

	switch entry.Op {
	case database.OpGenesis:
		s.owner = entry.Caller
		return nil

	case database.OpRegisterUser:
		s.users[entry.Caller] = User{
			Username:    entry.Username,
			JoinDate:    entry.TimeStamp,
			TotalPoints: 0,
			IsActive:    true,
		}

		registered := evt(EventUserRegistered)
		registered.Username = entry.Username

		return []Event{registered}

	case database.OpCompleteLesson:
		s.lessons[itemKey{entry.Caller, entry.LessonID}] = struct{}{}
		s.award(entry.Caller, LessonPoints)

		completed := evt(EventLessonCompleted)
		completed.LessonID = entry.LessonID

		earned := evt(EventPointsEarned)
		earned.Points = LessonPoints

		return []Event{completed, earned}

	case database.OpCompleteStep:
		s.steps[stepKey{entry.Caller, entry.CourseID, entry.StepID}] = struct{}{}
		s.stepsAny[itemKey{entry.Caller, entry.StepID}] = struct{}{}
		s.courses[courseKey{entry.Caller, entry.CourseID}]++
		s.award(entry.Caller, StepPoints)

		completed := evt(EventStepCompleted)
		completed.StepID = entry.StepID
		completed.CourseID = entry.CourseID

		earned := evt(EventPointsEarned)
		earned.Points = StepPoints

		return []Event{completed, earned}

	case database.OpSetTotalSteps:
		s.totalSteps[entry.CourseID] = entry.TotalSteps
		return nil
	}

	return nil
}

// award adds points to a registered user.
func (s *State) award(address database.Address, points uint64) {
	user := s.users[address]
	user.TotalPoints += points
	s.users[address] = user
}
