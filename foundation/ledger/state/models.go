package state

import (
	"encoding/json"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
)

// Points awarded for completing an item.
const (
	LessonPoints uint64 = 100
	StepPoints   uint64 = 10
)

// Set of event names emitted by the ledger.
const (
	EventUserRegistered  = "UserRegistered"
	EventLessonCompleted = "LessonCompleted"
	EventStepCompleted   = "StepCompleted"
	EventPointsEarned    = "PointsEarned"
)

// User represents the progress record held for an address. The zero value
// is what unregistered addresses get back. Integers are encoded as decimal
// strings.
type User struct {
	Username    string `json:"username"`
	JoinDate    uint64 `json:"joinDate,string"`
	TotalPoints uint64 `json:"totalPoints,string"`
	IsActive    bool   `json:"isActive"`
}

// CourseProgress represents the progress an address has made on a course.
type CourseProgress struct {
	CompletedSteps       uint64 `json:"completedSteps,string"`
	TotalSteps           uint64 `json:"totalSteps,string"`
	CompletionPercentage uint64 `json:"completionPercentage,string"`
	IsCompleted          bool   `json:"isCompleted"`
}

// Event is emitted for each effect of a committed operation. Only the
// fields the named event carries are meaningful.
type Event struct {
	Number   uint64
	Name     string
	Address  database.Address
	Username string
	LessonID string
	StepID   string
	CourseID string
	Points   uint64
}

// MarshalJSON encodes the event with only the arguments of the named
// event. Identifiers are kept even when empty since the ledger accepts
// empty identifiers.
func (e Event) MarshalJSON() ([]byte, error) {
	type header struct {
		Number  uint64           `json:"number,string"`
		Name    string           `json:"event"`
		Address database.Address `json:"address"`
	}
	h := header{Number: e.Number, Name: e.Name, Address: e.Address}

	switch e.Name {
	case EventUserRegistered:
		return json.Marshal(struct {
			header
			Username string `json:"username"`
		}{h, e.Username})

	case EventLessonCompleted:
		return json.Marshal(struct {
			header
			LessonID string `json:"lessonId"`
		}{h, e.LessonID})

	case EventStepCompleted:
		return json.Marshal(struct {
			header
			StepID   string `json:"stepId"`
			CourseID string `json:"courseId"`
		}{h, e.StepID, e.CourseID})

	case EventPointsEarned:
		return json.Marshal(struct {
			header
			Points uint64 `json:"points,string"`
		}{h, e.Points})
	}

	return json.Marshal(h)
}

// Receipt describes a committed operation. Hash identifies the journal
// entry that recorded it, the same way a transaction hash would.
type Receipt struct {
	Number uint64  `json:"number,string"`
	Hash   string  `json:"transactionHash"`
	Events []Event `json:"events"`
}

// =============================================================================

// itemKey identifies an item completed by an address.
type itemKey struct {
	address database.Address
	id      string
}

// stepKey identifies a step completed by an address within a course.
type stepKey struct {
	address  database.Address
	courseID string
	stepID   string
}

// courseKey identifies the progress of an address on a course.
type courseKey struct {
	address  database.Address
	courseID string
}
