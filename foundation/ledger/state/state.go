// Package state is the core API for the progress ledger and implements all
// the business rules for registration, completions, points and course
// progress.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/storage/memory"
)

// EventHandler defines a function that is called when events
// occur in the processing of ledger operations.
type EventHandler func(v string, args ...any)

// Subscriber defines a function that receives every event emitted by a
// committed operation, in commit order. It's called while the ledger is
// locked and must not call back into the ledger.
type Subscriber func(evt Event)

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Owner      database.Address
	Serializer database.Serializer
	Now        func() time.Time
	EvHandler  EventHandler
	Subscriber Subscriber
}

// State manages the progress ledger. Every mutating operation runs under
// the write lock from precondition check to event emission, so operations
// are totally ordered and never partially visible.
type State struct {
	mu sync.RWMutex

	owner      database.Address
	now        func() time.Time
	evHandler  EventHandler
	subscriber Subscriber

	users      map[database.Address]User
	lessons    map[itemKey]struct{}
	steps      map[stepKey]struct{}
	stepsAny   map[itemKey]struct{}
	courses    map[courseKey]uint64
	totalSteps map[string]uint64

	journal *database.Journal
}

// New constructs a ledger, replaying any entries already held by the
// serializer. A new journal is started with a genesis entry naming the
// configured owner. An existing journal pins the owner it was created with.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	sub := func(evt Event) {
		if cfg.Subscriber != nil {
			cfg.Subscriber(evt)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	serializer := cfg.Serializer
	if serializer == nil {
		serializer = memory.New()
	}

	s := State{
		now:        now,
		evHandler:  ev,
		subscriber: sub,
	}
	s.reset()

	// Rebuild the ledger from the entries in storage. Replayed entries go
	// through the same checks a live operation does.
	replayed := 0
	apply := func(entry database.Entry) error {
		if err := s.check(entry); err != nil {
			return err
		}
		s.commit(entry)
		replayed++
		return nil
	}

	journal, err := database.New(serializer, apply)
	if err != nil {
		return nil, fmt.Errorf("replaying journal: %w", err)
	}
	s.journal = journal

	switch {
	case journal.IsEmpty():
		owner := cfg.Owner.Canonical()
		if !owner.IsAddress() {
			return nil, fmt.Errorf("owner %q: %w", cfg.Owner, ErrInvalidCaller)
		}

		s.owner = owner
		if err := s.writeGenesis(); err != nil {
			return nil, err
		}
		ev("state: New: genesis: owner[%s]", owner)

	default:
		if cfg.Owner != "" && cfg.Owner.Canonical() != s.owner {
			return nil, fmt.Errorf("configured owner %s does not match journal owner %s", cfg.Owner, s.owner)
		}
		ev("state: New: replayed[%d] owner[%s] latest[%d]", replayed, s.owner, journal.Latest().Entry.Number)
	}

	return &s, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.journal.Close()
}

// Truncate resets the ledger both in storage and in memory, writing a new
// genesis entry for the same owner.
func (s *State) Truncate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.Reset(); err != nil {
		return err
	}
	s.reset()

	// If this write fails the owner is still known and the next operation
	// writes genesis before its own entry.
	return s.writeGenesis()
}

// writeGenesis starts the empty journal with the entry naming the owner.
// The caller must hold the write lock.
func (s *State) writeGenesis() error {
	genesis := database.NewEntry(s.owner, database.OpGenesis, s.now())
	if _, err := s.journal.Append(genesis); err != nil {
		return fmt.Errorf("writing genesis: %w", err)
	}

	return nil
}

// reset initializes the in memory containers.
func (s *State) reset() {
	s.users = make(map[database.Address]User)
	s.lessons = make(map[itemKey]struct{})
	s.steps = make(map[stepKey]struct{})
	s.stepsAny = make(map[itemKey]struct{})
	s.courses = make(map[courseKey]uint64)
	s.totalSteps = make(map[string]uint64)
}
