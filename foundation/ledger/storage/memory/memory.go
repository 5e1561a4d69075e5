// Package memory implements the ability to read and write journal entries
// to memory using a slice.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
)

// Memory represents the serialization implementation for reading and storing
// entries in memory using a slice. This implements the database.Serializer
// interface.
type Memory struct {
	mu      sync.RWMutex
	entries []database.EntryData
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{}
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified entry and stores it in memory.
func (m *Memory) Write(entryData database.EntryData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uint64(len(m.entries)) != entryData.Entry.Number {
		return errors.New("entry is out of order")
	}

	m.entries = append(m.entries, entryData)

	return nil
}

// GetEntry searches the journal to locate and return the contents of
// the specified entry by number.
func (m *Memory) GetEntry(num uint64) (database.EntryData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num >= uint64(len(m.entries)) {
		return database.EntryData{}, fmt.Errorf("%w: %d", database.ErrNotFound, num)
	}

	return m.entries[num], nil
}

// ForEach returns an iterator to walk through all the entries
// starting with entry number 0.
func (m *Memory) ForEach() database.Iterator {
	return &Iterator{memory: m}
}

// Reset will clear out the journal.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	return nil
}

// =============================================================================

// Iterator represents the iteration implementation for walking
// through and reading entries in memory. This implements the database
// Iterator interface.
type Iterator struct {
	memory *Memory // Access to the memory storage API.
	next   uint64  // Next entry number to be read.
	eoj    bool    // Represents the iterator is at the end of the journal.
}

// Next retrieves the next entry from memory.
func (mi *Iterator) Next() (database.EntryData, error) {
	if mi.eoj {
		return database.EntryData{}, errors.New("end of journal")
	}

	entryData, err := mi.memory.GetEntry(mi.next)
	if errors.Is(err, database.ErrNotFound) {
		mi.eoj = true
	}
	mi.next++

	return entryData, err
}

// Done returns the end of journal value.
func (mi *Iterator) Done() bool {
	return mi.eoj
}
