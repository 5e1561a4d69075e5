// Package database handles all the lower level support for maintaining the
// ledger journal. Every committed ledger operation is recorded as an entry
// chained by hash to the one before it.
package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/learnchain/foundation/ledger/signature"
)

// ErrNotFound is returned when an entry doesn't exist in storage.
var ErrNotFound = errors.New("entry not found")

// Serializer interface represents the behavior required to be implemented by any
// package providing support for storing and reading the journal.
type Serializer interface {
	Write(entryData EntryData) error
	GetEntry(num uint64) (EntryData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the entries.
type Iterator interface {
	Next() (EntryData, error)
	Done() bool
}

// =============================================================================

// Journal manages the chain of entries held by a serializer.
type Journal struct {
	mu         sync.RWMutex
	latest     EntryData
	empty      bool
	serializer Serializer
}

// New constructs a journal over the serializer. Every stored entry is read
// and its chain validated. The function is called for each entry in order
// so the caller can rebuild its own state.
func New(serializer Serializer, apply func(entry Entry) error) (*Journal, error) {
	jnl := Journal{
		serializer: serializer,
		empty:      true,
	}

	iter := serializer.ForEach()
	for entryData, err := iter.Next(); !iter.Done(); entryData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if jnl.empty && entryData.Entry.Op != OpGenesis {
			return nil, fmt.Errorf("entry %d: journal must start with a genesis entry", entryData.Entry.Number)
		}

		if !jnl.empty && entryData.Entry.Op == OpGenesis {
			return nil, fmt.Errorf("entry %d: genesis entry found mid journal", entryData.Entry.Number)
		}

		if err := entryData.ValidateEntry(jnl.latest); err != nil {
			return nil, err
		}

		if apply != nil {
			if err := apply(entryData.Entry); err != nil {
				return nil, fmt.Errorf("entry %d: %w", entryData.Entry.Number, err)
			}
		}

		jnl.latest = entryData
		jnl.empty = false
	}

	return &jnl, nil
}

// Close closes the underlying storage.
func (jnl *Journal) Close() error {
	return jnl.serializer.Close()
}

// Reset clears the journal back to an empty state.
func (jnl *Journal) Reset() error {
	jnl.mu.Lock()
	defer jnl.mu.Unlock()

	if err := jnl.serializer.Reset(); err != nil {
		return err
	}

	jnl.latest = EntryData{}
	jnl.empty = true

	return nil
}

// IsEmpty reports whether no entry has been written, not even genesis.
func (jnl *Journal) IsEmpty() bool {
	jnl.mu.RLock()
	defer jnl.mu.RUnlock()

	return jnl.empty
}

// Latest returns the most recent entry written to the journal.
func (jnl *Journal) Latest() EntryData {
	jnl.mu.RLock()
	defer jnl.mu.RUnlock()

	return jnl.latest
}

// Append links the entry to the latest entry and writes it to storage. The
// journal is left unchanged if the write fails.
func (jnl *Journal) Append(entry Entry) (EntryData, error) {
	jnl.mu.Lock()
	defer jnl.mu.Unlock()

	switch {
	case jnl.empty:
		if entry.Op != OpGenesis {
			return EntryData{}, errors.New("first entry must be the genesis entry")
		}
		entry.Number = 0
		entry.PrevHash = signature.ZeroHash

	default:
		if entry.Op == OpGenesis {
			return EntryData{}, errors.New("genesis entry already written")
		}
		entry.Number = jnl.latest.Entry.Number + 1
		entry.PrevHash = jnl.latest.Hash
	}

	entryData := NewEntryData(entry)
	if err := jnl.serializer.Write(entryData); err != nil {
		return EntryData{}, fmt.Errorf("writing entry %d: %w", entry.Number, err)
	}

	jnl.latest = entryData
	jnl.empty = false

	return entryData, nil
}

// ForEach returns an iterator to walk through all the entries starting
// with the genesis entry.
func (jnl *Journal) ForEach() Iterator {
	return jnl.serializer.ForEach()
}

// GetEntry returns the entry for the specified number.
func (jnl *Journal) GetEntry(num uint64) (EntryData, error) {
	return jnl.serializer.GetEntry(num)
}
