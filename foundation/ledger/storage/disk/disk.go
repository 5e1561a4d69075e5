// Package disk implements the ability to read and write journal entries to
// disk, one file per entry.
package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
)

// Disk represents the serialization implementation for reading and storing
// entries in their own separate files on disk. This implements the
// database.Serializer interface.
type Disk struct {
	dbPath string
}

// New constructs a Disk value for use.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since a new file is
// written to disk for each new entry and then immediately closed.
func (d *Disk) Close() error {
	return nil
}

// Write takes the specified entry and stores it on disk in a file labeled
// with the entry number. An existing entry is never overwritten.
func (d *Disk) Write(entryData database.EntryData) error {

	// Marshal the entry for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(entryData, "", "  ")
	if err != nil {
		return err
	}

	// Create a new file for this entry and name it based on the entry number.
	f, err := os.OpenFile(d.getPath(entryData.Entry.Number), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write the new entry to disk.
	if _, err := f.Write(data); err != nil {
		return err
	}

	return f.Sync()
}

// GetEntry searches the journal on disk to locate and return the
// contents of the specified entry by number.
func (d *Disk) GetEntry(num uint64) (database.EntryData, error) {

	// Open the entry file for the specified number.
	f, err := os.OpenFile(d.getPath(num), os.O_RDONLY, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return database.EntryData{}, fmt.Errorf("%w: %d: %w", database.ErrNotFound, num, err)
		}
		return database.EntryData{}, err
	}
	defer f.Close()

	// Decode the contents of the entry.
	var entryData database.EntryData
	if err := json.NewDecoder(f).Decode(&entryData); err != nil {
		return database.EntryData{}, err
	}

	return entryData, nil
}

// ForEach returns an iterator to walk through all the entries
// starting with entry number 0.
func (d *Disk) ForEach() database.Iterator {
	return &Iterator{disk: d}
}

// Reset will clear out the journal on disk.
func (d *Disk) Reset() error {
	if err := os.RemoveAll(d.dbPath); err != nil {
		return err
	}

	return os.MkdirAll(d.dbPath, 0755)
}

// getPath forms the path to the specified entry.
func (d *Disk) getPath(entryNum uint64) string {
	name := strconv.FormatUint(entryNum, 10)
	return path.Join(d.dbPath, fmt.Sprintf("%s.json", name))
}

// =============================================================================

// Iterator represents the iteration implementation for walking
// through and reading entries on disk. This implements the database
// Iterator interface.
type Iterator struct {
	disk *Disk  // Access to the disk storage API.
	next uint64 // Next entry number to be read.
	eoj  bool   // Represents the iterator is at the end of the journal.
}

// Next retrieves the next entry from disk.
func (di *Iterator) Next() (database.EntryData, error) {
	if di.eoj {
		return database.EntryData{}, errors.New("end of journal")
	}

	entryData, err := di.disk.GetEntry(di.next)
	if errors.Is(err, fs.ErrNotExist) {
		di.eoj = true
	}
	di.next++

	return entryData, err
}

// Done returns the end of journal value.
func (di *Iterator) Done() bool {
	return di.eoj
}
