// Package sqlite implements the ability to read and write journal entries
// to a SQLite database.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `create table if not exists entries(
	number  integer not null primary key,
	hash    text    not null,
	payload text    not null
)`

// row is how an entry is laid out in the entries table.
type row struct {
	Number  uint64 `db:"number"`
	Hash    string `db:"hash"`
	Payload string `db:"payload"`
}

// SQLite represents the serialization implementation for reading and storing
// entries in a SQLite database. This implements the database.Serializer
// interface.
type SQLite struct {
	db *sqlx.DB
}

// New opens the database at the path, creating the schema when missing.
// Use ":memory:" for a throw away database.
func New(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Connect("sqlite3", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating entries table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Write inserts the entry. An existing entry number is rejected.
func (s *SQLite) Write(entryData database.EntryData) error {
	payload, err := json.Marshal(entryData.Entry)
	if err != nil {
		return err
	}

	r := row{
		Number:  entryData.Entry.Number,
		Hash:    entryData.Hash,
		Payload: string(payload),
	}

	const q = `insert into entries (number, hash, payload) values (:number, :hash, :payload)`
	if _, err := s.db.NamedExec(q, r); err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}

	return nil
}

// GetEntry returns the entry for the specified number.
func (s *SQLite) GetEntry(num uint64) (database.EntryData, error) {
	var r row
	if err := s.db.Get(&r, `select number, hash, payload from entries where number = ?`, num); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.EntryData{}, fmt.Errorf("%w: %d", database.ErrNotFound, num)
		}
		return database.EntryData{}, fmt.Errorf("fetching entry: %w", err)
	}

	return toEntryData(r)
}

// ForEach returns an iterator to walk through all the entries
// starting with entry number 0.
func (s *SQLite) ForEach() database.Iterator {
	return &Iterator{sqlite: s}
}

// Reset will clear out the journal.
func (s *SQLite) Reset() error {
	if _, err := s.db.Exec(`delete from entries`); err != nil {
		return fmt.Errorf("deleting entries: %w", err)
	}

	return nil
}

func toEntryData(r row) (database.EntryData, error) {
	var entry database.Entry
	if err := json.Unmarshal([]byte(r.Payload), &entry); err != nil {
		return database.EntryData{}, fmt.Errorf("decoding entry %d: %w", r.Number, err)
	}

	return database.EntryData{Hash: r.Hash, Entry: entry}, nil
}

// =============================================================================

// Iterator walks the entries table in number order. This implements the
// database Iterator interface.
type Iterator struct {
	sqlite *SQLite
	next   uint64
	eoj    bool
}

// Next retrieves the next entry from the database.
func (si *Iterator) Next() (database.EntryData, error) {
	if si.eoj {
		return database.EntryData{}, errors.New("end of journal")
	}

	entryData, err := si.sqlite.GetEntry(si.next)
	if errors.Is(err, database.ErrNotFound) {
		si.eoj = true
	}
	si.next++

	return entryData, err
}

// Done returns the end of journal value.
func (si *Iterator) Done() bool {
	return si.eoj
}
