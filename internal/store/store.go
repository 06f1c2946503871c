// Package store reads and updates the JSON document store produced by the
// gatherer. The on-disk layout is a single object mapping table names to
// tables, where each table maps a stringified integer document ID to a flat
// record object. The default table holds one metadata record per gather run;
// "posts" and "comments" hold the documents themselves.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/vermi/gnlp-analyze/internal/errors"
)

// DefaultTable is the table holding gather-run metadata
const DefaultTable = "_default"

type record map[string]json.RawMessage

// Store is one open document store file. Record fields are kept as raw JSON
// so that rewriting the store never reorders keys inside values the analyzer
// wrote on an earlier run.
type Store struct {
	path   string
	tables map[string]map[string]record
}

// Document is a single record paired with its numeric ID
type Document struct {
	ID     int
	fields record
}

// Has reports whether the document carries the named field
func (d Document) Has(name string) bool {
	_, ok := d.fields[name]
	return ok
}

// String returns the named field when it holds a JSON string
func (d Document) String(name string) (string, bool) {
	raw, ok := d.fields[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Get unmarshals the named field into v
func (d Document) Get(name string, v any) error {
	raw, ok := d.fields[name]
	if !ok {
		return fmt.Errorf("no field %q in document %d", name, d.ID)
	}
	return json.Unmarshal(raw, v)
}

// Open reads an existing store file
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	var tables map[string]map[string]record
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, errors.NewSchemaError(path, "not a table/document layout")
	}
	if tables == nil {
		tables = make(map[string]map[string]record)
	}

	return &Store{path: path, tables: tables}, nil
}

// Create starts an empty store that will be written to path
func Create(path string) *Store {
	return &Store{
		path:   path,
		tables: make(map[string]map[string]record),
	}
}

// Path returns the on-disk location backing this store
func (s *Store) Path() string {
	return s.path
}

// ContainsField reports whether any record in the default table carries the
// named field. The analyzer uses this as its schema check before doing any
// remote work.
func (s *Store) ContainsField(name string) bool {
	for _, rec := range s.tables[DefaultTable] {
		if _, ok := rec[name]; ok {
			return true
		}
	}
	return false
}

// Table returns a handle for the named table, creating it when absent
func (s *Store) Table(name string) *Table {
	if _, ok := s.tables[name]; !ok {
		s.tables[name] = make(map[string]record)
	}
	return &Table{store: s, name: name}
}

// Flush serializes the whole store with 4-space indentation, buffering the
// complete document before a single write call
func (s *Store) Flush() error {
	data, err := json.MarshalIndent(s.tables, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return nil
}

// Table is a view over one named collection of records
type Table struct {
	store *Store
	name  string
}

// Name returns the table name
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of records in the table
func (t *Table) Len() int {
	return len(t.store.tables[t.name])
}

// All returns every record ordered by ascending document ID
func (t *Table) All() []Document {
	recs := t.store.tables[t.name]

	ids := make([]int, 0, len(recs))
	for key := range recs {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, Document{ID: id, fields: recs[strconv.Itoa(id)]})
	}
	return docs
}

// Insert adds a record with the next free document ID and returns that ID.
// The store is not flushed; call Flush when the batch is complete.
func (t *Table) Insert(values map[string]any) (int, error) {
	recs := t.store.tables[t.name]

	id := 1
	for key := range recs {
		if n, err := strconv.Atoi(key); err == nil && n >= id {
			id = n + 1
		}
	}

	rec := make(record, len(values))
	for name, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return 0, fmt.Errorf("failed to encode field %q: %w", name, err)
		}
		rec[name] = raw
	}

	recs[strconv.Itoa(id)] = rec
	return id, nil
}

// Update merges values into the record with the given ID and flushes the
// store, so each completed update survives a later interrupt
func (t *Table) Update(id int, values map[string]any) error {
	recs := t.store.tables[t.name]
	key := strconv.Itoa(id)

	rec, ok := recs[key]
	if !ok {
		return fmt.Errorf("no document %d in table %q", id, t.name)
	}

	for name, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode field %q: %w", name, err)
		}
		rec[name] = raw
	}

	return t.store.Flush()
}
