// Package store is the mock data-access layer: an in-memory mapping of
// table name to ordered rows, fronted by a chainable query client that
// simulates remote-database latency. It is the sole access path to data for
// the rest of the system.
package store

import (
	"sync"
	"time"
)

// Row is one loosely typed table record.
type Row = map[string]any

// TableStore owns every row. It is safe for concurrent use; each operation
// holds the store lock for its full read-modify-write.
type TableStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
}

// NewTableStore returns an empty store.
func NewTableStore() *TableStore {
	return &TableStore{tables: make(map[string][]Row)}
}

// NewTableStoreFrom deep-copies the given snapshot so instances built from
// the same seed never share state.
func NewTableStoreFrom(seed map[string][]Row) *TableStore {
	s := NewTableStore()
	for name, rows := range seed {
		copied := make([]Row, len(rows))
		for i, row := range rows {
			copied[i] = cloneRow(row)
		}
		s.tables[name] = copied
	}
	return s
}

// NewSeededTableStore returns a store initialized from the demo dataset.
func NewSeededTableStore() *TableStore {
	return NewTableStoreFrom(Seed())
}

// TableNames lists the tables currently present, for diagnostics.
func (s *TableStore) TableNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	return names
}

// Len reports the number of rows in a table. Missing tables are empty.
func (s *TableStore) Len(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}

func (s *TableStore) selectRows(table string, filters []filter, order *ordering) []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Row
	for _, row := range s.tables[table] {
		if matchesAll(row, filters) {
			matched = append(matched, cloneRow(row))
		}
	}
	if order != nil {
		sortRows(matched, order)
	}
	return matched
}

func (s *TableStore) insertRows(table string, rows []Row, now time.Time) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := make([]Row, 0, len(rows))
	for _, row := range rows {
		stored := cloneRow(row)
		if _, ok := stored["id"]; !ok {
			stored["id"] = newRowID()
		}
		if _, ok := stored["created_at"]; !ok {
			stored["created_at"] = now
		}
		// Tables are created implicitly on first insert.
		s.tables[table] = append(s.tables[table], stored)
		inserted = append(inserted, cloneRow(stored))
	}
	return inserted
}

func (s *TableStore) updateRows(table string, patch Row, filters []filter, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for _, row := range s.tables[table] {
		if !matchesAll(row, filters) {
			continue
		}
		for key, value := range patch {
			row[key] = cloneValue(value)
		}
		row["updated_at"] = now
		updated++
	}
	return updated
}

func (s *TableStore) deleteRows(table string, filters []filter) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	kept := rows[:0]
	deleted := 0
	for _, row := range rows {
		if matchesAll(row, filters) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	if deleted > 0 {
		s.tables[table] = kept
	}
	return deleted
}

func matchesAll(row Row, filters []filter) bool {
	for _, f := range filters {
		if !equalValues(row[f.column], f.value) {
			return false
		}
	}
	return true
}

func cloneRow(row Row) Row {
	out := make(Row, len(row))
	for key, value := range row {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return v
	}
}
