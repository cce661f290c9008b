package engine

import (
	"sync"

	"github.com/Pieczasz/easydb/internal/schema"
)

// refEdge names one foreign-key edge pointing at a table: table Table
// has a Foreign column Column referring back to us.
type refEdge struct {
	Table  int
	Column int
}

// Database holds the immutable schema, per-table row storage, and the
// single monotonic counter used to allocate fresh row ids. The caller
// is responsible for serialising access to a Database; Database itself
// does no locking.
type Database struct {
	tables map[int]*schema.Table

	// rows maps table id to (row id -> Row).
	rows map[int]map[int64]*Row

	// reverseRefs[t] lists every (table, column) pair whose Foreign
	// column refers to table t, computed once at construction rather
	// than rescanned on every drop.
	reverseRefs map[int][]refEdge

	nextRowID int64
}

// New constructs an empty Database from a parsed schema's table list.
// Tables are created empty.
func New(tables []*schema.Table) *Database {
	db := &Database{
		tables:      make(map[int]*schema.Table, len(tables)),
		rows:        make(map[int]map[int64]*Row, len(tables)),
		reverseRefs: make(map[int][]refEdge),
	}
	for _, t := range tables {
		db.tables[t.ID] = t
		db.rows[t.ID] = make(map[int64]*Row)
		for _, col := range t.Columns {
			if col.Type == schema.TypeForeign {
				db.reverseRefs[col.RefTable] = append(db.reverseRefs[col.RefTable], refEdge{Table: t.ID, Column: col.ID})
			}
		}
	}
	return db
}

func (db *Database) table(id int) (*schema.Table, bool) {
	t, ok := db.tables[id]
	return t, ok
}

// Mutex is a convenience embed for servers that want a single
// lock-guarded handle to a Database, matching the "engine assumes the
// caller guarantees mutual exclusion" contract.
type Mutex struct {
	mu sync.Mutex
	DB *Database
}

// NewMutex wraps db in a Mutex.
func NewMutex(db *Database) *Mutex {
	return &Mutex{DB: db}
}

// Lock acquires exclusive access to the wrapped Database.
func (m *Mutex) Lock() { m.mu.Lock() }

// Unlock releases exclusive access.
func (m *Mutex) Unlock() { m.mu.Unlock() }
