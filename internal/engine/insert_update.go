package engine

import "github.com/Pieczasz/easydb/internal/wire"

// Insert validates values against table tableID and, on success,
// allocates a fresh row id and stores the row at version 1.
func (db *Database) Insert(tableID int, values []wire.Value) (rowID int64, version int64, status wire.Status) {
	table, ok := db.table(tableID)
	if !ok {
		return 0, 0, wire.StatusBadTable
	}
	if status := db.checkValues(table, values); status != wire.StatusOK {
		return 0, 0, status
	}

	db.nextRowID++
	id := db.nextRowID
	db.rows[tableID][id] = &Row{Values: cloneValues(values), Version: 1}
	return id, 1, wire.StatusOK
}

// Update validates values against table tableID and, on success,
// replaces the row's values and bumps its version. expectedVersion of
// 0 bypasses the optimistic-concurrency check ("force-update"); the
// new version is always expectedVersion+1, so a force-update always
// lands on version 1 regardless of the row's prior version.
func (db *Database) Update(tableID int, rowID int64, expectedVersion int64, values []wire.Value) (version int64, status wire.Status) {
	table, ok := db.table(tableID)
	if !ok {
		return 0, wire.StatusBadTable
	}
	row, ok := db.rows[tableID][rowID]
	if !ok {
		return 0, wire.StatusNotFound
	}
	if status := db.checkValues(table, values); status != wire.StatusOK {
		return 0, status
	}
	if expectedVersion != 0 && expectedVersion != row.Version {
		return 0, wire.StatusTxnAbort
	}

	newVersion := expectedVersion + 1
	row.Values = cloneValues(values)
	row.Version = newVersion
	return newVersion, wire.StatusOK
}

// Get returns the current values and version of row rowID in table
// tableID.
func (db *Database) Get(tableID int, rowID int64) (version int64, values []wire.Value, status wire.Status) {
	if _, ok := db.table(tableID); !ok {
		return 0, nil, wire.StatusBadTable
	}
	row, ok := db.rows[tableID][rowID]
	if !ok {
		return 0, nil, wire.StatusNotFound
	}
	return row.Version, cloneValues(row.Values), wire.StatusOK
}
