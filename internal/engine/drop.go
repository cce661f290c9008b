package engine

import "github.com/Pieczasz/easydb/internal/wire"

type rowKey struct {
	table int
	row   int64
}

// Drop removes row rowID from table tableID, cascading: every row in
// every table with a Foreign column pointing at tableID whose value
// equals rowID is dropped too, transitively.
func (db *Database) Drop(tableID int, rowID int64) wire.Status {
	if _, ok := db.table(tableID); !ok {
		return wire.StatusBadTable
	}

	visited := make(map[rowKey]bool)
	removed := db.cascadeRemove(visited, tableID, rowID)
	if !removed {
		return wire.StatusNotFound
	}
	return wire.StatusOK
}

// cascadeRemove removes one row and follows its incoming foreign-key
// edges to remove every row that referenced it, depth-first. visited
// guards against revisiting the same (table, row) pair so that a cycle
// in the reference graph (not expected by schema contract) terminates
// instead of looping, and so that an orphaned row reached by two
// different paths is a no-op the second time.
func (db *Database) cascadeRemove(visited map[rowKey]bool, tableID int, rowID int64) bool {
	key := rowKey{table: tableID, row: rowID}
	if visited[key] {
		return false
	}
	visited[key] = true

	if _, ok := db.rows[tableID][rowID]; !ok {
		return false
	}
	delete(db.rows[tableID], rowID)

	for _, edge := range db.reverseRefs[tableID] {
		childRows := db.rows[edge.Table]
		var toRemove []int64
		for childID, row := range childRows {
			v := row.Values[edge.Column-1]
			if !v.IsNull() && v.Tag == wire.TagForeign && v.Foreign == rowID {
				toRemove = append(toRemove, childID)
			}
		}
		for _, childID := range toRemove {
			db.cascadeRemove(visited, edge.Table, childID)
		}
	}
	return true
}
