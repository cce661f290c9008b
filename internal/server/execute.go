package server

import (
	"github.com/Pieczasz/easydb/internal/engine"
	"github.com/Pieczasz/easydb/internal/wire"
)

// execute dispatches one decoded request against db and produces the
// response packet to send back. Callers must hold db's lock for the
// duration of this call and release it before writing the response.
func execute(db *engine.Database, req wire.Request) wire.Response {
	switch req.Command {
	case wire.CmdInsert:
		rowID, version, status := db.Insert(int(req.TableID), req.Values)
		if status != wire.StatusOK {
			return wire.Err(status)
		}
		return wire.Response{Status: status, RowID: rowID, Version: version}

	case wire.CmdUpdate:
		version, status := db.Update(int(req.TableID), req.RowID, req.Version, req.Values)
		if status != wire.StatusOK {
			return wire.Err(status)
		}
		return wire.Response{Status: status, Version: version}

	case wire.CmdDrop:
		status := db.Drop(int(req.TableID), req.RowID)
		return wire.Response{Status: status}

	case wire.CmdGet:
		version, values, status := db.Get(int(req.TableID), req.RowID)
		if status != wire.StatusOK {
			return wire.Err(status)
		}
		return wire.Response{Status: status, Version: version, Values: values}

	case wire.CmdScan:
		ids, status := db.Query(int(req.TableID), int(req.ColumnID), req.Operator, req.Operand)
		if status != wire.StatusOK {
			return wire.Err(status)
		}
		return wire.Response{Status: status, IDs: ids}

	default:
		return wire.Err(wire.StatusBadRequest)
	}
}
