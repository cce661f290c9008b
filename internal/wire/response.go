package wire

import (
	"fmt"
	"io"
)

// Response is one decoded server response: status:i32 body… On any
// Status other than StatusOK the body is empty. On
// StatusOK, which fields are populated depends on which Command the
// response answers — the wire format itself carries no command tag,
// so decoding a response requires the caller to supply the Command it
// issued (exactly as a real client, which always knows what it just
// asked for, would).
type Response struct {
	Status Status

	// Insert (RowID, Version); Update and Get (Version)
	RowID   int64
	Version int64

	// Get
	Values []Value

	// Query
	IDs []int64
}

// OK constructs an error-free response shell; callers fill in the
// fields the command's success body needs.
func OK() Response { return Response{Status: StatusOK} }

// Err constructs a status-only error response. status must not be
// StatusOK.
func Err(status Status) Response { return Response{Status: status} }

// Encode serialises resp for the given command. The OK body written
// depends on cmd. The initial "Connected" handshake carries no command
// of its own; callers writing it pass CmdExit, whose OK body is empty.
func (resp Response) Encode(cmd Command) []byte {
	w := newWriter()
	w.i32(int32(resp.Status))
	if resp.Status != StatusOK {
		return w.bytes()
	}
	switch cmd {
	case CmdInsert:
		w.i64(resp.RowID)
		w.i64(resp.Version)
	case CmdUpdate:
		w.i64(resp.Version)
	case CmdDrop:
		// empty
	case CmdGet:
		w.i64(resp.Version)
		w.i32(int32(len(resp.Values)))
		for _, v := range resp.Values {
			encodeValue(w, v)
		}
	case CmdScan:
		w.i32(int32(len(resp.IDs)))
		for _, id := range resp.IDs {
			w.i64(id)
		}
	case CmdExit:
		// handshake "Connected" response: empty body
	}
	return w.bytes()
}

// ReadResponse decodes one Response from rd for the given command
// (clients must track which command they issued to know how to decode
// the reply — see Response's doc comment).
func ReadResponse(rd io.Reader, cmd Command) (Response, error) {
	r := newReader(rd)
	var resp Response
	resp.Status = Status(r.i32())
	if r.err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrDecode, r.err)
	}
	if resp.Status != StatusOK {
		return resp, nil
	}

	switch cmd {
	case CmdInsert:
		resp.RowID = r.i64()
		resp.Version = r.i64()
	case CmdUpdate:
		resp.Version = r.i64()
	case CmdDrop:
		// empty
	case CmdGet:
		resp.Version = r.i64()
		n := r.i32()
		resp.Values = readValues(r, n)
	case CmdScan:
		n := r.i32()
		if n < 0 {
			r.fail(ErrDecode)
		} else {
			resp.IDs = make([]int64, 0, n)
			for i := int32(0); i < n && r.err == nil; i++ {
				resp.IDs = append(resp.IDs, r.i64())
			}
		}
	case CmdExit:
		// empty
	}

	if r.err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrDecode, r.err)
	}
	return resp, nil
}

// WriteResponse encodes resp for cmd and writes it to w in a single
// call, matching the server's "release the lock, then write" discipline:
// no partial writes are observable to the caller.
func WriteResponse(w io.Writer, cmd Command, resp Response) error {
	_, err := w.Write(resp.Encode(cmd))
	return err
}

// WriteRequest encodes req and writes it to w in a single call.
func WriteRequest(w io.Writer, req Request) error {
	_, err := w.Write(req.Encode())
	return err
}
