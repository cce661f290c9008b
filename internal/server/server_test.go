package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pieczasz/easydb/internal/schema"
	"github.com/Pieczasz/easydb/internal/wire"
)

func testTables(t *testing.T) []*schema.Table {
	t.Helper()
	tables, err := schema.Parse(`t { a: integer; }`)
	require.NoError(t, err)
	return tables
}

// startTestServer binds to an ephemeral loopback port, serves in the
// background until the returned cancel func is called, and returns the
// address to dial.
func startTestServer(t *testing.T, srv *Server) (addr string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.Serve(ctx, ln)
		close(done)
	}()

	return ln.Addr().String(), func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("server did not shut down in time")
		}
	}
}

func handshake(t *testing.T, conn net.Conn) wire.Response {
	t.Helper()
	resp, err := wire.ReadResponse(conn, wire.CmdExit)
	require.NoError(t, err)
	return resp
}

func TestHandshakeThenInsertAndGet(t *testing.T) {
	srv := New(testTables(t), 4, false)
	addr, stop := startTestServer(t, srv)
	defer stop()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	resp := handshake(t, conn)
	assert.Equal(t, wire.StatusOK, resp.Status)

	require.NoError(t, wire.WriteRequest(conn, wire.Request{
		Command: wire.CmdInsert,
		TableID: 1,
		Values:  []wire.Value{wire.Integer(42)},
	}))
	resp, err = wire.ReadResponse(conn, wire.CmdInsert)
	require.NoError(t, err)
	require.Equal(t, wire.StatusOK, resp.Status)
	assert.Equal(t, int64(1), resp.RowID)
	assert.Equal(t, int64(1), resp.Version)

	require.NoError(t, wire.WriteRequest(conn, wire.Request{
		Command: wire.CmdGet,
		TableID: 1,
		RowID:   resp.RowID,
	}))
	resp, err = wire.ReadResponse(conn, wire.CmdGet)
	require.NoError(t, err)
	require.Equal(t, wire.StatusOK, resp.Status)
	require.Len(t, resp.Values, 1)
	assert.True(t, wire.Integer(42).Equal(resp.Values[0]))
}

func TestExitEndsConnectionWithoutAResponse(t *testing.T) {
	srv := New(testTables(t), 4, false)
	addr, stop := startTestServer(t, srv)
	defer stop()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	handshake(t, conn)
	require.NoError(t, wire.WriteRequest(conn, wire.Request{Command: wire.CmdExit}))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 1)
	n, err := conn.Read(buf)
	assert.Equal(t, 0, n)
	assert.Error(t, err, "the connection must be closed, not answered, after EXIT")
}

func TestMalformedPacketGetsBadRequestThenCloses(t *testing.T) {
	srv := New(testTables(t), 4, false)
	addr, stop := startTestServer(t, srv)
	defer stop()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	handshake(t, conn)

	// Three bytes where a four-byte i32 is expected, then half-close the
	// write side so the server sees the stream end mid-field.
	_, err = conn.Write([]byte{0, 0, 1})
	require.NoError(t, err)
	require.NoError(t, conn.(*net.TCPConn).CloseWrite())

	resp, err := wire.ReadResponse(conn, wire.CmdExit)
	require.NoError(t, err)
	assert.Equal(t, wire.StatusBadRequest, resp.Status)
}

func TestServerBusyRejectsOverTheConnectionCeiling(t *testing.T) {
	srv := New(testTables(t), 1, false)
	addr, stop := startTestServer(t, srv)
	defer stop()

	first, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer first.Close()
	resp := handshake(t, first)
	require.Equal(t, wire.StatusOK, resp.Status)

	second, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer second.Close()
	resp = handshake(t, second)
	assert.Equal(t, wire.StatusServerBusy, resp.Status)
}

func TestQueryOverTheWire(t *testing.T) {
	srv := New(testTables(t), 4, false)
	addr, stop := startTestServer(t, srv)
	defer stop()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	handshake(t, conn)

	for i := 0; i < 3; i++ {
		require.NoError(t, wire.WriteRequest(conn, wire.Request{
			Command: wire.CmdInsert,
			TableID: 1,
			Values:  []wire.Value{wire.Integer(int64(i))},
		}))
		_, err := wire.ReadResponse(conn, wire.CmdInsert)
		require.NoError(t, err)
	}

	require.NoError(t, wire.WriteRequest(conn, wire.Request{
		Command:  wire.CmdScan,
		TableID:  1,
		ColumnID: 0,
		Operator: wire.OpAll,
		Operand:  wire.Null(),
	}))
	resp, err := wire.ReadResponse(conn, wire.CmdScan)
	require.NoError(t, err)
	require.Equal(t, wire.StatusOK, resp.Status)
	assert.Len(t, resp.IDs, 3)
}
