// Package server implements the EasyDB TCP front end: bounded client
// admission, the per-connection request/response loop, and engine
// serialisation under a single database lock.
package server

import (
	"context"
	"fmt"
	"log"
	"net"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Pieczasz/easydb/internal/engine"
	"github.com/Pieczasz/easydb/internal/schema"
	"github.com/Pieczasz/easydb/internal/wire"
)

// Server accepts EasyDB client connections and serialises every
// request against a single in-memory Database.
type Server struct {
	db      *engine.Mutex
	sem     *semaphore.Weighted
	verbose bool
}

// New builds a Server around a fresh Database constructed from tables,
// admitting at most maxConnections concurrent clients.
func New(tables []*schema.Table, maxConnections int, verbose bool) *Server {
	return &Server{
		db:      engine.NewMutex(engine.New(tables)),
		sem:     semaphore.NewWeighted(int64(maxConnections)),
		verbose: verbose,
	}
}

// Run listens on host:port and serves connections until ctx is
// cancelled, at which point it closes the listener and returns once
// the accept loop has unwound. It does not wait for requests already
// in flight to finish.
func (s *Server) Run(ctx context.Context, host string, port int) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the accept loop over an already-bound listener, closing
// it when ctx is cancelled. Split out from Run so tests can supply a
// listener bound to an ephemeral port.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-gctx.Done()
		return ln.Close()
	})
	group.Go(func() error {
		return s.acceptLoop(gctx, ln)
	})
	return group.Wait()
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("server: accept: %w", err)
		}
		go s.handleConn(conn)
	}
}

// handleConn runs the handshake and per-connection request loop for
// one accepted client (spec §4.4): reject over the connection ceiling
// with SERVER_BUSY, otherwise acknowledge with an empty OK body and
// process requests strictly in arrival order until EXIT, disconnect,
// or a malformed packet.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	if !s.sem.TryAcquire(1) {
		_ = wire.WriteResponse(conn, wire.CmdExit, wire.Err(wire.StatusServerBusy))
		return
	}
	defer s.sem.Release(1)

	if err := wire.WriteResponse(conn, wire.CmdExit, wire.OK()); err != nil {
		return
	}

	for {
		req, err := wire.ReadRequest(conn)
		if err != nil {
			_ = wire.WriteResponse(conn, wire.CmdExit, wire.Err(wire.StatusBadRequest))
			return
		}
		if req.Command == wire.CmdExit {
			return
		}

		s.db.Lock()
		resp := execute(s.db.DB, req)
		s.db.Unlock()

		if s.verbose {
			log.Printf("easydb: %s table=%d status=%s", req.Command, req.TableID, resp.Status)
		}

		if err := wire.WriteResponse(conn, req.Command, resp); err != nil {
			return
		}
	}
}
