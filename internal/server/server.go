// Package server exposes the table and the oracle over plain TCP.
//
// Blackjack connections are sessions: each newline-terminated line is one
// command and gets the rendered status or "ERR <message>" back. Oracle
// connections get one answer and are closed.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"blackjack/internal/device"
	"blackjack/internal/session"

	"github.com/heroiclabs/nakama-common/runtime"
)

const maxLineBytes = 4096

// Server serves one table and one oracle.
type Server struct {
	device *device.Device
	oracle *device.Oracle
	logger runtime.Logger

	wg sync.WaitGroup
}

// New returns a server over dev and oracle.
func New(dev *device.Device, oracle *device.Oracle, logger runtime.Logger) *Server {
	return &Server{device: dev, oracle: oracle, logger: logger}
}

// ServeTable accepts blackjack sessions on ln until ctx is done.
func (s *Server) ServeTable(ctx context.Context, ln net.Listener) error {
	return s.serve(ctx, ln, s.handleTable)
}

// ServeOracle accepts oracle connections on ln until ctx is done.
func (s *Server) ServeOracle(ctx context.Context, ln net.Listener) error {
	return s.serve(ctx, ln, s.handleOracle)
}

// Wait blocks until every accepted connection has been handled.
func (s *Server) Wait() {
	s.wg.Wait()
}

func (s *Server) serve(ctx context.Context, ln net.Listener, handle func(context.Context, net.Conn)) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	s.logger.Info("listening on %s", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conn.Close()
			closeOnDone := context.AfterFunc(ctx, func() { _ = conn.Close() })
			defer closeOnDone()
			handle(ctx, conn)
		}()
	}
}

func (s *Server) handleTable(ctx context.Context, conn net.Conn) {
	owner := conn.RemoteAddr().String()
	logger := s.logger.WithField("remote", owner)

	h, err := s.device.Open(owner)
	if err != nil {
		if errors.Is(err, session.ErrSessionBusy) {
			_, _ = io.WriteString(conn, "ERR session busy\n")
			return
		}
		logger.Error("open: %v", err)
		return
	}
	defer h.Close()

	if err := s.flush(conn, h); err != nil {
		logger.Debug("write: %v", err)
		return
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 512), maxLineBytes)
	for scanner.Scan() {
		if err := h.WriteCommand(ctx, scanner.Text()+"\n"); err != nil {
			if _, werr := fmt.Fprintf(conn, "ERR %v\n", err); werr != nil {
				return
			}
			// Rejected transitions still re-arm the status; drop it so the reply stays one line.
			_, _, _ = h.Next()
			continue
		}
		if err := s.flush(conn, h); err != nil {
			logger.Debug("write: %v", err)
			return
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		logger.Warn("read: %v", err)
	}
}

// flush writes the armed status snapshot, if any.
func (s *Server) flush(w io.Writer, h *device.Handle) error {
	status, ok, err := h.Next()
	if err != nil || !ok {
		return err
	}
	_, err = io.WriteString(w, status)
	return err
}

func (s *Server) handleOracle(ctx context.Context, conn net.Conn) {
	h := s.oracle.Open()
	defer h.Close()

	answer, err := io.ReadAll(h)
	if err != nil {
		s.logger.Error("oracle read: %v", err)
		return
	}
	if _, err := fmt.Fprintf(conn, "%s\n", answer); err != nil {
		s.logger.Debug("oracle write: %v", err)
	}
}
