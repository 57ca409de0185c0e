package transport

import (
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/indigo-web/tinyhttp/config"
)

// TCP accepts connections on a single listener and hands each of them to the handler
// in its own goroutine. A connection is closed once its handler returns.
type TCP struct {
	cfg      config.NET
	listener *net.TCPListener
	handler  func(conn net.Conn)
	conns    sync.WaitGroup
	stopped  atomic.Bool
}

// Listen binds cfg.Addr. No connection is accepted until Serve is called.
func Listen(cfg config.NET, handler func(conn net.Conn)) (*TCP, error) {
	addr, err := net.ResolveTCPAddr("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}

	listener, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &TCP{
		cfg:      cfg,
		listener: listener,
		handler:  handler,
	}, nil
}

// Addr returns the bound address, which is useful when binding port 0.
func (t *TCP) Addr() net.Addr {
	return t.listener.Addr()
}

// Serve runs the accept loop until Stop is called or accepting fails. Before returning,
// the listener is closed and the handlers still running are waited for.
func (t *TCP) Serve() error {
	defer func() {
		_ = t.listener.Close()
		t.conns.Wait()
	}()

	for !t.stopped.Load() {
		// the deadline makes Accept return from time to time, so Stop is noticed
		err := t.listener.SetDeadline(time.Now().Add(t.cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.listener.Accept()
		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded):
			continue
		default:
			return err
		}

		t.conns.Add(1)
		go t.serveConn(conn)
	}

	return nil
}

func (t *TCP) serveConn(conn net.Conn) {
	defer t.conns.Done()

	t.handler(conn)
	_ = conn.Close()
}

// Stop makes Serve return within AcceptLoopInterruptPeriod. It doesn't block, so it's
// safe to call at any moment, including before Serve or after it returned.
func (t *TCP) Stop() {
	t.stopped.Store(true)
}
