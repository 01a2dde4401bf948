package db

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/eduroese/To-Do-App/internal/store"
)

var ErrClosed = errors.New("store handle is closed")

// Handle is the process-wide store connection. It connects lazily on first
// use, reuses the connection afterwards and dials again when the current
// connection stops answering pings.
//
// The mutex only guards the fields below; pings and dials run without it.
type Handle struct {
	dial   Dialer
	logger *log.Logger

	mu      sync.Mutex
	current store.Store
	dialing *dialCall
	closed  bool
}

// dialCall is a dial in flight. Callers that need a connection while one is
// being opened wait for it instead of dialing again.
type dialCall struct {
	done chan struct{}
	s    store.Store
	err  error
}

func Open(dial Dialer, logger *log.Logger) *Handle {
	return &Handle{dial: dial, logger: logger}
}

// Store returns a live connection, connecting or reconnecting as needed.
// A ping that fails because ctx is done leaves the connection in place.
func (h *Handle) Store(ctx context.Context) (store.Store, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrClosed
	}
	current := h.current
	h.mu.Unlock()

	if current != nil {
		err := current.Ping(ctx)
		if err == nil {
			return current, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		h.logger.Warn("store connection lost, reconnecting", "err", err)
	}

	return h.reconnect(ctx, current)
}

// reconnect replaces stale (nil when nothing was connected) with a fresh
// connection, joining a dial already in flight if there is one.
func (h *Handle) reconnect(ctx context.Context, stale store.Store) (store.Store, error) {
	h.mu.Lock()

	if h.closed {
		h.mu.Unlock()
		return nil, ErrClosed
	}

	// Another caller already replaced the connection.
	if h.current != nil && h.current != stale {
		s := h.current
		h.mu.Unlock()
		return s, nil
	}

	var dead store.Store
	if stale != nil && h.current == stale {
		dead = stale
		h.current = nil
	}

	call := h.dialing
	if call == nil {
		call = &dialCall{done: make(chan struct{})}
		h.dialing = call
		// The dial is shared, so one caller going away must not cancel it.
		go h.runDial(context.WithoutCancel(ctx), call)
	}
	h.mu.Unlock()

	if dead != nil {
		_ = dead.Close(context.Background())
	}

	select {
	case <-call.done:
		return call.s, call.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Handle) runDial(ctx context.Context, call *dialCall) {
	s, err := h.dial(ctx)

	h.mu.Lock()
	h.dialing = nil
	if err == nil && h.closed {
		_ = s.Close(context.Background())
		s, err = nil, ErrClosed
	}
	if err == nil {
		h.current = s
	}
	h.mu.Unlock()

	if err != nil {
		h.logger.Error("failed to connect to store", "err", err)
	} else {
		h.logger.Info("connected to store")
	}

	call.s, call.err = s, err
	close(call.done)
}

// Close disconnects the current connection. Later calls to Store fail with ErrClosed.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	current := h.current
	h.current = nil
	h.mu.Unlock()

	if current == nil {
		return nil
	}

	return current.Close(ctx)
}
