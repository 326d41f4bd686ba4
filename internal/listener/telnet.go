package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	"github.com/pixil98/go-log"
	"github.com/sirupsen/logrus"
)

// TelnetListener serves console sessions over telnet.
type TelnetListener struct {
	port uint16
	sm   *SessionManager
}

func NewTelnetListener(port uint16, sm *SessionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		sm:   sm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	// Sessions share a context that outlives any single accept but dies
	// with the listener.
	sessCtx, cancelSessions := context.WithCancel(context.Background())

	handler := &telnetHandler{
		accept:         l.sm.AcceptConnection,
		logger:         log.GetLogger(ctx),
		sessCtx:        sessCtx,
		cancelSessions: cancelSessions,
	}

	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), handler)

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			handler.Stop()
		case <-done:
			// Start returned on its own - nothing to stop.
		}
	}()

	err := svr.ListenAndServe()
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another console running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}

	return nil
}

type telnetHandler struct {
	wg             sync.WaitGroup
	accept         func(context.Context, io.ReadWriter)
	logger         logrus.FieldLogger
	sessCtx        context.Context
	cancelSessions context.CancelFunc
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()
	defer func() {
		if err := conn.Close(); err != nil {
			h.logger.Errorf("closing telnet connection: %s", err)
		}
	}()

	ctx := log.SetLogger(h.sessCtx, h.logger)
	h.accept(ctx, newCRLFReadWriter(conn))
}

func (h *telnetHandler) Stop() {
	h.cancelSessions()
	h.wg.Wait()
}
