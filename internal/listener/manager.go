package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/pixil98/go-console/internal/console"
)

// SessionManager opens one console session per accepted connection. Sessions
// are fully isolated from each other; only the world, engine and renderer are
// shared, through the factory.
type SessionManager struct {
	factory *console.Factory
}

func NewSessionManager(f *console.Factory) *SessionManager {
	return &SessionManager{factory: f}
}

func (m *SessionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	sess := m.factory.NewSession(conn)
	err := sess.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.WarnContext(ctx, "console session ended", "error", err)
	}
}
