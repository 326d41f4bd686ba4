package engine

import "context"

// Intent is a structured request to the simulation engine, derived from a
// free-text game command. ID carries the originating input's trace.
type Intent struct {
	ID       string
	Actor    string
	Location string
	Session  string
	Text     string
}

// Event is a domain event declared by the engine while executing an intent.
// Session is set for session lifecycle events; Data carries type-specific
// detail for the narrative layer.
type Event struct {
	Type    string
	Session string
	Data    map[string]string
}

// Context is the engine-side world context an intent executes against. The
// dispatcher resets the declared lists before each execution and reads them
// back afterward; it never inspects engine internals beyond this surface.
type Context interface {
	ResetEvents()
	ResetErrors()
	DeclaredEvents() []Event
	DeclaredErrors() []string
}

// Executor builds and runs intents.
type Executor interface {
	NewIntent(spec Intent) Intent
	Execute(ctx context.Context, ec Context, intent Intent) (Context, error)
}
