package dispatch

import "github.com/pixil98/go-console/internal/engine"

// SessionBinding is a memoized actor-to-session link. Strategy is the label
// parsed from the session-started event type.
type SessionBinding struct {
	ID       string
	Strategy string
}

// Memo caches transient actor bindings (session, location) alongside the
// authoritative world state. It lives as long as the console session.
type Memo struct {
	sessions  map[string]SessionBinding
	locations map[string]string
}

func NewMemo() *Memo {
	return &Memo{
		sessions:  map[string]SessionBinding{},
		locations: map[string]string{},
	}
}

func (m *Memo) BindLocation(actor, location string) {
	m.locations[actor] = location
}

func (m *Memo) Location(actor string) (string, bool) {
	loc, ok := m.locations[actor]
	return loc, ok
}

func (m *Memo) BindSession(actor, id, strategy string) {
	m.sessions[actor] = SessionBinding{ID: id, Strategy: strategy}
}

func (m *Memo) Session(actor string) (SessionBinding, bool) {
	b, ok := m.sessions[actor]
	return b, ok
}

// EndSession removes the actor's session binding, but only while it still
// points at the ending session. An actor who switched into another session
// since keeps the newer binding.
func (m *Memo) EndSession(actor, id string) {
	if b, ok := m.sessions[actor]; ok && b.ID == id {
		delete(m.sessions, actor)
	}
}

// SessionState is the evolving state one console session threads through its
// drain iterations. It is exclusively owned by the coordinator's drain loop
// and never locked.
type SessionState struct {
	Actor   string
	Running bool
	Memo    *Memo
	Engine  engine.Context
}

func NewSessionState(ec engine.Context) *SessionState {
	return &SessionState{
		Running: true,
		Memo:    NewMemo(),
		Engine:  ec,
	}
}
