package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EventActionPerformed is declared for every ordinary game action.
const EventActionPerformed = "game:action:performed"

// Scripted is a small built-in engine so the console runs without an external
// simulation attached. Ordinary text declares an action event; "begin
// <activity>" and "finish" drive session lifecycle events so session
// bookkeeping is exercised end to end.
type Scripted struct{}

func NewScripted() *Scripted {
	return &Scripted{}
}

// State is the scripted engine's world context.
type State struct {
	events     []Event
	errors     []string
	strategies map[string]string // session id -> activity that started it
}

func (e *Scripted) NewState() *State {
	return &State{strategies: map[string]string{}}
}

func (s *State) ResetEvents() {
	s.events = s.events[:0]
}

func (s *State) ResetErrors() {
	s.errors = s.errors[:0]
}

func (s *State) DeclaredEvents() []Event {
	return s.events
}

func (s *State) DeclaredErrors() []string {
	return s.errors
}

func (e *Scripted) NewIntent(spec Intent) Intent {
	return spec
}

func (e *Scripted) Execute(_ context.Context, ec Context, intent Intent) (Context, error) {
	st, ok := ec.(*State)
	if !ok {
		return nil, fmt.Errorf("scripted engine got foreign context %T", ec)
	}

	fields := strings.Fields(intent.Text)
	switch {
	case len(fields) == 0:
		st.errors = append(st.errors, "nothing to do")

	case fields[0] == "begin":
		if len(fields) < 2 {
			st.errors = append(st.errors, "begin what?")
			break
		}
		activity := fields[1]
		id := uuid.New().String()
		st.strategies[id] = activity
		st.events = append(st.events, Event{
			Type:    activity + ":session:started",
			Session: id,
			Data:    map[string]string{"actor": intent.Actor, "activity": activity},
		})

	case fields[0] == "finish":
		if intent.Session == "" {
			st.errors = append(st.errors, "no session to finish")
			break
		}
		strategy, ok := st.strategies[intent.Session]
		if !ok {
			st.errors = append(st.errors, "session is not known to the engine")
			break
		}
		delete(st.strategies, intent.Session)
		st.events = append(st.events, Event{
			Type:    strategy + ":session:ended",
			Session: intent.Session,
			Data:    map[string]string{"actor": intent.Actor, "activity": strategy},
		})

	default:
		st.events = append(st.events, Event{
			Type: EventActionPerformed,
			Data: map[string]string{
				"actor":    intent.Actor,
				"location": intent.Location,
				"action":   intent.Text,
			},
		})
	}

	return st, nil
}
