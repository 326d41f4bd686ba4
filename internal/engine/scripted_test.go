package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func exec(t *testing.T, e *Scripted, st *State, intent Intent) *State {
	t.Helper()
	st.ResetEvents()
	st.ResetErrors()
	ec, err := e.Execute(context.Background(), st, intent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ec.(*State)
}

func TestScripted_ActionEvent(t *testing.T) {
	e := NewScripted()
	st := e.NewState()

	st = exec(t, e, st, Intent{Actor: "alice", Location: "forge", Text: "look around"})

	events := st.DeclaredEvents()
	testutil.AssertEqual(t, "event count", len(events), 1)
	testutil.AssertEqual(t, "type", events[0].Type, EventActionPerformed)
	testutil.AssertEqual(t, "action", events[0].Data["action"], "look around")
	testutil.AssertEqual(t, "actor", events[0].Data["actor"], "alice")
	testutil.AssertEqual(t, "errors", len(st.DeclaredErrors()), 0)
}

func TestScripted_SessionLifecycle(t *testing.T) {
	e := NewScripted()
	st := e.NewState()

	st = exec(t, e, st, Intent{Actor: "alice", Text: "begin smithing"})
	events := st.DeclaredEvents()
	testutil.AssertEqual(t, "event count", len(events), 1)
	testutil.AssertEqual(t, "type", events[0].Type, "smithing:session:started")
	if events[0].Session == "" {
		t.Fatal("expected a session id")
	}
	session := events[0].Session

	st = exec(t, e, st, Intent{Actor: "alice", Session: session, Text: "finish"})
	events = st.DeclaredEvents()
	testutil.AssertEqual(t, "event count", len(events), 1)
	testutil.AssertEqual(t, "type", events[0].Type, "smithing:session:ended")
	testutil.AssertEqual(t, "session", events[0].Session, session)
}

func TestScripted_Errors(t *testing.T) {
	tests := map[string]struct {
		intent Intent
		exp    string
	}{
		"empty text":          {intent: Intent{Text: "   "}, exp: "nothing to do"},
		"begin without name":  {intent: Intent{Text: "begin"}, exp: "begin what?"},
		"finish no session":   {intent: Intent{Text: "finish"}, exp: "no session to finish"},
		"finish unknown":      {intent: Intent{Text: "finish", Session: "bogus"}, exp: "not known"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := NewScripted()
			st := exec(t, e, e.NewState(), tt.intent)

			errs := st.DeclaredErrors()
			testutil.AssertEqual(t, "error count", len(errs), 1)
			if !strings.Contains(errs[0], tt.exp) {
				t.Errorf("error %q does not contain %q", errs[0], tt.exp)
			}
			testutil.AssertEqual(t, "events", len(st.DeclaredEvents()), 0)
		})
	}
}

func TestScripted_ResetClearsDeclarations(t *testing.T) {
	e := NewScripted()
	st := exec(t, e, e.NewState(), Intent{Actor: "alice", Text: "wave"})
	testutil.AssertEqual(t, "events before reset", len(st.DeclaredEvents()), 1)

	st.ResetEvents()
	st.ResetErrors()
	testutil.AssertEqual(t, "events after reset", len(st.DeclaredEvents()), 0)
	testutil.AssertEqual(t, "errors after reset", len(st.DeclaredErrors()), 0)
}
