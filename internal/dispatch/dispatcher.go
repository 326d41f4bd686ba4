package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-console/internal/command"
	"github.com/pixil98/go-console/internal/effect"
	"github.com/pixil98/go-console/internal/engine"
	"github.com/pixil98/go-console/internal/narrative"
	"github.com/pixil98/go-console/internal/queue"
	"github.com/pixil98/go-console/internal/world"
)

const (
	sessionStartedSuffix = ":session:started"
	sessionEndedSuffix   = ":session:ended"
)

// World is the read-only actor table.
type World interface {
	Actor(id string) (*world.Actor, bool)
}

// Renderer turns a declared event into printable narration. The second return
// is false when the event type has no narration.
type Renderer interface {
	Render(ev engine.Event) (narrative.Output, bool)
}

// Publisher mirrors declared events to an external tap. Optional.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// StatusReporter exposes queue occupancy for the context view. Optional.
type StatusReporter interface {
	Status() queue.Status
}

// Deps bundles everything impure the dispatcher touches.
type Deps struct {
	World    World
	Engine   engine.Executor
	Renderer Renderer
	Events   Publisher
	Queue    StatusReporter
}

// eventTapSubject is the NATS subject prefix declared events are mirrored to.
const eventTapSubject = "console.events."

// Dispatch resolves one command into a batch of effects, mutating state as a
// side effect. out is reset first; the same buffer is reused across
// dispatches by the coordinator's single drain loop. The returned error is
// reserved for engine invocation failures (a defect, not user error); every
// user-visible failure becomes a Print effect instead.
func Dispatch(ctx context.Context, state *SessionState, cmd command.Command, out *effect.Buffer, deps *Deps) error {
	out.Reset()

	switch cmd.Kind {
	case command.KindGame:
		return dispatchGame(ctx, state, cmd, out, deps)

	case command.KindSwitchActor:
		dispatchSwitchActor(state, cmd.Arg, out, deps)

	case command.KindShowHelp:
		out.Print(helpText(cmd.Arg))

	case command.KindShowContext:
		dispatchShowContext(state, out, deps)

	case command.KindShowEvents:
		events := state.Engine.DeclaredEvents()
		if len(events) == 0 {
			out.Print("No events declared by the last command.")
			break
		}
		var b strings.Builder
		b.WriteString("Declared events:")
		for _, ev := range events {
			b.WriteString("\n  " + ev.Type)
			if ev.Session != "" {
				b.WriteString(" (session " + ev.Session + ")")
			}
		}
		out.Print(b.String())

	case command.KindShowErrors:
		errs := state.Engine.DeclaredErrors()
		if len(errs) == 0 {
			out.Print("No errors declared by the last command.")
			break
		}
		out.Print("Declared errors:\n  " + strings.Join(errs, "\n  "))

	case command.KindShowHandlers:
		out.Print("Handler inspection is not yet implemented.")

	case command.KindShowSessions:
		out.Print("Session inspection is not yet implemented.")

	case command.KindClearScreen:
		out.Control(effect.KindClearScreen)

	case command.KindExit:
		state.Running = false
		out.Control(effect.KindExitProcess)

	default:
		// Unreachable given the pipeline's exhaustive fallback.
		out.Print("Unknown command.")
	}

	return nil
}

func dispatchGame(ctx context.Context, state *SessionState, cmd command.Command, out *effect.Buffer, deps *Deps) error {
	location, ok := "", false
	if state.Actor != "" {
		location, ok = state.Memo.Location(state.Actor)
	}
	if !ok {
		out.Print("No actor context. Switch to an actor with 'actor <id>' first.")
		return nil
	}

	var session string
	if b, ok := state.Memo.Session(state.Actor); ok {
		session = b.ID
	}

	intent := deps.Engine.NewIntent(engine.Intent{
		ID:       cmd.Trace,
		Actor:    state.Actor,
		Location: location,
		Session:  session,
		Text:     cmd.Arg,
	})

	state.Engine.ResetEvents()
	state.Engine.ResetErrors()

	ec, err := deps.Engine.Execute(ctx, state.Engine, intent)
	if err != nil {
		return fmt.Errorf("executing intent: %w", err)
	}
	state.Engine = ec

	events := state.Engine.DeclaredEvents()
	errs := state.Engine.DeclaredErrors()

	switch {
	case len(events) > 0:
		// Pause the reader so fresh input cannot interleave with the
		// narration being printed.
		out.Control(effect.KindPauseInput)
		for _, ev := range events {
			if deps.Renderer != nil {
				if o, ok := deps.Renderer.Render(ev); ok {
					if len(o.Beats) > 0 {
						out.Sequence(o.Beats)
					} else {
						out.Print(o.Text)
					}
				}
			}
			bookkeepSession(state, ev)
			tapEvent(deps.Events, cmd.Trace, ev)
		}
		out.Control(effect.KindFlushOutput)
		out.Control(effect.KindResumeInput)

	case len(errs) > 0:
		out.Print("Command failed: " + strings.Join(errs, "; "))

	default:
		out.Print("Ok.")
	}

	return nil
}

// bookkeepSession maintains the actor-to-session memo from session lifecycle
// events.
func bookkeepSession(state *SessionState, ev engine.Event) {
	if strategy, ok := strings.CutSuffix(ev.Type, sessionStartedSuffix); ok {
		state.Memo.BindSession(state.Actor, ev.Session, strategy)
		return
	}
	if _, ok := strings.CutSuffix(ev.Type, sessionEndedSuffix); ok {
		state.Memo.EndSession(state.Actor, ev.Session)
	}
}

func dispatchSwitchActor(state *SessionState, id string, out *effect.Buffer, deps *Deps) {
	actor, ok := deps.World.Actor(id)
	if !ok {
		out.Print(fmt.Sprintf("Actor %q not found.", id))
		return
	}

	state.Actor = id
	state.Memo.BindLocation(id, actor.Location)

	if b, ok := state.Memo.Session(id); ok {
		out.Print(fmt.Sprintf("Now acting as %s (%s session active).", actor.Name, b.Strategy))
		return
	}
	out.Print(fmt.Sprintf("Now acting as %s.", actor.Name))
}

func dispatchShowContext(state *SessionState, out *effect.Buffer, deps *Deps) {
	var b strings.Builder

	if state.Actor == "" {
		b.WriteString("Actor: none")
	} else {
		b.WriteString("Actor: " + state.Actor)
		if loc, ok := state.Memo.Location(state.Actor); ok {
			b.WriteString("\nLocation: " + loc)
		}
		if s, ok := state.Memo.Session(state.Actor); ok {
			b.WriteString(fmt.Sprintf("\nSession: %s (%s)", s.ID, s.Strategy))
		} else {
			b.WriteString("\nSession: none")
		}
	}

	if deps.Queue != nil {
		st := deps.Queue.Status()
		b.WriteString(fmt.Sprintf("\nQueue: %d/%d (%d%%)", st.Length, st.Capacity, st.Utilization))
		if st.Draining {
			b.WriteString(" draining")
		}
	}

	out.Print(b.String())
}

// tapEvent mirrors a declared event to the external tap, when one is wired.
// Tap failures never affect the command that declared the event.
func tapEvent(pub Publisher, trace string, ev engine.Event) {
	if pub == nil {
		return
	}

	data, err := json.Marshal(struct {
		Type    string            `json:"type"`
		Session string            `json:"session,omitempty"`
		Trace   string            `json:"trace"`
		Data    map[string]string `json:"data,omitempty"`
	}{ev.Type, ev.Session, trace, ev.Data})
	if err != nil {
		slog.Warn("marshalling event for tap", "event", ev.Type, "error", err)
		return
	}

	if err := pub.Publish(eventTapSubject+ev.Type, data); err != nil {
		slog.Warn("publishing event to tap", "event", ev.Type, "error", err)
	}
}

func helpText(topic string) string {
	switch topic {
	case "security":
		return "Input containing shell metacharacters, path traversal, or" +
			" code-execution patterns is rejected before parsing. Plain" +
			" words only."
	case "actor":
		return "Usage: actor <id>\nSwitch the console to act as the given" +
			" world actor. Game commands require an actor context."
	case "":
		return "Commands:\n" +
			"  help [topic]   show help\n" +
			"  actor <id>     switch the acting actor\n" +
			"  context        show actor, session and queue state\n" +
			"  events         show events declared by the last command\n" +
			"  errors         show errors declared by the last command\n" +
			"  clear          clear the screen\n" +
			"  exit           leave the console\n" +
			"Anything else is sent to the game engine verbatim."
	default:
		return fmt.Sprintf("No help for %q. Try 'help'.", topic)
	}
}
