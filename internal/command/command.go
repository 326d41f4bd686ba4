package command

// Kind discriminates the command union. The pipeline's fallback guarantees
// every raw input resolves to exactly one of these.
type Kind int

const (
	KindGame Kind = iota
	KindSwitchActor
	KindShowHelp
	KindShowContext
	KindShowEvents
	KindShowErrors
	KindShowHandlers
	KindShowSessions
	KindClearScreen
	KindExit
)

func (k Kind) String() string {
	switch k {
	case KindGame:
		return "game"
	case KindSwitchActor:
		return "switch-actor"
	case KindShowHelp:
		return "show-help"
	case KindShowContext:
		return "show-context"
	case KindShowEvents:
		return "show-events"
	case KindShowErrors:
		return "show-errors"
	case KindShowHandlers:
		return "show-handlers"
	case KindShowSessions:
		return "show-sessions"
	case KindClearScreen:
		return "clear-screen"
	case KindExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Command is a resolved user input. Arg carries the kind-specific payload:
// the game command text for KindGame, the actor id for KindSwitchActor, the
// help topic (possibly empty) for KindShowHelp, and nothing otherwise. Trace
// is the opaque id threaded from the queued input for correlating effects
// back to the keystroke that caused them.
type Command struct {
	Kind  Kind
	Arg   string
	Trace string
}

func Game(text, trace string) Command {
	return Command{Kind: KindGame, Arg: text, Trace: trace}
}

func SwitchActor(id, trace string) Command {
	return Command{Kind: KindSwitchActor, Arg: id, Trace: trace}
}

func ShowHelp(topic, trace string) Command {
	return Command{Kind: KindShowHelp, Arg: topic, Trace: trace}
}
