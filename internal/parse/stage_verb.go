package parse

import "github.com/pixil98/go-console/internal/command"

// VerbStage resolves the console's built-in verbs by exact (case-folded)
// match on the first token. Anything else passes through untouched for the
// game-command fold.
type VerbStage struct{}

func (s *VerbStage) Resolve(_ string, in *ParsedInput) (command.Command, bool) {
	switch in.Command {
	case "help", "h":
		topic := ""
		if len(in.Args) > 0 {
			topic = in.Args[0]
		}
		return command.ShowHelp(topic, ""), true

	case "actor", "a":
		if len(in.Args) == 0 {
			return command.ShowHelp("actor", ""), true
		}
		return command.SwitchActor(in.Args[0], ""), true

	case "context", "ctx":
		return command.Command{Kind: command.KindShowContext}, true

	case "events":
		return command.Command{Kind: command.KindShowEvents}, true

	case "errors":
		return command.Command{Kind: command.KindShowErrors}, true

	case "handlers":
		return command.Command{Kind: command.KindShowHandlers}, true

	case "sessions":
		return command.Command{Kind: command.KindShowSessions}, true

	case "clear", "cls":
		return command.Command{Kind: command.KindClearScreen}, true

	case "exit", "quit", "q":
		return command.Command{Kind: command.KindExit}, true
	}

	return command.Command{}, false
}
