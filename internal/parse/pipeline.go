package parse

import (
	"strings"

	"github.com/pixil98/go-console/internal/command"
)

// ParsedInput is the intermediate shape a raw line takes while it moves
// through the stage chain. Command is the first token (or empty), Args the
// rest. A single scratch instance is reused across inputs; the coordinator's
// single-flight drain is what makes that safe.
type ParsedInput struct {
	Tokens  []string
	Command string
	Args    []string
	Raw     string
}

// Stage inspects a parsed input and either resolves it to a command
// (short-circuiting the rest of the chain) or passes it on, optionally
// rewriting the parsed input in place.
type Stage interface {
	Resolve(raw string, in *ParsedInput) (command.Command, bool)
}

// Pipeline folds a raw line through an ordered stage chain. If no stage
// resolves it, the surviving tokens fold into a game command carrying the
// space-joined token text.
type Pipeline struct {
	stages  []Stage
	scratch ParsedInput
}

// NewPipeline builds a pipeline over the given stages, run in order.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// DefaultStages is the production chain: security filter first, then verb
// recognition. Unrecognized input falls through to the game-command fold.
func DefaultStages() []Stage {
	return []Stage{&SecurityStage{}, &VerbStage{}}
}

// Run resolves one raw line into a command. tokens may be supplied
// pre-computed; pass nil to tokenize here. Every exit path attaches trace to
// the resulting command.
func (p *Pipeline) Run(raw string, tokens []string, trace string) command.Command {
	s := &p.scratch
	if tokens == nil {
		s.Tokens = appendTokens(s.Tokens[:0], raw)
	} else {
		s.Tokens = append(s.Tokens[:0], tokens...)
	}

	s.Raw = raw
	if len(s.Tokens) > 0 {
		s.Command = s.Tokens[0]
		s.Args = s.Tokens[1:]
	} else {
		s.Command = ""
		s.Args = s.Tokens[:0]
	}

	for _, stage := range p.stages {
		if cmd, ok := stage.Resolve(raw, s); ok {
			cmd.Trace = trace
			return cmd
		}
	}

	return command.Game(strings.Join(s.Tokens, " "), trace)
}
