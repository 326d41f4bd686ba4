package parse

import (
	"testing"

	"github.com/pixil98/go-console/internal/command"
	"github.com/pixil98/go-testutil"
)

func TestTokenize(t *testing.T) {
	tests := map[string]struct {
		raw string
		exp []string
	}{
		"simple": {
			raw: "look north",
			exp: []string{"look", "north"},
		},
		"case folded with padding": {
			raw: "  Help   Workbench  ",
			exp: []string{"help", "workbench"},
		},
		"tabs and newlines": {
			raw: "go\tnorth\n",
			exp: []string{"go", "north"},
		},
		"empty": {
			raw: "",
			exp: nil,
		},
		"whitespace only": {
			raw: "   \t ",
			exp: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Tokenize(tt.raw)
			testutil.AssertEqual(t, "token count", len(got), len(tt.exp))
			for i := range tt.exp {
				testutil.AssertEqual(t, "token", got[i], tt.exp[i])
			}
		})
	}
}

func TestPipeline_Verbs(t *testing.T) {
	tests := map[string]struct {
		raw     string
		expKind command.Kind
		expArg  string
	}{
		"help":             {raw: "help", expKind: command.KindShowHelp, expArg: ""},
		"help topic":       {raw: "help actors", expKind: command.KindShowHelp, expArg: "actors"},
		"help alias":       {raw: "h combat", expKind: command.KindShowHelp, expArg: "combat"},
		"actor":            {raw: "actor alice", expKind: command.KindSwitchActor, expArg: "alice"},
		"actor alias":      {raw: "a alice", expKind: command.KindSwitchActor, expArg: "alice"},
		"actor missing id": {raw: "actor", expKind: command.KindShowHelp, expArg: "actor"},
		"context":          {raw: "context", expKind: command.KindShowContext},
		"context alias":    {raw: "ctx", expKind: command.KindShowContext},
		"events":           {raw: "events", expKind: command.KindShowEvents},
		"errors":           {raw: "errors", expKind: command.KindShowErrors},
		"handlers":         {raw: "handlers", expKind: command.KindShowHandlers},
		"sessions":         {raw: "sessions", expKind: command.KindShowSessions},
		"clear":            {raw: "clear", expKind: command.KindClearScreen},
		"clear alias":      {raw: "cls", expKind: command.KindClearScreen},
		"exit":             {raw: "exit", expKind: command.KindExit},
		"quit":             {raw: "quit", expKind: command.KindExit},
		"q":                {raw: "q", expKind: command.KindExit},
		"mixed case verb":  {raw: "EXIT", expKind: command.KindExit},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPipeline(DefaultStages()...)
			cmd := p.Run(tt.raw, nil, "trace-1")

			testutil.AssertEqual(t, "kind", cmd.Kind, tt.expKind)
			testutil.AssertEqual(t, "arg", cmd.Arg, tt.expArg)
			testutil.AssertEqual(t, "trace", cmd.Trace, "trace-1")
		})
	}
}

func TestPipeline_GameFallback(t *testing.T) {
	p := NewPipeline(DefaultStages()...)

	cmd := p.Run("cast  Fireball   at Dragon", nil, "trace-2")
	testutil.AssertEqual(t, "kind", cmd.Kind, command.KindGame)
	testutil.AssertEqual(t, "text", cmd.Arg, "cast fireball at dragon")
	testutil.AssertEqual(t, "trace", cmd.Trace, "trace-2")
}

func TestPipeline_SecurityShortCircuit(t *testing.T) {
	tests := map[string]string{
		"path traversal": "cd ../../../etc/passwd",
		"pipe":           "look | rm -rf",
		"backtick":       "say `id`",
		"subshell":       "say $HOME",
		"eval":           "eval(process)",
		"require":        "require('fs')",
		"import":         "import os",
		"redirect":       "look > out.txt",
		"semicolon":      "look; quit",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewPipeline(DefaultStages()...)
			cmd := p.Run(raw, nil, "trace-3")

			testutil.AssertEqual(t, "kind", cmd.Kind, command.KindShowHelp)
			testutil.AssertEqual(t, "topic", cmd.Arg, "security")
			testutil.AssertEqual(t, "trace", cmd.Trace, "trace-3")
		})
	}
}

func TestPipeline_SecurityBeatsVerbs(t *testing.T) {
	// The security filter runs before verb recognition, so a hostile line
	// starting with a known verb still resolves to the security topic.
	p := NewPipeline(DefaultStages()...)
	cmd := p.Run("help ../secrets", nil, "t")
	testutil.AssertEqual(t, "kind", cmd.Kind, command.KindShowHelp)
	testutil.AssertEqual(t, "topic", cmd.Arg, "security")
}

func TestPipeline_PrecomputedTokens(t *testing.T) {
	p := NewPipeline(DefaultStages()...)
	cmd := p.Run("ignored raw", []string{"go", "north"}, "t")
	testutil.AssertEqual(t, "kind", cmd.Kind, command.KindGame)
	testutil.AssertEqual(t, "text", cmd.Arg, "go north")
}

func TestPipeline_EmptyInput(t *testing.T) {
	p := NewPipeline(DefaultStages()...)
	cmd := p.Run("", nil, "t")
	testutil.AssertEqual(t, "kind", cmd.Kind, command.KindGame)
	testutil.AssertEqual(t, "text", cmd.Arg, "")
}

// rewritingStage drops a leading filler token, proving stages may rewrite the
// scratch input in place for later stages.
type rewritingStage struct{}

func (s *rewritingStage) Resolve(_ string, in *ParsedInput) (command.Command, bool) {
	if len(in.Tokens) > 1 {
		in.Tokens = in.Tokens[1:]
		in.Command = in.Tokens[0]
		in.Args = in.Tokens[1:]
	}
	return command.Command{}, false
}

func TestPipeline_CustomStageRewrites(t *testing.T) {
	p := NewPipeline(&rewritingStage{})
	cmd := p.Run("please look north", nil, "t")
	testutil.AssertEqual(t, "kind", cmd.Kind, command.KindGame)
	testutil.AssertEqual(t, "text", cmd.Arg, "look north")
}

func TestPipeline_ScratchReuse(t *testing.T) {
	p := NewPipeline(DefaultStages()...)

	first := p.Run("look north", nil, "t1")
	second := p.Run("go", nil, "t2")

	// The second run must not inherit tokens from the first.
	testutil.AssertEqual(t, "first", first.Arg, "look north")
	testutil.AssertEqual(t, "second", second.Arg, "go")
}
