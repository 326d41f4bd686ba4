package parse

import (
	"strings"

	"github.com/pixil98/go-console/internal/command"
)

// Substrings that mark input as hostile rather than playable: path traversal,
// shell metacharacters, and code-execution lookalikes. The filter runs on the
// untouched raw string before any tokenization-driven interpretation, since
// downstream stages would otherwise pass the payload along as an opaque game
// command.
var hostilePatterns = []string{
	"..",
	"<", ">", "|", "&", ";", "`", "$",
	"eval(", "require(", "import ",
}

// SecurityStage short-circuits hostile input to the security help topic.
type SecurityStage struct{}

func (s *SecurityStage) Resolve(raw string, _ *ParsedInput) (command.Command, bool) {
	for _, p := range hostilePatterns {
		if strings.Contains(raw, p) {
			return command.ShowHelp("security", ""), true
		}
	}
	return command.Command{}, false
}
