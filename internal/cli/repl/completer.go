package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the fittrack command set.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"login", "logout", "whoami",
			"stats",
			"goal list", "goal create",
			"config show", "config path",
		},
	}
}

// Commands returns the known command lines.
func (c *Completer) Commands() []string {
	return c.commands
}

// Complete returns suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
