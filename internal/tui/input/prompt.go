// Package input parses the TUI command prompt.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
	NeedsArg    bool
}

// Action is what a prompt line asks for.
type Action int

const (
	ActionScopeAll Action = iota
	ActionScopeGroup
	ActionScopeTeacher
	ActionScopeRoom
	ActionClear
	ActionInsight
	ActionHelp
)

// Parsed is a parsed prompt line.
type Parsed struct {
	Action Action
	Arg    string
}

// Commands lists the prompt commands in suggestion order.
var Commands = []PromptCommand{
	{Name: "/all", Description: "Fetch the whole schedule"},
	{Name: "/group", Description: "Fetch one group from the backend", NeedsArg: true},
	{Name: "/teacher", Description: "Fetch one teacher from the backend", NeedsArg: true},
	{Name: "/room", Description: "Fetch one room from the backend", NeedsArg: true},
	{Name: "/clear", Description: "Clear group and teacher filters"},
	{Name: "/insight", Description: "Ask the LLM to review the visible week"},
	{Name: "/help", Description: "Show key bindings"},
}

var actions = map[string]Action{
	"/all":     ActionScopeAll,
	"/group":   ActionScopeGroup,
	"/teacher": ActionScopeTeacher,
	"/room":    ActionScopeRoom,
	"/clear":   ActionClear,
	"/insight": ActionInsight,
	"/help":    ActionHelp,
}

// ErrEmptyPrompt is returned for a blank prompt line.
var ErrEmptyPrompt = errors.New("empty command")

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	if matches[0].NeedsArg {
		return matches[0].Name + " ", true
	}
	return matches[0].Name, true
}

// Parse turns a prompt line into an action. The argument keeps inner
// spaces, so room names like "Lab 2" work unquoted.
func Parse(line string) (Parsed, error) {
	line = strings.TrimSpace(line)
	if line == "" || line == "/" {
		return Parsed{}, ErrEmptyPrompt
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	action, ok := actions[name]
	if !ok {
		return Parsed{}, fmt.Errorf("unknown command %q", name)
	}

	needsArg := action == ActionScopeGroup || action == ActionScopeTeacher || action == ActionScopeRoom
	if needsArg && arg == "" {
		return Parsed{}, fmt.Errorf("%s needs a value", name)
	}
	if !needsArg && arg != "" {
		return Parsed{}, fmt.Errorf("%s takes no value", name)
	}
	return Parsed{Action: action, Arg: arg}, nil
}
