package domain

import (
	"strconv"
	"strings"
)

type CommandKind string

const (
	CommandHelp      CommandKind = "help"
	CommandInventory CommandKind = "inv"
	CommandAdd       CommandKind = "add"
	CommandRemove    CommandKind = "remove"
)

const (
	AliasCrates  = "crates"
	AliasWeapons = "weapons"
	AliasMetal   = "metal"
)

var categoryAliases = map[string]string{
	AliasCrates:  "supply_crate",
	AliasWeapons: "weapon",
	AliasMetal:   "craft_bar",
}

// ResolveCategory maps a chat alias to its craft material key. Unknown
// tokens pass through untouched.
func ResolveCategory(token string) string {
	if category, ok := categoryAliases[token]; ok {
		return category
	}
	return token
}

// Command is the parsed form of one chat line.
type Command struct {
	Raw      string
	Kind     CommandKind
	Argument string
	// Amount is zero when no cap was given.
	Amount uint
}

func (c Command) HasArgument() bool {
	return c.Argument != ""
}

// Defindex reports whether the argument is a direct catalog index.
func (c Command) Defindex() (int, bool) {
	defindex, err := strconv.Atoi(c.Argument)
	if err != nil {
		return 0, false
	}
	return defindex, true
}

// Category resolves the argument through the alias table.
func (c Command) Category() string {
	return ResolveCategory(c.Argument)
}

// ParseCommand splits a chat line on whitespace. It returns false when the
// first token is not a known command.
func ParseCommand(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}

	cmd := Command{Raw: line, Kind: CommandKind(fields[0])}
	switch cmd.Kind {
	case CommandHelp, CommandInventory, CommandAdd, CommandRemove:
	default:
		return Command{}, false
	}

	if len(fields) > 1 {
		cmd.Argument = fields[1]
	}
	if len(fields) > 2 {
		if amount, err := strconv.ParseUint(fields[2], 10, 32); err == nil {
			cmd.Amount = uint(amount)
		}
	}

	return cmd, true
}
