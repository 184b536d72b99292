package app

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCommand is returned for any line that is not one of the five table commands.
var ErrInvalidCommand = errors.New("invalid command")

// Command is a parsed table command.
type Command int

const (
	CommandReset Command = iota + 1
	CommandShuffle
	CommandDeal
	CommandHit
	CommandStand
)

var commandTokens = map[string]Command{
	"RESET":   CommandReset,
	"SHUFFLE": CommandShuffle,
	"DEAL":    CommandDeal,
	"HIT":     CommandHit,
	"STAND":   CommandStand,
}

func (c Command) String() string {
	switch c {
	case CommandReset:
		return "RESET"
	case CommandShuffle:
		return "SHUFFLE"
	case CommandDeal:
		return "DEAL"
	case CommandHit:
		return "HIT"
	case CommandStand:
		return "STAND"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// ParseCommand matches a command line exactly and case-sensitively.
// A single trailing "\n" (or "\r\n") is stripped first; nothing else is trimmed.
func ParseCommand(line string) (Command, error) {
	token := strings.TrimSuffix(line, "\n")
	token = strings.TrimSuffix(token, "\r")
	if cmd, ok := commandTokens[token]; ok {
		return cmd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCommand, token)
}
