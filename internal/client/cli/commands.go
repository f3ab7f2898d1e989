package cli

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownCommand is returned by Run for commands it does not know
var ErrUnknownCommand = errors.New("unknown command")

// Run executes command with its arguments (without the command name).
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "checkin":
		return c.runCheckin(ctx, args)
	case "queue":
		return c.runQueue(ctx)
	case "sync":
		return c.runSync(ctx)
	case "retry":
		return c.runRetry(ctx, args)
	case "remove":
		return c.runRemove(ctx, args)
	case "markers":
		return c.runMarkers(ctx, args)
	case "show":
		return c.runShow(ctx, args)
	case "history":
		return c.runHistory(ctx, args)
	case "agent":
		return c.runAgent(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// singleArg возвращает единственный позиционный аргумент команды
func singleArg(args []string, usage string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("missing argument. Usage: geocheckin %s", usage)
	}
	return args[0], nil
}
