package operations

import (
	"context"
	"fmt"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/pretty"
)

type FarmOptions struct {
	Verbose    bool
	Executor   bool
	NoRotation bool
}

type WipeOptions struct {
	Farmer bool
	Node   bool
}

// Actions are the effectful operations behind each command.
type Actions interface {
	Init(ctx context.Context) error
	Farm(ctx context.Context, options FarmOptions) error
	Wipe(ctx context.Context, options WipeOptions) error
	Info(ctx context.Context) error
	OpenLogs(ctx context.Context) error
}

// Dispatch runs exactly one action for command. A failure comes back as
// ActionError carrying the support hint.
func Dispatch(ctx context.Context, command Command, actions Actions) error {
	common.Debug("Dispatching %v.", command)
	var err error
	switch command.Kind {
	case Init:
		err = actions.Init(ctx)
	case Farm:
		err = actions.Farm(ctx, FarmOptions{
			Verbose:    command.Verbose,
			Executor:   command.Executor,
			NoRotation: command.NoRotation,
		})
	case Wipe:
		err = actions.Wipe(ctx, WipeOptions{
			Farmer: command.Farmer,
			Node:   command.Node,
		})
	case Info:
		err = actions.Info(ctx)
	case OpenLogs:
		err = actions.OpenLogs(ctx)
	default:
		return fmt.Errorf("unknown command kind %d", int(command.Kind))
	}
	if err != nil {
		return &common.ActionError{
			Action: command.Kind.String(),
			Hint:   pretty.SupportMessage(),
			Err:    err,
		}
	}
	return nil
}
