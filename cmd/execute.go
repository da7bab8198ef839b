package cmd

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/menu"
	"github.com/subspace/subspace-cli/operations"
	"github.com/subspace/subspace-cli/pretty"
	"github.com/subspace/subspace-cli/settings"
	"github.com/subspace/subspace-cli/wizard"
)

const usageHint = "Run 'subspace --help' to see available commands."

// Execute runs one invocation of the process. Failures end in pretty.Exit
// with the exit code of the error kind.
func Execute(ctx context.Context, args []string) {
	invocation, err := Parse(args, os.Stdout)
	if errors.Is(err, ErrHelpShown) {
		return
	}
	if err != nil {
		pretty.Setup()
		pretty.Exit(common.ExitUsage, "%v\n%s", err, usageHint)
	}

	common.DefineVerbosity(invocation.Silent, invocation.Debug, invocation.Trace)
	pretty.Colorless = pretty.Colorless || invocation.Colorless
	pretty.Setup()

	paths := settings.DefaultPaths()
	if len(invocation.ConfigFile) > 0 {
		paths.ConfigFile = settings.ExpandPath(invocation.ConfigFile)
	}
	common.Debug("Using config file %q and home %q.", paths.ConfigFile, paths.Home)

	stdin := bufio.NewReader(os.Stdin)
	prompter := wizard.NewPrompter(stdin, os.Stdout)

	command := invocation.Command
	if command == nil {
		pretty.Guard(pretty.Interactive, common.ExitUsage, "No command given and terminal is not interactive.\n%s", usageHint)
		console := menu.NewConsole(os.Stdin, stdin, os.Stdout)
		session := menu.NewSession(console, console, os.Stdout, prompter)
		if pretty.Colorless || pretty.Disabled {
			session.Theme = pretty.PlainMenuTheme()
		}
		command, err = session.Run(ctx)
		exitOnFailure(err)
		if command == nil {
			common.Debug("Menu cancelled, nothing to do.")
			return
		}
	}

	exitOnFailure(dispatch(ctx, *command, operations.NewLocal(paths, prompter)))
}

func dispatch(ctx context.Context, command operations.Command, actions operations.Actions) error {
	if command.Kind == operations.Farm {
		// Interrupts stop the node and farmer gracefully instead of killing us.
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}
	common.Debug("Dispatching %s.", command)
	return operations.Dispatch(ctx, command, actions)
}

func exitOnFailure(err error) {
	if err == nil {
		return
	}
	code := common.ExitCodeFor(err)
	var failure *common.ActionError
	if errors.As(err, &failure) && len(failure.Suggestion()) > 0 {
		pretty.Exit(code, "Error: %v\n%s", err, failure.Suggestion())
	}
	pretty.Exit(code, "Error: %v", err)
}
