package common

import (
	"errors"
	"fmt"
)

const (
	ExitSuccess  = 0
	ExitUsage    = 1
	ExitAction   = 2
	ExitTerminal = 3
	ExitPrompt   = 4
)

// ExitCode is raised as panic value and recovered in main, so that
// deferred cleanups still run before the process terminates.
type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) ShowMessage() {
	if len(it.Message) > 0 {
		printout(stderr(), it.Message)
	}
}

func (it ExitCode) Error() string {
	return fmt.Sprintf("exit %d: %s", it.Code, it.Message)
}

// ExitCodeFor maps error kinds to process exit codes.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		usage    *UsageError
		terminal *TerminalIOError
		prompt   *PromptParseError
		exit     ExitCode
	)
	switch {
	case errors.As(err, &exit):
		return exit.Code
	case errors.As(err, &usage):
		return ExitUsage
	case errors.As(err, &terminal):
		return ExitTerminal
	case errors.As(err, &prompt):
		return ExitPrompt
	default:
		return ExitAction
	}
}
