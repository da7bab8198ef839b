package common

import "fmt"

type UsageError struct {
	Reason string
	Err    error
}

func NewUsageError(err error, form string, details ...interface{}) *UsageError {
	return &UsageError{
		Reason: fmt.Sprintf(form, details...),
		Err:    err,
	}
}

func (it *UsageError) Error() string {
	if it.Err != nil {
		return fmt.Sprintf("usage: %s: %v", it.Reason, it.Err)
	}
	return fmt.Sprintf("usage: %s", it.Reason)
}

func (it *UsageError) Unwrap() error {
	return it.Err
}

// TerminalIOError is fatal to an interactive session.
type TerminalIOError struct {
	Op  string
	Err error
}

func (it *TerminalIOError) Error() string {
	return fmt.Sprintf("terminal %s failed: %v", it.Op, it.Err)
}

func (it *TerminalIOError) Unwrap() error {
	return it.Err
}

type PromptParseError struct {
	Question string
	Answer   string
}

func (it *PromptParseError) Error() string {
	return fmt.Sprintf("invalid answer %q to %q, expected yes or no", it.Answer, it.Question)
}

// ActionError wraps a failed action. Hint is shown to the user after the
// error itself and is not part of Error().
type ActionError struct {
	Action string
	Hint   string
	Err    error
}

func (it *ActionError) Error() string {
	return fmt.Sprintf("%s failed: %v", it.Action, it.Err)
}

func (it *ActionError) Unwrap() error {
	return it.Err
}

func (it *ActionError) Suggestion() string {
	return it.Hint
}
