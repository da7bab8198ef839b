// Package menu runs the interactive command picker shown when the CLI is
// started without a subcommand.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/operations"
	"github.com/subspace/subspace-cli/pretty"
	"github.com/subspace/subspace-cli/wizard"
)

type Phase int

const (
	Rendering Phase = iota
	AwaitingDetails
	Dispatching
	Cancelled
)

func (it Phase) String() string {
	switch it {
	case Rendering:
		return "rendering"
	case AwaitingDetails:
		return "awaiting details"
	case Dispatching:
		return "dispatching"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Phase(%d)", int(it))
}

var farmQuestions = []string{
	"Do you want to initialize farmer in verbose mode?",
	"Do you want to be an executor?",
	"Do you want to disable rotation for logs?",
}

// Session is one run of the menu. It is not reusable.
type Session struct {
	Terminal Terminal
	Keys     KeySource
	Out      io.Writer
	Prompter *wizard.Prompter
	KeyMap   KeyMap
	Theme    pretty.MenuTheme

	entries []operations.Entry
	state   *State
	phase   Phase
	redraws int
}

func NewSession(terminal Terminal, keys KeySource, out io.Writer, prompter *wizard.Prompter) *Session {
	return &Session{
		Terminal: terminal,
		Keys:     keys,
		Out:      out,
		Prompter: prompter,
		KeyMap:   DefaultKeyMap(),
		Theme:    pretty.DefaultMenuTheme(),
	}
}

func (it *Session) Phase() Phase {
	return it.phase
}

// Redraws counts frames drawn in response to navigation.
func (it *Session) Redraws() int {
	return it.redraws
}

func (it *Session) State() *State {
	return it.state
}

// Run shows the menu and returns the chosen command with all of its
// options resolved. A nil command with nil error means the user cancelled.
func (it *Session) Run(ctx context.Context) (*operations.Command, error) {
	it.entries = operations.Catalog()
	it.phase = Rendering

	chosen, err := it.choose(ctx)
	if err != nil {
		return nil, err
	}
	if chosen < 0 {
		it.phase = Cancelled
		common.Debug("Menu cancelled.")
		return nil, nil
	}

	it.phase = AwaitingDetails
	command, err := it.details(it.entries[chosen].Kind)
	if err != nil {
		return nil, err
	}
	it.phase = Dispatching
	return &command, nil
}

// choose owns raw mode for its whole duration. Raw mode is released before
// choose returns on every path, and before the cursor is moved below the
// block on selection or cancel.
func (it *Session) choose(ctx context.Context) (chosen int, err error) {
	release := common.HoldLogs()
	if err := it.Terminal.MakeRaw(); err != nil {
		release()
		return -1, &common.TerminalIOError{Op: "enable raw mode", Err: err}
	}
	restored := false
	restore := func() error {
		if restored {
			return nil
		}
		restored = true
		return it.Terminal.Restore()
	}
	defer func() {
		failure := restore()
		release()
		if failure != nil && err == nil {
			chosen, err = -1, &common.TerminalIOError{Op: "restore mode", Err: failure}
		}
	}()

	row, err := it.Terminal.CursorRow()
	if err != nil {
		return -1, &common.TerminalIOError{Op: "read cursor position", Err: err}
	}
	labels := make([]string, 0, len(it.entries))
	for _, entry := range it.entries {
		labels = append(labels, entry.Label)
	}
	it.state = NewState(labels, row)
	anchor, err := makeRoom(it.Out, row, it.Terminal.Height(), it.state.Height())
	if err != nil {
		return -1, &common.TerminalIOError{Op: "write", Err: err}
	}
	it.state.AnchorRow = anchor
	if err := it.draw(); err != nil {
		return -1, err
	}

	for {
		if ctx.Err() != nil {
			return -1, it.leave(restore)
		}
		pressed, err := it.Keys.ReadKey()
		if err != nil {
			return -1, &common.TerminalIOError{Op: "read key", Err: err}
		}
		switch {
		case key.Matches(pressed, it.KeyMap.Up):
			if it.state.Up() {
				it.redraws++
				if err := it.draw(); err != nil {
					return -1, err
				}
			}
		case key.Matches(pressed, it.KeyMap.Down):
			if it.state.Down() {
				it.redraws++
				if err := it.draw(); err != nil {
					return -1, err
				}
			}
		case key.Matches(pressed, it.KeyMap.Select):
			if err := it.leave(restore); err != nil {
				return -1, err
			}
			return it.state.Selected, nil
		case key.Matches(pressed, it.KeyMap.Cancel):
			return -1, it.leave(restore)
		default:
			common.Trace("Ignoring key %q.", pressed)
		}
	}
}

func (it *Session) draw() error {
	if _, err := io.WriteString(it.Out, frame(it.state, it.Theme)); err != nil {
		return &common.TerminalIOError{Op: "write", Err: err}
	}
	return nil
}

// leave drops raw mode first, then parks the cursor under the block.
func (it *Session) leave(restore func() error) error {
	if err := restore(); err != nil {
		return &common.TerminalIOError{Op: "restore mode", Err: err}
	}
	if _, err := io.WriteString(it.Out, below(it.state)); err != nil {
		return &common.TerminalIOError{Op: "write", Err: err}
	}
	return nil
}

// details collects options the command line would otherwise have given.
func (it *Session) details(kind operations.Kind) (operations.Command, error) {
	if kind != operations.Farm {
		return operations.Command{Kind: kind}, nil
	}
	answers := make([]bool, len(farmQuestions))
	for at, question := range farmQuestions {
		answer, err := it.Prompter.AskYesNo(question)
		var malformed *common.PromptParseError
		if errors.As(err, &malformed) {
			return operations.Command{}, err
		}
		if err != nil {
			return operations.Command{}, &common.TerminalIOError{Op: "read answer", Err: err}
		}
		answers[at] = answer
	}
	return operations.Command{
		Kind:       operations.Farm,
		Verbose:    answers[0],
		Executor:   answers[1],
		NoRotation: answers[2],
	}, nil
}
