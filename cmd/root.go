package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/operations"
)

// ErrHelpShown means help or version text was printed and nothing else
// should happen.
var ErrHelpShown = errors.New("help shown")

// Invocation is the outcome of parsing the command line. A nil Command means
// no subcommand was given and the menu should be shown.
type Invocation struct {
	Command    *operations.Command
	Debug      bool
	Trace      bool
	Silent     bool
	Colorless  bool
	ConfigFile string
}

func newRootCommand(result *Invocation, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   common.PRODUCT_NAME,
		Short: "Subspace farmer command line",
		Long: `Subspace CLI sets up and runs a subspace node and farmer pair.

Run it without a command to pick an action from an interactive menu.`,
		Version:       common.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result.Command = nil
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(out)
	root.SetErr(out)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return common.NewUsageError(err, "%s", cmd.CommandPath())
	})

	root.PersistentFlags().BoolVarP(&result.Silent, "silent", "", false, "Be less verbose on output.")
	root.PersistentFlags().BoolVarP(&result.Debug, "debug", "", false, "Turn on debugging output.")
	root.PersistentFlags().BoolVarP(&result.Trace, "trace", "", false, "Turn on tracing output.")
	root.PersistentFlags().BoolVarP(&result.Colorless, "colorless", "", false, "Do not use colors in output.")
	root.PersistentFlags().StringVarP(&result.ConfigFile, "config", "", "", "Use this config file instead of the default one.")

	for _, entry := range operations.Catalog() {
		root.AddCommand(newActionCommand(entry, result))
	}
	return root
}

func newActionCommand(entry operations.Entry, result *Invocation) *cobra.Command {
	values := make(map[string]*bool, len(entry.Flags))
	action := &cobra.Command{
		Use:   entry.Use,
		Short: entry.Short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := make(map[string]bool, len(values))
			for name, value := range values {
				flags[name] = *value
			}
			command := operations.WithFlags(entry.Kind, flags)
			result.Command = &command
			return nil
		},
	}
	for _, flag := range entry.Flags {
		value := new(bool)
		action.Flags().BoolVarP(value, flag.Name, flag.Shorthand, false, flag.Usage)
		values[flag.Name] = value
	}
	return action
}

// Parse resolves the command line into an Invocation. Help and version
// requests are printed to out and reported as ErrHelpShown. Anything the
// parser rejects comes back as *common.UsageError.
func Parse(args []string, out io.Writer) (*Invocation, error) {
	result := &Invocation{}
	root := newRootCommand(result, out)
	root.SetArgs(args)
	executed, err := root.ExecuteC()
	if err != nil {
		var usage *common.UsageError
		if errors.As(err, &usage) {
			return nil, usage
		}
		return nil, common.NewUsageError(err, "%s", root.Name())
	}
	if executed.Name() == "help" {
		return nil, ErrHelpShown
	}
	if asked, _ := executed.Flags().GetBool("help"); asked {
		return nil, ErrHelpShown
	}
	if asked, _ := executed.Flags().GetBool("version"); asked && executed == root {
		return nil, ErrHelpShown
	}
	return result, nil
}

// Resolve parses args into a Command. It returns nil and no error when no
// command was given.
func Resolve(args []string) (*operations.Command, error) {
	invocation, err := Parse(args, io.Discard)
	if err != nil {
		return nil, err
	}
	return invocation.Command, nil
}
