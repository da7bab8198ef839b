package operations

import "fmt"

// Kind tags one of the five commands.
type Kind int

const (
	Init Kind = iota
	Farm
	Wipe
	Info
	OpenLogs
)

// FlagSpec describes one boolean flag of a command. All flags default to false.
type FlagSpec struct {
	Name      string
	Shorthand string
	Usage     string
}

// Entry ties a command kind to its labels and flags.
type Entry struct {
	Kind  Kind
	Label string
	Use   string
	Short string
	Flags []FlagSpec
}

// Command is a fully resolved request. Only the flags of its Kind are meaningful.
type Command struct {
	Kind       Kind
	Verbose    bool
	Executor   bool
	NoRotation bool
	Farmer     bool
	Node       bool
}

const (
	FlagVerbose    = `verbose`
	FlagExecutor   = `executor`
	FlagNoRotation = `no-rotation`
	FlagFarmer     = `farmer`
	FlagNode       = `node`
)

var catalog = []Entry{
	{
		Kind:  Init,
		Label: "init",
		Use:   "init",
		Short: "initializes the config file required for the farming",
	},
	{
		Kind:  Farm,
		Label: "farm",
		Use:   "farm",
		Short: "starting the farming process (along with node in the background)",
		Flags: []FlagSpec{
			{Name: FlagVerbose, Shorthand: "v", Usage: "print node and farmer output to the terminal too"},
			{Name: FlagExecutor, Shorthand: "e", Usage: "run the node as an executor"},
			{Name: FlagNoRotation, Usage: "do not rotate the previous log file"},
		},
	},
	{
		Kind:  Wipe,
		Label: "wipe",
		Use:   "wipe",
		Short: "wipes the node and farm instance (along with your plots)",
		Flags: []FlagSpec{
			{Name: FlagFarmer, Usage: "wipe only the farmer data (plots and summary)"},
			{Name: FlagNode, Usage: "wipe only the node data"},
		},
	},
	{
		Kind:  Info,
		Label: "info",
		Use:   "info",
		Short: "displays info about the farmer instance (i.e. total amount of rewards, and status of initial plotting)",
	},
	{
		Kind:  OpenLogs,
		Label: "open logs directory",
		Use:   "open-logs",
		Short: "opens the directory holding the farmer logs",
	},
}

// Catalog returns the commands in their canonical display order.
func Catalog() []Entry {
	return append([]Entry(nil), catalog...)
}

// Labels returns the menu labels in canonical order.
func Labels() []string {
	result := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		result = append(result, entry.Label)
	}
	return result
}

func Lookup(kind Kind) (Entry, bool) {
	for _, entry := range catalog {
		if entry.Kind == kind {
			return entry, true
		}
	}
	return Entry{}, false
}

func (it Kind) String() string {
	if entry, ok := Lookup(it); ok {
		return entry.Label
	}
	return fmt.Sprintf("Kind(%d)", int(it))
}

// WithFlags builds a command of the given kind from flag values by name.
// Flags not belonging to the kind are ignored.
func WithFlags(kind Kind, flags map[string]bool) Command {
	result := Command{Kind: kind}
	switch kind {
	case Farm:
		result.Verbose = flags[FlagVerbose]
		result.Executor = flags[FlagExecutor]
		result.NoRotation = flags[FlagNoRotation]
	case Wipe:
		result.Farmer = flags[FlagFarmer]
		result.Node = flags[FlagNode]
	}
	return result
}

func (it Command) String() string {
	switch it.Kind {
	case Farm:
		return fmt.Sprintf("farm{verbose: %v, executor: %v, noRotation: %v}", it.Verbose, it.Executor, it.NoRotation)
	case Wipe:
		return fmt.Sprintf("wipe{farmer: %v, node: %v}", it.Farmer, it.Node)
	}
	return it.Kind.String()
}
