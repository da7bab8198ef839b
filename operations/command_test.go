package operations_test

import (
	"testing"

	"github.com/subspace/subspace-cli/hamlet"
	"github.com/subspace/subspace-cli/operations"
)

func TestCatalogOrderIsCanonical(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Equal([]string{"init", "farm", "wipe", "info", "open logs directory"}, operations.Labels())
	entries := operations.Catalog()
	must_be.Length(5, entries)
	for at, kind := range []operations.Kind{operations.Init, operations.Farm, operations.Wipe, operations.Info, operations.OpenLogs} {
		must_be.Equal(kind, entries[at].Kind)
	}
	must_be.Equal("open-logs", entries[4].Use)
}

func TestCatalogIsACopy(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	entries := operations.Catalog()
	entries[0].Label = "changed"
	must_be.Equal("init", operations.Catalog()[0].Label)
}

func TestFlagSchemaPerKind(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	names := func(kind operations.Kind) []string {
		entry, ok := operations.Lookup(kind)
		must_be.True(ok)
		result := []string{}
		for _, flag := range entry.Flags {
			result = append(result, flag.Name)
		}
		return result
	}
	must_be.Equal([]string{"verbose", "executor", "no-rotation"}, names(operations.Farm))
	must_be.Equal([]string{"farmer", "node"}, names(operations.Wipe))
	must_be.Equal([]string{}, names(operations.Init))
	must_be.Equal([]string{}, names(operations.Info))
	must_be.Equal([]string{}, names(operations.OpenLogs))
}

func TestWithFlagsIgnoresForeignFlags(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	all := map[string]bool{"verbose": true, "executor": true, "no-rotation": true, "farmer": true, "node": true}
	must_be.Equal(operations.Command{Kind: operations.Farm, Verbose: true, Executor: true, NoRotation: true}, operations.WithFlags(operations.Farm, all))
	must_be.Equal(operations.Command{Kind: operations.Wipe, Farmer: true, Node: true}, operations.WithFlags(operations.Wipe, all))
	must_be.Equal(operations.Command{Kind: operations.Info}, operations.WithFlags(operations.Info, all))
	must_be.Equal("wipe{farmer: true, node: true}", operations.WithFlags(operations.Wipe, all).String())
	must_be.Equal("open logs directory", operations.OpenLogs.String())
}
