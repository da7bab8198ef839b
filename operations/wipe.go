package operations

import (
	"context"
	"errors"
	"os"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/pretty"
	"github.com/subspace/subspace-cli/settings"
)

// Wipe removes farmer data, node data, or without options both of them and
// the config file too.
func (it *Local) Wipe(ctx context.Context, options WipeOptions) error {
	if err := it.refuseWhenFarming(); err != nil {
		return err
	}
	config, err := settings.Load(it.Paths)
	if errors.Is(err, settings.ErrNotInitialized) {
		config, err = settings.Defaults(it.Paths), nil
	}
	if err != nil {
		return err
	}

	everything := !options.Farmer && !options.Node
	var targets []string
	if options.Farmer || everything {
		targets = append(targets, config.Farmer.PlotDirectory, it.Paths.FarmerDir, it.Paths.SummaryFile)
	}
	if options.Node || everything {
		targets = append(targets, config.Node.Directory, it.Paths.NodeDir)
	}
	if everything {
		targets = append(targets, it.Paths.ConfigFile)
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := removeAll(target); err != nil {
			return err
		}
	}
	switch {
	case everything:
		pretty.Success("Wiped farmer, node and config.")
	case options.Farmer && options.Node:
		pretty.Success("Wiped farmer and node.")
	case options.Farmer:
		pretty.Success("Wiped farmer.")
	default:
		pretty.Success("Wiped node.")
	}
	if _, err := os.Stat(it.Paths.ConfigFile); err == nil {
		common.Debug("Config %q kept.", it.Paths.ConfigFile)
	}
	return nil
}
