package operations

import (
	"context"
	"errors"
	"fmt"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/pretty"
	"github.com/subspace/subspace-cli/settings"
	"github.com/subspace/subspace-cli/summary"
)

func (it *Local) Info(ctx context.Context) error {
	config, err := settings.Load(it.Paths)
	if errors.Is(err, settings.ErrNotInitialized) {
		pretty.Warning("No config found at %q.", it.Paths.ConfigFile)
	}
	if err != nil {
		return err
	}
	record, err := summary.Load(it.Paths.SummaryFile)
	if err != nil {
		return err
	}

	plotting := "in progress"
	if record.InitialPlottingFinished {
		plotting = "finished"
	}
	running := "no"
	if pids, err := it.RunningFarmers(); err == nil && len(pids) > 0 {
		running = fmt.Sprintf("yes (pids %v)", pids)
	}
	started := "never"
	if !record.LastStarted.IsZero() {
		started = record.LastStarted.Local().Format("2006-01-02 15:04:05")
	}

	rows := [][2]string{
		{"Config file", it.Paths.ConfigFile},
		{"Reward address", config.Farmer.RewardAddress},
		{"Node name", config.Node.Name},
		{"Chain", config.Node.Chain},
		{"Plot", fmt.Sprintf("%s (%s)", config.Farmer.PlotDirectory, config.Farmer.PlotSize)},
		{"Initial plotting", plotting},
		{"Farmed blocks", fmt.Sprintf("%d", record.FarmedBlockCount)},
		{"Votes", fmt.Sprintf("%d", record.VoteCount)},
		{"Total rewards", record.Rewards()},
		{"Last started", started},
		{"Farmer running", running},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s%-18s%s %s", pretty.Grey, row[0]+":", pretty.Reset, row[1]))
	}
	common.Stdout("%s", pretty.Boxed("Farmer information", lines, pretty.ActiveBoxStyle()))
	return nil
}
