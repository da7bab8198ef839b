package operations

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/dchest/siphash"
	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/pretty"
	"github.com/subspace/subspace-cli/settings"
	"github.com/subspace/subspace-cli/wizard"
)

var (
	namePattern = regexp.MustCompile(`^[\w.-]+$`)
	anything    = regexp.MustCompile(`\S`)
)

const (
	nameKey0 = 0x7375627370616365
	nameKey1 = 0x636c692d6e616d65
)

// DefaultNodeName derives a stable, mostly unique node name from the host.
func DefaultNodeName(hostname, home string) string {
	if len(hostname) == 0 {
		hostname = "farmer"
	}
	digest := siphash.Hash(nameKey0, nameKey1, []byte(hostname+"|"+home))
	return fmt.Sprintf("%s-%04x", hostname, digest&0xffff)
}

func rewardValidator(input string) error {
	if !settings.ValidRewardAddress(input) {
		return errors.New("reward address must be a valid ss58 address")
	}
	return nil
}

func plotSizeValidator(input string) error {
	_, err := settings.ParsePlotSize(input)
	return err
}

func (it *Local) Init(ctx context.Context) error {
	if _, err := os.Stat(it.Paths.ConfigFile); err == nil {
		overwrite, err := it.Prompter.Confirm(fmt.Sprintf("Config %q already exists, overwrite it?", it.Paths.ConfigFile), false)
		if err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	}

	config := settings.Defaults(it.Paths)
	hostname, _ := os.Hostname()
	home, _ := os.UserHomeDir()

	steps := []struct {
		question  string
		defaults  string
		validator wizard.Validator
		target    *string
	}{
		{
			"Enter your farmer/reward address", "",
			rewardValidator,
			&config.Farmer.RewardAddress,
		},
		{
			"Enter your node name to be identified on the network", DefaultNodeName(hostname, home),
			wizard.ValidatePattern(namePattern, "Node name can only have letters, digits, dots, underscores and hyphens."),
			&config.Node.Name,
		},
		{
			"Specify a path for storing plot files", config.Farmer.PlotDirectory,
			wizard.ValidatePattern(anything, "Plot path cannot be empty."),
			&config.Farmer.PlotDirectory,
		},
		{
			"Specify a plot size (defaults to 100G, minimum 1G)", config.Farmer.PlotSize,
			plotSizeValidator,
			&config.Farmer.PlotSize,
		},
		{
			"Specify the chain to farm", config.Node.Chain,
			wizard.ValidateMember(settings.Chains(), fmt.Sprintf("Chain must be one of %v.", settings.Chains())),
			&config.Node.Chain,
		},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		reply, err := it.Prompter.Ask(step.question, step.defaults, step.validator)
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		*step.target = reply
	}
	config.Farmer.PlotDirectory = settings.ExpandPath(config.Farmer.PlotDirectory)

	if err := config.Validate(); err != nil {
		return err
	}
	if err := config.Save(it.Paths.ConfigFile); err != nil {
		return err
	}
	pretty.Success(fmt.Sprintf("Configuration saved to %s", it.Paths.ConfigFile))
	common.Stdout("Run %ssubspace farm%s to start farming.\n", pretty.Bold, pretty.Reset)
	return nil
}
