// Package settings holds the farmer configuration file and its locations.
package settings

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/subspace/subspace-cli/common"
)

const (
	DefaultChain         = `gemini-3h`
	DefaultPlotSize      = `100G`
	DefaultNodeCommand   = `subspace-node run --chain {chain} --base-path {node_dir} --name {node_name} --farmer`
	DefaultFarmerCommand = `subspace-farmer farm --reward-address {reward_address} path={plot_dir},size={plot_size}`
	DefaultRotateSize    = 10 * 1024 * 1024
)

var (
	ErrNotInitialized = errors.New("config file not found, run `subspace init` first")

	// ss58 addresses are base58 without 0, O, I and l.
	rewardPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{46,50}$`)
	sizePattern   = regexp.MustCompile(`^(?i)(\d+)\s*([KMGT]?)(i?B)?$`)
	chains        = []string{"gemini-3h", "devnet", "dev"}
)

type Farmer struct {
	RewardAddress string `mapstructure:"reward_address"`
	PlotDirectory string `mapstructure:"plot_directory"`
	PlotSize      string `mapstructure:"plot_size"`
}

type Node struct {
	Chain     string `mapstructure:"chain"`
	Name      string `mapstructure:"name"`
	Directory string `mapstructure:"directory"`
}

type Commands struct {
	Node   string `mapstructure:"node"`
	Farmer string `mapstructure:"farmer"`
}

type Logs struct {
	Opener     string `mapstructure:"opener"`
	RotateSize int64  `mapstructure:"rotate_size"`
}

type Config struct {
	Farmer   Farmer   `mapstructure:"farmer"`
	Node     Node     `mapstructure:"node"`
	Commands Commands `mapstructure:"commands"`
	Logs     Logs     `mapstructure:"logs"`
}

func Chains() []string {
	return append([]string(nil), chains...)
}

func newViper(paths Paths) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(common.SUBSPACE_ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("farmer.reward_address", "")
	v.SetDefault("farmer.plot_directory", filepath.Join(paths.FarmerDir, "plots"))
	v.SetDefault("farmer.plot_size", DefaultPlotSize)
	v.SetDefault("node.chain", DefaultChain)
	v.SetDefault("node.name", "")
	v.SetDefault("node.directory", paths.NodeDir)
	v.SetDefault("commands.node", DefaultNodeCommand)
	v.SetDefault("commands.farmer", DefaultFarmerCommand)
	v.SetDefault("logs.opener", "")
	v.SetDefault("logs.rotate_size", DefaultRotateSize)
	return v
}

// Load reads the config file at paths.ConfigFile, with SUBSPACE_* environment
// variables taking precedence over file values.
func Load(paths Paths) (*Config, error) {
	if _, err := os.Stat(paths.ConfigFile); errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotInitialized
	}
	v := newViper(paths)
	v.SetConfigFile(paths.ConfigFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", paths.ConfigFile, err)
	}
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", paths.ConfigFile, err)
	}
	common.Debug("Loaded settings from %q.", paths.ConfigFile)
	return config, nil
}

// Defaults returns a config populated with default values only.
func Defaults(paths Paths) *Config {
	config := &Config{}
	if err := newViper(paths).Unmarshal(config); err != nil {
		common.Uncritical("settings defaults", err)
	}
	return config
}

func (it *Config) Save(target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating config folder: %w", err)
	}
	v := viper.New()
	v.Set("farmer.reward_address", it.Farmer.RewardAddress)
	v.Set("farmer.plot_directory", it.Farmer.PlotDirectory)
	v.Set("farmer.plot_size", it.Farmer.PlotSize)
	v.Set("node.chain", it.Node.Chain)
	v.Set("node.name", it.Node.Name)
	v.Set("node.directory", it.Node.Directory)
	v.Set("commands.node", it.Commands.Node)
	v.Set("commands.farmer", it.Commands.Farmer)
	v.Set("logs.opener", it.Logs.Opener)
	v.Set("logs.rotate_size", it.Logs.RotateSize)
	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(target); err != nil {
		return fmt.Errorf("writing %q: %w", target, err)
	}
	common.Debug("Saved settings to %q.", target)
	return nil
}

func (it *Config) Validate() error {
	if !ValidRewardAddress(it.Farmer.RewardAddress) {
		return fmt.Errorf("reward address %q is not a valid ss58 address", it.Farmer.RewardAddress)
	}
	if _, err := ParsePlotSize(it.Farmer.PlotSize); err != nil {
		return err
	}
	if len(it.Farmer.PlotDirectory) == 0 {
		return errors.New("plot directory is missing")
	}
	if len(it.Node.Name) == 0 {
		return errors.New("node name is missing")
	}
	if len(it.Node.Chain) == 0 {
		return errors.New("chain is missing")
	}
	return nil
}

func ValidRewardAddress(address string) bool {
	return rewardPattern.MatchString(address)
}

// ParsePlotSize parses sizes like 100G, 2T or 500GiB into bytes. Minimum is 1G.
func ParsePlotSize(text string) (uint64, error) {
	match := sizePattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return 0, fmt.Errorf("plot size %q is not like 100G", text)
	}
	amount, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("plot size %q: %w", text, err)
	}
	shift := map[string]uint{"": 0, "K": 10, "M": 20, "G": 30, "T": 40}[strings.ToUpper(match[2])]
	if amount > math.MaxUint64>>shift {
		return 0, fmt.Errorf("plot size %q is too large", text)
	}
	size := amount << shift
	if size < 1<<30 {
		return 0, fmt.Errorf("plot size %q is below minimum of 1G", text)
	}
	return size, nil
}
