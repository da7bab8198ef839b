// Package summary keeps the farming summary file: initial plotting state and
// the rewards collected so far.
package summary

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// One SSC is 10^18 shannons.
const decimals = 18

type Summary struct {
	InitialPlottingFinished bool      `yaml:"initial_plotting_finished"`
	FarmedBlockCount        uint64    `yaml:"farmed_block_count"`
	VoteCount               uint64    `yaml:"vote_count"`
	TotalRewards            string    `yaml:"total_rewards"`
	LastStarted             time.Time `yaml:"last_started,omitempty"`
}

// Load returns an empty summary when the file does not exist yet.
func Load(filename string) (*Summary, error) {
	content, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return &Summary{TotalRewards: "0"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading summary %q: %w", filename, err)
	}
	result := &Summary{}
	if err := yaml.Unmarshal(content, result); err != nil {
		return nil, fmt.Errorf("decoding summary %q: %w", filename, err)
	}
	if len(result.TotalRewards) == 0 {
		result.TotalRewards = "0"
	}
	return result, nil
}

func (it *Summary) Save(filename string) error {
	content, err := yaml.Marshal(it)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o750); err != nil {
		return err
	}
	temporary := filename + ".tmp"
	if err := os.WriteFile(temporary, content, 0o640); err != nil {
		return err
	}
	return os.Rename(temporary, filename)
}

// Update loads, mutates and stores the summary in one step.
func Update(filename string, change func(*Summary)) error {
	current, err := Load(filename)
	if err != nil {
		return err
	}
	change(current)
	return current.Save(filename)
}

func (it *Summary) AddReward(shannons *big.Int) error {
	total, ok := new(big.Int).SetString(it.TotalRewards, 10)
	if !ok {
		return fmt.Errorf("total rewards %q is not a number", it.TotalRewards)
	}
	it.TotalRewards = total.Add(total, shannons).String()
	return nil
}

// Rewards formats total rewards as SSC with trailing zeros removed.
func (it *Summary) Rewards() string {
	total, ok := new(big.Int).SetString(it.TotalRewards, 10)
	if !ok {
		return "unknown"
	}
	return FormatSSC(total)
}

func FormatSSC(shannons *big.Int) string {
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(decimals), nil)
	whole, fraction := new(big.Int).QuoRem(shannons, unit, new(big.Int))
	if fraction.Sign() == 0 {
		return fmt.Sprintf("%s SSC", whole)
	}
	digits := fraction.String()
	digits = strings.Repeat("0", decimals-len(digits)) + digits
	return fmt.Sprintf("%s.%s SSC", whole, strings.TrimRight(digits, "0"))
}
