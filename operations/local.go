package operations

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/shlex"
	"github.com/mitchellh/go-ps"
	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/settings"
	"github.com/subspace/subspace-cli/wizard"
)

var (
	farmerExecutables = []string{"subspace-farmer", "subspace-node"}
)

// Local runs the actions on this machine.
type Local struct {
	Paths    settings.Paths
	Prompter *wizard.Prompter
	Stdout   io.Writer

	processes func() ([]ps.Process, error)
}

func NewLocal(paths settings.Paths, prompter *wizard.Prompter) *Local {
	return &Local{
		Paths:     paths,
		Prompter:  prompter,
		Stdout:    os.Stdout,
		processes: ps.Processes,
	}
}

// RunningFarmers lists pids of farmer and node processes other than this one.
func (it *Local) RunningFarmers() ([]int, error) {
	processes, err := it.processes()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	self := os.Getpid()
	result := []int{}
	for _, process := range processes {
		if process.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(strings.ToLower(process.Executable()), ".exe")
		for _, candidate := range farmerExecutables {
			if name == candidate {
				result = append(result, process.Pid())
			}
		}
	}
	return result, nil
}

func (it *Local) refuseWhenFarming() error {
	pids, err := it.RunningFarmers()
	if err != nil {
		common.Uncritical("process check", err)
		return nil
	}
	if len(pids) > 0 {
		return fmt.Errorf("farmer is already running (pids %v), stop it first", pids)
	}
	return nil
}

// expandCommand splits template into arguments and then fills placeholders,
// so values containing spaces stay single arguments.
func expandCommand(template string, config *settings.Config) ([]string, error) {
	parts, err := shlex.Split(template)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", template, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("command template is empty")
	}
	replacer := strings.NewReplacer(
		"{chain}", config.Node.Chain,
		"{node_dir}", config.Node.Directory,
		"{node_name}", config.Node.Name,
		"{reward_address}", config.Farmer.RewardAddress,
		"{plot_dir}", config.Farmer.PlotDirectory,
		"{plot_size}", config.Farmer.PlotSize,
	)
	for at, part := range parts {
		parts[at] = replacer.Replace(part)
	}
	return parts, nil
}

// removeAll refuses to delete filesystem roots and the user home.
func removeAll(location string) error {
	if len(location) == 0 {
		return nil
	}
	clean := filepath.Clean(settings.ExpandPath(location))
	home, _ := os.UserHomeDir()
	if clean == filepath.Dir(clean) || (len(home) > 0 && clean == filepath.Clean(home)) {
		return fmt.Errorf("refusing to remove %q", clean)
	}
	if _, err := os.Stat(clean); os.IsNotExist(err) {
		return nil
	}
	common.Log("Removing %q.", clean)
	return os.RemoveAll(clean)
}

// lockedWriter serializes writes of concurrent producers to one target.
type lockedWriter struct {
	sync.Mutex
	target io.Writer
}

func (it *lockedWriter) Write(blob []byte) (int, error) {
	it.Lock()
	defer it.Unlock()
	return it.target.Write(blob)
}

// lineWriter prefixes every complete line written through it. When observe
// is set, it also sees each line without the prefix.
type lineWriter struct {
	sync.Mutex
	prefix  string
	target  io.Writer
	observe func(string)
	buffer  []byte
}

func newLineWriter(prefix string, target io.Writer, observe func(string)) *lineWriter {
	return &lineWriter{prefix: prefix, target: target, observe: observe}
}

func (it *lineWriter) emit(line []byte) error {
	if _, err := fmt.Fprintf(it.target, "%s%s\n", it.prefix, line); err != nil {
		return err
	}
	if it.observe != nil {
		it.observe(string(line))
	}
	return nil
}

func (it *lineWriter) Write(blob []byte) (int, error) {
	it.Lock()
	defer it.Unlock()
	it.buffer = append(it.buffer, blob...)
	for {
		at := bytes.IndexByte(it.buffer, '\n')
		if at < 0 {
			break
		}
		if err := it.emit(it.buffer[:at]); err != nil {
			return 0, err
		}
		it.buffer = it.buffer[at+1:]
	}
	return len(blob), nil
}

func (it *lineWriter) Flush() error {
	it.Lock()
	defer it.Unlock()
	if len(it.buffer) == 0 {
		return nil
	}
	err := it.emit(it.buffer)
	it.buffer = nil
	return err
}
