package operations

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/settings"
	"github.com/subspace/subspace-cli/summary"
)

const (
	logName         = `subspace-cli.log`
	keptRotations   = 5
	stopGracePeriod = 10 * time.Second
)

func (it *Local) Farm(ctx context.Context, options FarmOptions) error {
	config, err := settings.Load(it.Paths)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %q: %w", it.Paths.ConfigFile, err)
	}
	if err := it.refuseWhenFarming(); err != nil {
		return err
	}

	nodeArgs, err := expandCommand(config.Commands.Node, config)
	if err != nil {
		return err
	}
	if options.Executor {
		nodeArgs = append(nodeArgs, "--executor")
	}
	farmerArgs, err := expandCommand(config.Commands.Farmer, config)
	if err != nil {
		return err
	}

	for _, folder := range []string{it.Paths.LogDir, config.Node.Directory, config.Farmer.PlotDirectory} {
		if err := os.MkdirAll(folder, 0o750); err != nil {
			return fmt.Errorf("creating %q: %w", folder, err)
		}
	}
	logfile := filepath.Join(it.Paths.LogDir, logName)
	if !options.NoRotation {
		if err := rotateLog(logfile, config.Logs.RotateSize); err != nil {
			common.Uncritical("log rotation", err)
		}
	}
	sink, err := os.OpenFile(logfile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("opening log %q: %w", logfile, err)
	}
	defer sink.Close()

	var output io.Writer = sink
	if options.Verbose {
		output = io.MultiWriter(sink, it.Stdout)
	}

	err = summary.Update(it.Paths.SummaryFile, func(record *summary.Summary) {
		record.LastStarted = time.Now().UTC().Truncate(time.Second)
	})
	common.Uncritical("summary update", err)

	common.Log("Starting node and farmer on chain %q, logging to %q.", config.Node.Chain, logfile)
	stopwatch := common.Stopwatch("Farming stopped after")
	defer stopwatch.Log()
	tracker := summary.NewTracker(it.Paths.SummaryFile)
	observe := func(line string) {
		if changed, err := tracker.Observe(line); changed {
			common.Debug("Summary updated from %q.", line)
		} else {
			common.Uncritical("summary update", err)
		}
	}
	return supervise(ctx, output, observe, map[string][]string{
		"node":   nodeArgs,
		"farmer": farmerArgs,
	})
}

// supervise runs all processes together. When one of them ends, the rest
// are stopped. Processes stopped that way, or by ctx, are not failures.
// Every output line is passed to observe.
func supervise(ctx context.Context, output io.Writer, observe func(string), processes map[string][]string) error {
	group, scoped := errgroup.WithContext(ctx)
	scoped, stop := context.WithCancel(scoped)
	defer stop()

	output = &lockedWriter{target: output}
	names := make([]string, 0, len(processes))
	for name := range processes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		name := name
		args := processes[name]
		writer := newLineWriter(fmt.Sprintf("[%s] ", name), output, observe)
		group.Go(func() error {
			defer stop()
			defer writer.Flush()
			command := exec.CommandContext(scoped, args[0], args[1:]...)
			command.Stdout = writer
			command.Stderr = writer
			command.Cancel = func() error {
				return command.Process.Signal(os.Interrupt)
			}
			command.WaitDelay = stopGracePeriod
			common.Debug("Running %s: %q", name, args)
			err := command.Run()
			if scoped.Err() != nil {
				common.Debug("%s stopped: %v", name, err)
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s exited: %w", name, err)
			}
			common.Log("%s exited.", name)
			return nil
		})
	}
	return group.Wait()
}

// rotateLog moves logfile aside once it has grown to limit bytes, keeping
// only the newest rotations. Rotations are numbered, the highest is newest.
func rotateLog(logfile string, limit int64) error {
	stat, err := os.Stat(logfile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if stat.Size() < limit {
		return nil
	}
	previous, err := rotations(logfile)
	if err != nil {
		return err
	}
	next := 1
	if len(previous) > 0 {
		next = previous[len(previous)-1] + 1
	}
	rotated := fmt.Sprintf("%s.%d", logfile, next)
	if err := os.Rename(logfile, rotated); err != nil {
		return err
	}
	common.Debug("Rotated log to %q.", rotated)
	previous = append(previous, next)
	for len(previous) > keptRotations {
		if err := os.Remove(fmt.Sprintf("%s.%d", logfile, previous[0])); err != nil {
			return err
		}
		previous = previous[1:]
	}
	return nil
}

// rotations lists the sequence numbers of rotated logs in ascending order.
func rotations(logfile string) ([]int, error) {
	entries, err := os.ReadDir(filepath.Dir(logfile))
	if err != nil {
		return nil, err
	}
	prefix := filepath.Base(logfile) + "."
	result := make([]int, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		number, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
		if err != nil || number < 1 {
			continue
		}
		result = append(result, number)
	}
	sort.Ints(result)
	return result, nil
}
