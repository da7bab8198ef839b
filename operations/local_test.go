package operations

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/hamlet"
	"github.com/subspace/subspace-cli/settings"
	"github.com/subspace/subspace-cli/summary"
	"github.com/subspace/subspace-cli/wizard"
)

const validAddress = `st6Jo9ZnEBVqvXWcoxThsBZpbDtCDBR6EP2CsjQp3n1ahR8TN`

type fakeProcess struct {
	pid  int
	name string
}

func (it fakeProcess) Pid() int           { return it.pid }
func (it fakeProcess) PPid() int          { return 1 }
func (it fakeProcess) Executable() string { return it.name }

func processList(list ...ps.Process) func() ([]ps.Process, error) {
	return func() ([]ps.Process, error) {
		return list, nil
	}
}

func newTestLocal(t *testing.T, input string) (*Local, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	sut := NewLocal(settings.PathsUnder(t.TempDir()), wizard.NewPrompter(strings.NewReader(input), out))
	sut.Stdout = out
	sut.processes = processList()
	return sut, out
}

func saveConfig(t *testing.T, sut *Local, change func(*settings.Config)) *settings.Config {
	t.Helper()
	config := settings.Defaults(sut.Paths)
	config.Farmer.RewardAddress = validAddress
	config.Node.Name = "alice"
	if change != nil {
		change(config)
	}
	if err := config.Save(sut.Paths.ConfigFile); err != nil {
		t.Fatal(err)
	}
	return config
}

func requireUnix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}
}

func TestRunningFarmersFiltersByExecutable(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut, _ := newTestLocal(t, "")
	sut.processes = processList(
		fakeProcess{10, "bash"},
		fakeProcess{11, "subspace-farmer"},
		fakeProcess{12, "Subspace-Node.exe"},
		fakeProcess{os.Getpid(), "subspace-node"},
	)
	pids, err := sut.RunningFarmers()
	must_be.Nil(err)
	must_be.Equal([]int{11, 12}, pids)
	must_be.Contains("already running", sut.refuseWhenFarming().Error())
}

func TestExpandCommandKeepsValuesWhole(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	config := &settings.Config{}
	config.Node.Chain = "gemini-3h"
	config.Node.Name = "my node"
	config.Farmer.PlotDirectory = "/plots"
	config.Farmer.PlotSize = "2T"

	args, err := expandCommand(`node --name {node_name} --chain={chain} "path={plot_dir},size={plot_size}"`, config)
	must_be.Nil(err)
	must_be.Equal([]string{"node", "--name", "my node", "--chain=gemini-3h", "path=/plots,size=2T"}, args)

	_, err = expandCommand("", config)
	wont_be.Nil(err)
}

func TestLineWriterPrefixesLines(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sink := &bytes.Buffer{}
	sut := newLineWriter("[node] ", sink, nil)
	sut.Write([]byte("one\ntw"))
	sut.Write([]byte("o\nthree"))
	must_be.Equal("[node] one\n[node] two\n", sink.String())
	must_be.Nil(sut.Flush())
	must_be.Equal("[node] one\n[node] two\n[node] three\n", sink.String())
}

func TestRotateLogKeepsNewest(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	folder := t.TempDir()
	logfile := filepath.Join(folder, logName)
	must_be.Nil(rotateLog(logfile, 1))

	for i := 0; i < keptRotations+2; i++ {
		must_be.Nil(os.WriteFile(logfile, []byte("content\n"), 0o640))
		must_be.Nil(rotateLog(logfile, 1))
	}
	rotated, err := filepath.Glob(logfile + ".*")
	must_be.Nil(err)
	must_be.Length(keptRotations, rotated)
	numbers, err := rotations(logfile)
	must_be.Nil(err)
	must_be.Equal([]int{3, 4, 5, 6, 7}, numbers)

	must_be.Nil(os.WriteFile(logfile, []byte("x"), 0o640))
	must_be.Nil(rotateLog(logfile, 1024))
	_, err = os.Stat(logfile)
	must_be.Nil(err)
}

func TestRotateLogKeepsBackToBackRuns(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	logfile := filepath.Join(t.TempDir(), logName)
	must_be.Nil(os.WriteFile(logfile, []byte("first run\n"), 0o640))
	must_be.Nil(rotateLog(logfile, 1))
	must_be.Nil(os.WriteFile(logfile, []byte("second run\n"), 0o640))
	must_be.Nil(rotateLog(logfile, 1))

	first, err := os.ReadFile(logfile + ".1")
	must_be.Nil(err)
	must_be.Equal("first run\n", string(first))
	second, err := os.ReadFile(logfile + ".2")
	must_be.Nil(err)
	must_be.Equal("second run\n", string(second))
}

func TestFarmRecordsFarmingEventsInSummary(t *testing.T) {
	requireUnix(t)
	must_be, _ := hamlet.Specifications(t)

	sut, _ := newTestLocal(t, "")
	saveConfig(t, sut, func(config *settings.Config) {
		config.Commands.Node = `sh -c "exec sleep 5"`
		config.Commands.Farmer = `sh -c "echo Initial plotting complete; echo Successfully signed reward hash 0x01; echo Successfully signed vote; echo Received reward of 1500000000000000000 shannons"`
	})

	must_be.Nil(sut.Farm(context.Background(), FarmOptions{}))

	record, err := summary.Load(sut.Paths.SummaryFile)
	must_be.Nil(err)
	must_be.True(record.InitialPlottingFinished)
	must_be.Equal(uint64(1), record.FarmedBlockCount)
	must_be.Equal(uint64(1), record.VoteCount)
	must_be.Equal("1.5 SSC", record.Rewards())
}

func TestFarmRunsNodeAndFarmer(t *testing.T) {
	requireUnix(t)
	must_be, _ := hamlet.Specifications(t)

	sut, out := newTestLocal(t, "")
	saveConfig(t, sut, func(config *settings.Config) {
		config.Commands.Node = `sh -c "echo node {chain}; exec sleep 5"`
		config.Commands.Farmer = `sh -c "echo farmer {node_name}"`
	})

	must_be.Nil(sut.Farm(context.Background(), FarmOptions{Verbose: true}))

	content, err := os.ReadFile(filepath.Join(sut.Paths.LogDir, logName))
	must_be.Nil(err)
	must_be.Contains("[farmer] farmer alice", string(content))
	must_be.Contains("[farmer] farmer alice", out.String())

	record, err := summary.Load(sut.Paths.SummaryFile)
	must_be.Nil(err)
	must_be.True(!record.LastStarted.IsZero())
}

func TestFarmReportsFailingProcess(t *testing.T) {
	requireUnix(t)
	must_be, wont_be := hamlet.Specifications(t)

	sut, _ := newTestLocal(t, "")
	saveConfig(t, sut, func(config *settings.Config) {
		config.Commands.Node = `sh -c "exec sleep 5"`
		config.Commands.Farmer = `sh -c "exit 3"`
	})
	err := sut.Farm(context.Background(), FarmOptions{NoRotation: true})
	wont_be.Nil(err)
	must_be.Contains("farmer exited", err.Error())
}

func TestFarmNeedsConfig(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut, _ := newTestLocal(t, "")
	must_be.Equal(settings.ErrNotInitialized, sut.Farm(context.Background(), FarmOptions{}))
}

func TestFarmRefusesWhenAlreadyRunning(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	sut, _ := newTestLocal(t, "")
	saveConfig(t, sut, nil)
	sut.processes = processList(fakeProcess{77, "subspace-farmer"})
	err := sut.Farm(context.Background(), FarmOptions{})
	wont_be.Nil(err)
	must_be.Contains("already running", err.Error())
}

func TestWipeScopes(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	exists := func(location string) bool {
		_, err := os.Stat(location)
		return err == nil
	}

	sut, _ := newTestLocal(t, "")
	config := saveConfig(t, sut, nil)
	for _, folder := range []string{config.Farmer.PlotDirectory, config.Node.Directory} {
		must_be.Nil(os.MkdirAll(folder, 0o750))
	}
	must_be.Nil(os.WriteFile(sut.Paths.SummaryFile, []byte("vote_count: 1\n"), 0o640))

	must_be.Nil(sut.Wipe(context.Background(), WipeOptions{Farmer: true}))
	wont_be.True(exists(config.Farmer.PlotDirectory))
	wont_be.True(exists(sut.Paths.SummaryFile))
	must_be.True(exists(config.Node.Directory))
	must_be.True(exists(sut.Paths.ConfigFile))

	must_be.Nil(sut.Wipe(context.Background(), WipeOptions{}))
	wont_be.True(exists(config.Node.Directory))
	wont_be.True(exists(sut.Paths.ConfigFile))
}

func TestRemoveAllRefusesRoots(t *testing.T) {
	_, wont_be := hamlet.Specifications(t)

	wont_be.Nil(removeAll(string(filepath.Separator)))
	if home, err := os.UserHomeDir(); err == nil {
		wont_be.Nil(removeAll(home))
	}
}

func TestInfoShowsConfigAndSummary(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut, _ := newTestLocal(t, "")
	saveConfig(t, sut, nil)
	must_be.Nil(summary.Update(sut.Paths.SummaryFile, func(it *summary.Summary) {
		it.InitialPlottingFinished = true
		it.TotalRewards = "1500000000000000000"
	}))

	captured := &bytes.Buffer{}
	restore := common.RedirectOutput(captured, &bytes.Buffer{})
	err := sut.Info(context.Background())
	restore()

	must_be.Nil(err)
	must_be.Contains(validAddress, captured.String())
	must_be.Contains("finished", captured.String())
	must_be.Contains("1.5 SSC", captured.String())
}

func TestInfoWithoutConfigFails(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	sut, _ := newTestLocal(t, "")
	restore := common.RedirectOutput(&bytes.Buffer{}, &bytes.Buffer{})
	defer restore()
	must_be.Equal(settings.ErrNotInitialized, sut.Info(context.Background()))
}

func TestOpenLogsUsesConfiguredOpener(t *testing.T) {
	requireUnix(t)
	must_be, wont_be := hamlet.Specifications(t)

	sut, out := newTestLocal(t, "")
	saveConfig(t, sut, func(config *settings.Config) {
		config.Logs.Opener = "echo opening"
	})
	restore := common.RedirectOutput(&bytes.Buffer{}, &bytes.Buffer{})
	defer restore()

	must_be.Nil(sut.OpenLogs(context.Background()))
	must_be.Contains("opening "+sut.Paths.LogDir, out.String())

	saveConfig(t, sut, func(config *settings.Config) {
		config.Logs.Opener = "false"
	})
	wont_be.Nil(sut.OpenLogs(context.Background()))
}

func TestInitWritesConfig(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	restore := common.RedirectOutput(&bytes.Buffer{}, &bytes.Buffer{})
	defer restore()

	answers := strings.Join([]string{validAddress, "bob", "", "1T", ""}, "\n") + "\n"
	sut, _ := newTestLocal(t, answers)
	must_be.Nil(sut.Init(context.Background()))

	config, err := settings.Load(sut.Paths)
	must_be.Nil(err)
	must_be.Equal(validAddress, config.Farmer.RewardAddress)
	must_be.Equal("bob", config.Node.Name)
	must_be.Equal("1T", config.Farmer.PlotSize)
	must_be.Equal(settings.DefaultChain, config.Node.Chain)
}

func TestInitRepromptsInvalidAnswers(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	restore := common.RedirectOutput(&bytes.Buffer{}, &bytes.Buffer{})
	defer restore()

	answers := strings.Join([]string{"nope", validAddress, "", "", "10M", "", "mainnet", "devnet"}, "\n") + "\n"
	sut, _ := newTestLocal(t, answers)
	must_be.Nil(sut.Init(context.Background()))

	config, err := settings.Load(sut.Paths)
	must_be.Nil(err)
	must_be.Equal(settings.DefaultPlotSize, config.Farmer.PlotSize)
	must_be.Equal("devnet", config.Node.Chain)
	must_be.True(strings.Contains(config.Node.Name, "-"))
}

func TestDefaultNodeNameIsStable(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	first := DefaultNodeName("box", "/home/a")
	must_be.Equal(first, DefaultNodeName("box", "/home/a"))
	wont_be.Equal(first, DefaultNodeName("box", "/home/b"))
	must_be.True(strings.HasPrefix(DefaultNodeName("", "/"), "farmer-"))
}
