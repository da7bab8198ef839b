package operations

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/shlex"
	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/settings"
)

func platformOpener() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"explorer"}
	default:
		return []string{"xdg-open"}
	}
}

// opener prefers logs.opener from config over the platform default.
func (it *Local) opener() ([]string, error) {
	config, err := settings.Load(it.Paths)
	if err != nil || len(config.Logs.Opener) == 0 {
		return platformOpener(), nil
	}
	parts, err := shlex.Split(config.Logs.Opener)
	if err != nil {
		return nil, fmt.Errorf("logs.opener %q: %w", config.Logs.Opener, err)
	}
	if len(parts) == 0 {
		return platformOpener(), nil
	}
	return parts, nil
}

func (it *Local) OpenLogs(ctx context.Context) error {
	if err := os.MkdirAll(it.Paths.LogDir, 0o750); err != nil {
		return fmt.Errorf("creating %q: %w", it.Paths.LogDir, err)
	}
	args, err := it.opener()
	if err != nil {
		return err
	}
	args = append(args, it.Paths.LogDir)
	common.Debug("Opening logs with %q.", args)
	command := exec.CommandContext(ctx, args[0], args[1:]...)
	command.Stdout = it.Stdout
	command.Stderr = it.Stdout
	if err := command.Run(); err != nil {
		return fmt.Errorf("opening %q with %s: %w", it.Paths.LogDir, args[0], err)
	}
	common.Stdout("Logs are in %s\n", it.Paths.LogDir)
	return nil
}
