package settings

import (
	"os"
	"path/filepath"

	"github.com/subspace/subspace-cli/common"
)

const (
	productFolder = `subspace-cli`
	settingsName  = `settings.yaml`
	summaryName   = `summary.yaml`
)

// Paths are the on-disk locations the CLI touches.
type Paths struct {
	Home        string
	ConfigFile  string
	LogDir      string
	SummaryFile string
	NodeDir     string
	FarmerDir   string
}

func ExpandPath(entry string) string {
	intermediate := os.ExpandEnv(entry)
	result, err := filepath.Abs(intermediate)
	if err != nil {
		return intermediate
	}
	return result
}

func userDir(lookup func() (string, error), fallback string) string {
	folder, err := lookup()
	if err != nil || len(folder) == 0 {
		return ExpandPath(fallback)
	}
	return filepath.Join(folder, productFolder)
}

// DefaultPaths honors SUBSPACE_HOME, which relocates everything under one root.
func DefaultPaths() Paths {
	if home := os.Getenv(common.SUBSPACE_HOME_VARIABLE); len(home) > 0 {
		return PathsUnder(ExpandPath(home))
	}
	data := userDir(dataDir, "$HOME/.local/share/"+productFolder)
	config := userDir(os.UserConfigDir, "$HOME/.config/"+productFolder)
	cache := userDir(os.UserCacheDir, "$HOME/.cache/"+productFolder)
	return Paths{
		Home:        data,
		ConfigFile:  filepath.Join(config, settingsName),
		LogDir:      filepath.Join(cache, "logs"),
		SummaryFile: filepath.Join(data, summaryName),
		NodeDir:     filepath.Join(data, "node"),
		FarmerDir:   filepath.Join(data, "farmer"),
	}
}

func PathsUnder(home string) Paths {
	return Paths{
		Home:        home,
		ConfigFile:  filepath.Join(home, settingsName),
		LogDir:      filepath.Join(home, "logs"),
		SummaryFile: filepath.Join(home, summaryName),
		NodeDir:     filepath.Join(home, "node"),
		FarmerDir:   filepath.Join(home, "farmer"),
	}
}

func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); len(xdg) > 0 {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}
