package pretty

import (
	"fmt"
	"runtime"

	"github.com/subspace/subspace-cli/common"
)

const (
	supportForum   = `https://forum.subspace.network`
	supportDiscord = `https://discord.gg/subspace-network`
)

func csi(value string) string {
	return fmt.Sprintf("\x1b[%s", value)
}

func csif(form string, details ...interface{}) string {
	return csi(fmt.Sprintf(form, details...))
}

func localSetup(interactive bool) {
	if runtime.GOOS == "windows" && !interactive {
		Disabled = true
	}
}

// SupportMessage is the remediation hint shown after any failed action.
func SupportMessage() string {
	return fmt.Sprintf("If you think this is a bug, please ask for help on %s or %s", supportForum, supportDiscord)
}

func Warning(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%sWarning: %s%s", Yellow, format, Reset)
	common.Log(niceform, rest...)
}

func Exit(code int, format string, rest ...interface{}) {
	var message string
	if len(format) > 0 {
		message = fmt.Sprintf(format, rest...)
		if code != 0 {
			message = fmt.Sprintf("%s%s%s", Red, message, Reset)
		}
	}
	panic(common.ExitCode{
		Code:    code,
		Message: message,
	})
}

func Guard(truth bool, code int, format string, rest ...interface{}) {
	if !truth {
		Exit(code, format, rest...)
	}
}
