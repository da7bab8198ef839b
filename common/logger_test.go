package common_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/hamlet"
)

func TestHoldLogsDefersOutput(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	errors := &bytes.Buffer{}
	restore := common.RedirectOutput(&bytes.Buffer{}, errors)
	defer restore()

	release := common.HoldLogs()
	common.Log("first")
	common.Log("second")
	common.WaitLogs()
	must_be.Equal("", errors.String())

	release()
	common.WaitLogs()
	must_be.True(strings.Index(errors.String(), "first") < strings.Index(errors.String(), "second"))
	must_be.Contains("second", errors.String())
}

func TestStdoutHonorsLogHides(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	output := &bytes.Buffer{}
	restore := common.RedirectOutput(output, &bytes.Buffer{})
	defer restore()

	original := common.LogHides
	defer func() { common.LogHides = original }()
	common.LogHides = []string{"secret"}

	common.Stdout("visible %d\n", 1)
	common.Stdout("a secret line\n")
	must_be.Equal("visible 1\n", output.String())
}

func TestExitCodeMapping(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Equal(common.ExitSuccess, common.ExitCodeFor(nil))
	must_be.Equal(common.ExitUsage, common.ExitCodeFor(common.NewUsageError(nil, "unknown command %q", "x")))
	must_be.Equal(common.ExitTerminal, common.ExitCodeFor(&common.TerminalIOError{Op: "read"}))
	must_be.Equal(common.ExitPrompt, common.ExitCodeFor(&common.PromptParseError{Answer: "maybe"}))
	must_be.Equal(7, common.ExitCodeFor(common.ExitCode{Code: 7}))
	must_be.Equal(common.ExitAction, common.ExitCodeFor(&common.ActionError{Action: "farm"}))
}
