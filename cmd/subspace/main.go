package main

import (
	"context"
	"os"

	"github.com/subspace/subspace-cli/cmd"
	"github.com/subspace/subspace-cli/common"
)

func ExitProtection() {
	status := recover()
	if status != nil {
		exit, ok := status.(common.ExitCode)
		if ok {
			exit.ShowMessage()
			common.WaitLogs()
			os.Exit(exit.Code)
		}
		common.WaitLogs()
		panic(status)
	}
	common.WaitLogs()
}

func main() {
	defer ExitProtection()

	stopwatch := common.Stopwatch("Subspace CLI lived")
	defer stopwatch.Debug()

	cmd.Execute(context.Background(), os.Args[1:])
}
