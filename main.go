package main

import (
	"fmt"
	"os"

	"github.com/timerq/timerq/cmd"
)

var (
	version   string
	commit    string
	date      string
	buildType string = "unclassified"
)

var osExit = os.Exit

// runMain executes the CLI and maps its error to a process exit code.
func runMain(args []string, exec func([]string) error) int {
	if err := exec(args); err != nil {
		fmt.Printf("timerq: %s\n", err.Error())
		return 1
	}
	return 0
}

func main() {
	exec := func(args []string) error {
		return cmd.Execute(args, cmd.BuildArgs{
			Version:   version,
			Commit:    commit,
			Date:      date,
			BuildType: buildType,
		})
	}
	osExit(runMain(os.Args, exec))
}
