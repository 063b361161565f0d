package main

import (
	"os"

	"github.com/kilianp07/flightcast/cmd"
	"github.com/kilianp07/flightcast/core/failure"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(failure.ExitCode(err))
	}
}
