package main

import (
	"fmt"
	"os"

	"timbro/internal/cli"
	"timbro/internal/store"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if store.IsBusy(err) {
			fmt.Fprintln(os.Stderr, "Error: database is locked by another process; retry in a moment")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
