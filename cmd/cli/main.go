package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kirkbot2/speedaudit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// A below-threshold score is a normal outcome; the result has
		// already been printed, only the exit code changes.
		if !errors.Is(err, cli.ErrScoreBelowThreshold) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
