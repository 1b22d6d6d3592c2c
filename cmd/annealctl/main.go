// Command annealctl is a command-line harness around the anneal engine:
// it loads run configuration, builds one of the bundled demo problems,
// drives a search, and reports the result — either once (run), as a
// live HTTP/WebSocket-observable background run (serve), or by
// replaying one of the engine's seeded test scenarios (scenario).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "annealctl",
	Short: "Drive the anneal simulated-annealing engine from the command line",
}

func main() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newScenarioCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "annealctl: %v\n", err)
		os.Exit(1)
	}
}
