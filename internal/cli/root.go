// Package cli implements the heapscope CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/common/promslog"
	"github.com/spf13/cobra"
)

var logLevel string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "heapscope",
	Short: "Heap metadata dumps for tracked live objects",
	Long: "heapscope captures point-in-time JSON dumps of a tracked live-object set " +
		"and analyzes the resulting dump files (retained sizes, paths to roots).",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func newLogger() *slog.Logger {
	level := promslog.NewLevel()
	if err := level.Set(logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "bad log level %q, using info\n", logLevel)
	}
	return promslog.New(&promslog.Config{Level: level})
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
