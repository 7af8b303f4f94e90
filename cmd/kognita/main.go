// Kognita: local digital wellbeing tracker.
//
// The daemon samples the foreground window, stores encrypted usage
// sessions in a local SQLite database and evaluates goals and
// achievements over the history. The same binary reads the history
// back as reports, either on the command line or as an MCP server.
//
// Usage:
//
//	kognita track     # Run the tracking daemon
//	kognita report    # Print the usage report
//	kognita serve     # Start the MCP server (stdio transport)
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Rtur2003/Kognita/internal/codec"
	"github.com/Rtur2003/Kognita/internal/config"
	"github.com/Rtur2003/Kognita/internal/server"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagConfig  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kognita",
		Short:         "Local digital wellbeing tracker",
		Long:          "Kognita tracks foreground application usage, stores it encrypted on this machine and reports on how the time was spent.",
		Version:       server.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: the user config dir, e.g. ~/.config/kognita)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default: <data-dir>/"+config.FileName+")")

	root.AddCommand(
		newTrackCmd(),
		newReportCmd(),
		newGoalCmd(),
		newCategoryCmd(),
		newAchievementsCmd(),
		newNotificationsCmd(),
		newFocusCmd(),
		newServeCmd(),
		newUpdateCmd(),
	)
	return root
}

// dataDir resolves the data directory, creating it if needed.
func dataDir() (string, error) {
	dir := flagDataDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolving user config dir: %w", err)
		}
		dir = filepath.Join(base, "kognita")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	return dir, nil
}

func configPath(dir string) string {
	if flagConfig != "" {
		return flagConfig
	}
	return filepath.Join(dir, config.FileName)
}

// newLogger builds the process logger. quiet sends logs nowhere; the
// MCP server uses that to keep stdio clean for the transport.
func newLogger(quiet bool) *slog.Logger {
	var w io.Writer = os.Stderr
	if quiet {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

// openStore opens the session database under the data dir with the
// machine-bound encryption key.
func openStore(dir string, log *slog.Logger) (*store.Store, error) {
	c, err := codec.New(codec.MachineKey(log))
	if err != nil {
		return nil, fmt.Errorf("initializing codec: %w", err)
	}
	return store.Open(filepath.Join(dir, store.DBFileName), c, log)
}
