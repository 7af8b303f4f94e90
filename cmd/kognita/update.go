package main

import (
	"fmt"

	"github.com/Rtur2003/Kognita/internal/server"
	"github.com/Rtur2003/Kognita/internal/updater"
	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update kognita to the latest release",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.ErrOrStderr()
			fmt.Fprintln(out, "Checking for updates...")

			result := updater.CheckVersion(server.Version)
			if !result.UpdateAvailable {
				fmt.Fprintf(out, "Already at the latest version (v%s)\n", result.CurrentVersion)
				return nil
			}

			fmt.Fprintf(out, "New version available: v%s -> v%s\nDownloading...\n",
				result.CurrentVersion, result.LatestVersion)

			if err := updater.SelfUpdate(server.Version); err != nil {
				return fmt.Errorf("update failed: %w (download manually from %s)", err, result.ReleaseURL)
			}

			fmt.Fprintf(out, "Updated to v%s. Restart kognita to use the new version.\n", result.LatestVersion)
			return nil
		},
	}
}
