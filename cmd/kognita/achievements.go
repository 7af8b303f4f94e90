package main

import (
	"fmt"

	"github.com/Rtur2003/Kognita/internal/achievements"
	"github.com/spf13/cobra"
)

func newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show unlocked achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir()
			if err != nil {
				return err
			}
			st, err := openStore(dir, newLogger(false))
			if err != nil {
				return err
			}
			defer st.Close()

			unlocked, err := st.UnlockedAchievements()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			unlockedIDs := make(map[string]bool, len(unlocked))
			if len(unlocked) == 0 {
				fmt.Fprintln(out, "No achievements unlocked yet.")
			} else {
				for _, a := range unlocked {
					unlockedIDs[a.ID] = true
					fmt.Fprintf(out, "%s — %s (unlocked %s)\n",
						a.Name, a.Description, a.UnlockedAt.Local().Format("2006-01-02 15:04"))
				}
			}

			for _, a := range achievements.Catalog {
				if !unlockedIDs[a.ID] {
					fmt.Fprintf(out, "[locked] %s — %s\n", a.Name, a.Description)
				}
			}
			return nil
		},
	}
}
