package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Rtur2003/Kognita/internal/app"
	"github.com/Rtur2003/Kognita/internal/config"
	"github.com/Rtur2003/Kognita/internal/probe"
	"github.com/spf13/cobra"
)

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Run the tracking daemon until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir()
			if err != nil {
				return err
			}
			log := newLogger(false)

			p, err := probe.New()
			if err != nil {
				return fmt.Errorf("starting tracker: %w", err)
			}

			st, err := openStore(dir, log)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			path := configPath(dir)
			cfg := func() config.Config { return config.Load(path) }

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info("kognita tracking", "data_dir", dir)
			app.New(p, st, cfg, log).Run(ctx)
			return nil
		},
	}
}
