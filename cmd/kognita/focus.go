package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Rtur2003/Kognita/internal/focus"
	"github.com/Rtur2003/Kognita/internal/notify"
	"github.com/Rtur2003/Kognita/internal/probe"
	"github.com/spf13/cobra"
)

func newFocusCmd() *cobra.Command {
	var categories []string

	cmd := &cobra.Command{
		Use:   "focus <minutes>",
		Short: "Run a focus session that flags off-category apps",
		Example: `  kognita focus 25 --categories Development
  kognita focus 90 --categories Office,Communication`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil || minutes <= 0 {
				return fmt.Errorf("invalid duration %q: want a positive number of minutes", args[0])
			}
			if len(categories) == 0 {
				return errors.New("--categories is required: the categories you want to stay in")
			}

			dir, err := dataDir()
			if err != nil {
				return err
			}
			log := newLogger(false)

			p, err := probe.New()
			if err != nil {
				return fmt.Errorf("starting focus session: %w", err)
			}
			current := func() string {
				process, _, err := p.Foreground()
				if err != nil {
					return probe.ProcessUnknown
				}
				return process
			}

			st, err := openStore(dir, log)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			session := focus.New(st, notify.NewLogNotifier(log), current, categories, log)
			err = session.Run(ctx, time.Duration(minutes)*time.Minute)
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Focus session cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Focus session complete.")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "comma-separated categories allowed during the session")
	return cmd
}
