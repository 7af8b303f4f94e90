package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/spf13/cobra"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage usage goals",
	}
	cmd.AddCommand(newGoalAddCmd(), newGoalListCmd(), newGoalDeleteCmd())
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var (
		goalType string
		category string
		process  string
		limit    int
		start    string
		end      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a goal",
		Example: `  kognita goal add --type max_usage --category Gaming --limit 120
  kognita goal add --type min_usage --category Development --limit 30
  kognita goal add --type block --process game.exe
  kognita goal add --type time_window_max --category Gaming --limit 60 --start 20:00 --end 23:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := store.Goal{
				Type:             goalType,
				Category:         category,
				ProcessName:      process,
				TimeLimitMinutes: limit,
				StartOfDay:       start,
				EndOfDay:         end,
			}
			switch g.Type {
			case store.GoalMinUsage, store.GoalMaxUsage:
				if g.Category == "" || g.TimeLimitMinutes <= 0 {
					return errors.New("usage goals require --category and a positive --limit")
				}
			case store.GoalBlock:
				if g.ProcessName == "" {
					return errors.New("block goals require --process")
				}
			case store.GoalTimeWindowMax:
				if g.Category == "" || g.TimeLimitMinutes <= 0 || g.StartOfDay == "" || g.EndOfDay == "" {
					return errors.New("time_window_max goals require --category, --limit, --start and --end")
				}
			default:
				return fmt.Errorf("invalid --type %q: use min_usage, max_usage, block or time_window_max", g.Type)
			}

			dir, err := dataDir()
			if err != nil {
				return err
			}
			st, err := openStore(dir, newLogger(false))
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := st.AddGoal(g)
			if err != nil {
				if errors.Is(err, store.ErrDuplicateGoal) {
					return errors.New("an identical goal already exists")
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal #%d created.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&goalType, "type", "", "goal type: min_usage, max_usage, block or time_window_max")
	cmd.Flags().StringVar(&category, "category", "", "category the goal applies to")
	cmd.Flags().StringVar(&process, "process", "", "process name for block goals")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit in minutes")
	cmd.Flags().StringVar(&start, "start", "", "window start as HH:MM (time_window_max)")
	cmd.Flags().StringVar(&end, "end", "", "window end as HH:MM (time_window_max)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newGoalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
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

			goals, err := st.Goals()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(out, "No goals defined.")
				return nil
			}
			for _, g := range goals {
				fmt.Fprintf(out, "#%d %s", g.ID, g.Type)
				if g.Category != "" {
					fmt.Fprintf(out, " category=%s", g.Category)
				}
				if g.ProcessName != "" {
					fmt.Fprintf(out, " process=%s", g.ProcessName)
				}
				if g.TimeLimitMinutes > 0 {
					fmt.Fprintf(out, " limit=%dmin", g.TimeLimitMinutes)
				}
				if g.StartOfDay != "" || g.EndOfDay != "" {
					fmt.Fprintf(out, " window=%s-%s", g.StartOfDay, g.EndOfDay)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newGoalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid goal id %q", args[0])
			}

			dir, err := dataDir()
			if err != nil {
				return err
			}
			st, err := openStore(dir, newLogger(false))
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteGoal(id); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no goal with id %d", id)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal #%d deleted.\n", id)
			return nil
		},
	}
}
