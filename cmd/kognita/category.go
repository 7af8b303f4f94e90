package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the process-to-category map",
	}
	cmd.AddCommand(newCategoryListCmd(), newCategorySetCmd(), newCategoryUncategorizedCmd())
	return cmd
}

func newCategoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List category assignments",
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

			mapping, err := st.CategoryMap()
			if err != nil {
				return err
			}

			byCategory := make(map[string][]string)
			for process, category := range mapping {
				byCategory[category] = append(byCategory[category], process)
			}
			categories := make([]string, 0, len(byCategory))
			for category := range byCategory {
				categories = append(categories, category)
			}
			sort.Strings(categories)

			out := cmd.OutOrStdout()
			for _, category := range categories {
				processes := byCategory[category]
				sort.Strings(processes)
				fmt.Fprintf(out, "%s:\n", category)
				for _, p := range processes {
					fmt.Fprintf(out, "  %s\n", p)
				}
			}
			return nil
		},
	}
}

func newCategorySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <process> <category>",
		Short: "Assign a process to a category",
		Args:  cobra.ExactArgs(2),
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

			if err := st.SetCategory(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "'%s' is now categorized as '%s'.\n", args[0], args[1])
			return nil
		},
	}
}

func newCategoryUncategorizedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uncategorized",
		Short: "List observed processes without a category",
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

			processes, err := st.UncategorizedProcesses()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(processes) == 0 {
				fmt.Fprintln(out, "Every observed process has a category.")
				return nil
			}
			for _, p := range processes {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
}
