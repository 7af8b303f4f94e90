package main

import (
	kognitaserver "github.com/Rtur2003/Kognita/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: "Serves the usage tools over MCP stdio. Logs are discarded so the\n" +
			"transport owns stdout and stderr; pair it with a running\n" +
			"'kognita track' daemon for live data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir()
			if err != nil {
				return err
			}
			log := newLogger(true)
			st, err := openStore(dir, log)
			if err != nil {
				return err
			}
			defer st.Close()

			return server.ServeStdio(kognitaserver.New(st, log))
		},
	}
}
