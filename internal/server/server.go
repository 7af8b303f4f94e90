// Package server wires the MCP surface over the usage database.
//
// This is the composition root: it creates the analyzer and tools and
// registers them on the MCP server. No business logic lives here.
package server

import (
	"log/slog"

	"github.com/Rtur2003/Kognita/internal/analyzer"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/Rtur2003/Kognita/internal/usagetools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with all usage tools registered. The store
// stays owned by the caller, which closes it on shutdown.
func New(st *store.Store, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"kognita",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	an := analyzer.New(st, log)

	reportTool := usagetools.NewReportTool(st, an, log)
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	goalsTool := usagetools.NewGoalsTool(st)
	s.AddTool(goalsTool.Definition(), goalsTool.Handle)

	categoriesTool := usagetools.NewCategoriesTool(st)
	s.AddTool(categoriesTool.Definition(), categoriesTool.Handle)

	achievementsTool := usagetools.NewAchievementsTool(st)
	s.AddTool(achievementsTool.Definition(), achievementsTool.Handle)

	notificationsTool := usagetools.NewNotificationsTool(st)
	s.AddTool(notificationsTool.Definition(), notificationsTool.Handle)

	return s
}

// serverInstructions tells the client how to use the usage tools.
func serverInstructions() string {
	return `You have access to Kognita, a digital wellbeing tracker.

Kognita records which application holds the foreground window, maps
processes to categories and stores encrypted usage history locally.

## Tools

- usage_report: usage breakdown for the last N days with the user's
  digital persona and suggestions. Start here for "how did I spend my
  time" questions.
- usage_goals: list/add/delete usage goals. Goal types:
  - max_usage: warn when a category exceeds a daily minute limit
  - min_usage: congratulate when a category reaches a daily minimum
  - block: notify whenever a specific process holds the foreground
  - time_window_max: limit a category inside a daily time window
- usage_categories: inspect the process-to-category map, assign
  categories, and list observed-but-unmapped processes. Suggest
  assignments when the user mentions an app that shows up uncategorized.
- usage_achievements: unlocked achievements with timestamps.
- usage_notifications: stored goal/achievement notifications.

## Notes

- All times in reports are local to the machine running the tracker.
- The tracker daemon must be running ('kognita track') for new data to
  accumulate; the tools read whatever history exists either way.
- Session payloads are encrypted at rest with a machine-bound key, so
  the database is not portable across machines.`
}
