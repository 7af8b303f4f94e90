// Package usagetools exposes the usage database over MCP: reports,
// goals, categories, achievements and notifications.
package usagetools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rtur2003/Kognita/internal/analyzer"
	"github.com/Rtur2003/Kognita/internal/report"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReportTool handles the usage_report MCP tool.
// It renders the text usage report for a trailing window of days.
type ReportTool struct {
	store    *store.Store
	analyzer *analyzer.Analyzer
	log      *slog.Logger
}

// NewReportTool creates a ReportTool over the given store.
func NewReportTool(st *store.Store, an *analyzer.Analyzer, log *slog.Logger) *ReportTool {
	return &ReportTool{store: st, analyzer: an, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *ReportTool) Definition() mcp.Tool {
	return mcp.NewTool("usage_report",
		mcp.WithDescription(
			"Generate a usage report for the last N days: total active time, "+
				"per-category breakdown with shares, the digital persona and "+
				"usage suggestions.",
		),
		mcp.WithNumber("days",
			mcp.Description("Reporting window in days (default 1, i.e. the last 24 hours)."),
		),
	)
}

// Handle processes the usage_report tool call.
func (t *ReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 1)
	if days < 1 {
		days = 1
	}

	now := time.Now()
	totals, total, err := t.analyzer.CategoryTotals(now.AddDate(0, 0, -days), now)
	if err != nil {
		return mcp.NewToolResultError("computing usage totals: " + err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(report.Render(totals, total, analyzer.Persona(totals, total)))
	if tips := analyzer.Suggestions(totals, total); len(tips) > 0 {
		b.WriteString("\nSuggestions:\n")
		for i, tip := range tips {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, tip)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
