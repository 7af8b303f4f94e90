package usagetools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// CategoriesTool handles the usage_categories MCP tool: inspecting and
// editing the process-to-category map.
type CategoriesTool struct {
	store *store.Store
}

func NewCategoriesTool(st *store.Store) *CategoriesTool {
	return &CategoriesTool{store: st}
}

// Definition returns the MCP tool definition for registration.
func (t *CategoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("usage_categories",
		mcp.WithDescription(
			"Manage the process-to-category map. Actions: 'list' shows all "+
				"mappings, 'assign' maps a process to a category, "+
				"'uncategorized' lists observed processes without a mapping.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("One of: list, assign, uncategorized."),
		),
		mcp.WithString("process_name",
			mcp.Description("For assign: the process to map, e.g. 'blender.exe'."),
		),
		mcp.WithString("category",
			mcp.Description("For assign: the category to map it to, e.g. 'Design'."),
		),
	)
}

// Handle processes the usage_categories tool call.
func (t *CategoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch action := req.GetString("action", ""); action {
	case "list":
		return t.list()
	case "assign":
		return t.assign(req)
	case "uncategorized":
		return t.uncategorized()
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q: use list, assign or uncategorized", action)), nil
	}
}

func (t *CategoriesTool) list() (*mcp.CallToolResult, error) {
	mapping, err := t.store.CategoryMap()
	if err != nil {
		return mcp.NewToolResultError("listing categories: " + err.Error()), nil
	}

	// Group processes under their category for readable output.
	byCategory := make(map[string][]string)
	for process, category := range mapping {
		byCategory[category] = append(byCategory[category], process)
	}
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var b strings.Builder
	for _, category := range categories {
		processes := byCategory[category]
		sort.Strings(processes)
		fmt.Fprintf(&b, "%s:\n", category)
		for _, p := range processes {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (t *CategoriesTool) assign(req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	process := req.GetString("process_name", "")
	category := req.GetString("category", "")
	if process == "" || category == "" {
		return mcp.NewToolResultError("assign requires process_name and category"), nil
	}
	if err := t.store.SetCategory(process, category); err != nil {
		return mcp.NewToolResultError("assigning category: " + err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("'%s' is now categorized as '%s'.", process, category)), nil
}

func (t *CategoriesTool) uncategorized() (*mcp.CallToolResult, error) {
	processes, err := t.store.UncategorizedProcesses()
	if err != nil {
		return mcp.NewToolResultError("listing uncategorized processes: " + err.Error()), nil
	}
	if len(processes) == 0 {
		return mcp.NewToolResultText("Every observed process has a category."), nil
	}
	return mcp.NewToolResultText("Uncategorized processes:\n  " + strings.Join(processes, "\n  ")), nil
}
