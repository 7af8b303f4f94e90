package usagetools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// GoalsTool handles the usage_goals MCP tool: listing, adding and
// deleting usage goals.
type GoalsTool struct {
	store *store.Store
}

func NewGoalsTool(st *store.Store) *GoalsTool {
	return &GoalsTool{store: st}
}

// validGoalTypes contains the allowed goal_type values.
var validGoalTypes = map[string]bool{
	store.GoalMinUsage:      true,
	store.GoalMaxUsage:      true,
	store.GoalBlock:         true,
	store.GoalTimeWindowMax: true,
}

// Definition returns the MCP tool definition for registration.
func (t *GoalsTool) Definition() mcp.Tool {
	return mcp.NewTool("usage_goals",
		mcp.WithDescription(
			"Manage usage goals. Actions: 'list' shows all goals, 'add' creates "+
				"a goal, 'delete' removes one by id. Goal types: min_usage and "+
				"max_usage check a category's daily minutes against the limit, "+
				"block notifies whenever the process holds the foreground, "+
				"time_window_max limits a category inside a daily time window.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("One of: list, add, delete."),
		),
		mcp.WithString("goal_type",
			mcp.Description("For add: min_usage, max_usage, block or time_window_max."),
		),
		mcp.WithString("category",
			mcp.Description("For add: the category the goal applies to (usage goals)."),
		),
		mcp.WithString("process_name",
			mcp.Description("For add: the process a block goal targets, e.g. 'game.exe'."),
		),
		mcp.WithNumber("time_limit_minutes",
			mcp.Description("For add: the limit in minutes (usage and window goals)."),
		),
		mcp.WithString("start_time",
			mcp.Description("For add (time_window_max): window start as HH:MM, e.g. '20:00'."),
		),
		mcp.WithString("end_time",
			mcp.Description("For add (time_window_max): window end as HH:MM, e.g. '23:00'."),
		),
		mcp.WithNumber("id",
			mcp.Description("For delete: the goal id to remove."),
		),
	)
}

// Handle processes the usage_goals tool call.
func (t *GoalsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch action := req.GetString("action", ""); action {
	case "list":
		return t.list()
	case "add":
		return t.add(req)
	case "delete":
		return t.delete(req)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q: use list, add or delete", action)), nil
	}
}

func (t *GoalsTool) list() (*mcp.CallToolResult, error) {
	goals, err := t.store.Goals()
	if err != nil {
		return mcp.NewToolResultError("listing goals: " + err.Error()), nil
	}
	if len(goals) == 0 {
		return mcp.NewToolResultText("No goals defined."), nil
	}

	var b strings.Builder
	b.WriteString("Goals:\n")
	for _, g := range goals {
		fmt.Fprintf(&b, "  #%d %s", g.ID, g.Type)
		if g.Category != "" {
			fmt.Fprintf(&b, " category=%s", g.Category)
		}
		if g.ProcessName != "" {
			fmt.Fprintf(&b, " process=%s", g.ProcessName)
		}
		if g.TimeLimitMinutes > 0 {
			fmt.Fprintf(&b, " limit=%dmin", g.TimeLimitMinutes)
		}
		if g.StartOfDay != "" || g.EndOfDay != "" {
			fmt.Fprintf(&b, " window=%s-%s", g.StartOfDay, g.EndOfDay)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (t *GoalsTool) add(req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g := store.Goal{
		Type:             req.GetString("goal_type", ""),
		Category:         req.GetString("category", ""),
		ProcessName:      req.GetString("process_name", ""),
		TimeLimitMinutes: req.GetInt("time_limit_minutes", 0),
		StartOfDay:       req.GetString("start_time", ""),
		EndOfDay:         req.GetString("end_time", ""),
	}

	if !validGoalTypes[g.Type] {
		return mcp.NewToolResultError(fmt.Sprintf("invalid goal_type %q", g.Type)), nil
	}
	switch g.Type {
	case store.GoalBlock:
		if g.ProcessName == "" {
			return mcp.NewToolResultError("block goals require process_name"), nil
		}
	case store.GoalTimeWindowMax:
		if g.Category == "" || g.TimeLimitMinutes <= 0 || g.StartOfDay == "" || g.EndOfDay == "" {
			return mcp.NewToolResultError("time_window_max goals require category, time_limit_minutes, start_time and end_time"), nil
		}
	default:
		if g.Category == "" || g.TimeLimitMinutes <= 0 {
			return mcp.NewToolResultError("usage goals require category and a positive time_limit_minutes"), nil
		}
	}

	id, err := t.store.AddGoal(g)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateGoal) {
			return mcp.NewToolResultError("an identical goal already exists"), nil
		}
		return mcp.NewToolResultError("adding goal: " + err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Goal #%d created.", id)), nil
}

func (t *GoalsTool) delete(req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("delete requires a positive id"), nil
	}
	if err := t.store.DeleteGoal(int64(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no goal with id %d", id)), nil
		}
		return mcp.NewToolResultError("deleting goal: " + err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Goal #%d deleted.", id)), nil
}
