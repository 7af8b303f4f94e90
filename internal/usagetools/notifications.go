package usagetools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// NotificationsTool handles the usage_notifications MCP tool.
type NotificationsTool struct {
	store *store.Store
}

func NewNotificationsTool(st *store.Store) *NotificationsTool {
	return &NotificationsTool{store: st}
}

// Definition returns the MCP tool definition for registration.
func (t *NotificationsTool) Definition() mcp.Tool {
	return mcp.NewTool("usage_notifications",
		mcp.WithDescription(
			"Manage stored notifications. Actions: 'list' shows notifications "+
				"(newest first), 'mark_read' marks all as read, 'delete_read' "+
				"removes notifications already marked read.",
		),
		mcp.WithString("action",
			mcp.Description("One of: list (default), mark_read, delete_read."),
		),
		mcp.WithBoolean("unread_only",
			mcp.Description("For list: only show unread notifications."),
		),
	)
}

// Handle processes the usage_notifications tool call.
func (t *NotificationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch action := req.GetString("action", "list"); action {
	case "list":
		return t.list(req.GetBool("unread_only", false))
	case "mark_read":
		if err := t.store.MarkAllRead(); err != nil {
			return mcp.NewToolResultError("marking notifications read: " + err.Error()), nil
		}
		return mcp.NewToolResultText("All notifications marked read."), nil
	case "delete_read":
		if err := t.store.DeleteRead(); err != nil {
			return mcp.NewToolResultError("deleting read notifications: " + err.Error()), nil
		}
		return mcp.NewToolResultText("Read notifications deleted."), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q: use list, mark_read or delete_read", action)), nil
	}
}

func (t *NotificationsTool) list(unreadOnly bool) (*mcp.CallToolResult, error) {
	rows, err := t.store.Notifications(unreadOnly)
	if err != nil {
		return mcp.NewToolResultError("listing notifications: " + err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("No notifications."), nil
	}

	var b strings.Builder
	for _, n := range rows {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s [%s] %s — %s (%s)\n",
			marker, n.Type, n.Title, n.Message, n.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	return mcp.NewToolResultText(b.String()), nil
}
