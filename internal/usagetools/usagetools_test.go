package usagetools

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rtur2003/Kognita/internal/analyzer"
	"github.com/Rtur2003/Kognita/internal/codec"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/Rtur2003/Kognita/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	c, err := codec.New(codec.DeriveKey("test-machine"))
	if err != nil {
		t.Fatalf("creating codec: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(filepath.Join(t.TempDir(), store.DBFileName), c, log)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func callWith(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- ReportTool ---

func TestReportTool_Handle_WithData(t *testing.T) {
	st := newTestStore(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := st.AddSession(tracker.Session{
		ProcessName: "code.exe",
		WindowTitle: "main.go",
		StartTime:   time.Now().Add(-2 * time.Hour),
		EndTime:     time.Now().Add(-1 * time.Hour),
	})
	if err != nil {
		t.Fatalf("adding session: %v", err)
	}

	tool := NewReportTool(st, analyzer.New(st, log), log)
	result, err := tool.Handle(context.Background(), callWith(map[string]interface{}{"days": 1}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Development") {
		t.Errorf("report missing category:\n%s", text)
	}
	if !strings.Contains(text, "Persona") {
		t.Errorf("report missing persona line:\n%s", text)
	}
}

func TestReportTool_Handle_EmptyHistory(t *testing.T) {
	st := newTestStore(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tool := NewReportTool(st, analyzer.New(st, log), log)
	result, err := tool.Handle(context.Background(), callWith(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(getResultText(result), "Not enough data") {
		t.Errorf("empty report missing no-data notice:\n%s", getResultText(result))
	}
}

// --- GoalsTool ---

func TestGoalsTool_Handle_AddListDelete(t *testing.T) {
	tool := NewGoalsTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), callWith(map[string]interface{}{
		"action":             "add",
		"goal_type":          "max_usage",
		"category":           "Gaming",
		"time_limit_minutes": 120,
	}))
	if err != nil {
		t.Fatalf("Handle add: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("add failed: %s", getResultText(result))
	}

	result, err = tool.Handle(context.Background(), callWith(map[string]interface{}{"action": "list"}))
	if err != nil {
		t.Fatalf("Handle list: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "max_usage") || !strings.Contains(text, "Gaming") {
		t.Errorf("list output missing the goal:\n%s", text)
	}

	result, err = tool.Handle(context.Background(), callWith(map[string]interface{}{
		"action": "delete",
		"id":     1,
	}))
	if err != nil {
		t.Fatalf("Handle delete: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("delete failed: %s", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callWith(map[string]interface{}{"action": "list"}))
	if !strings.Contains(getResultText(result), "No goals") {
		t.Errorf("list after delete:\n%s", getResultText(result))
	}
}

func TestGoalsTool_Handle_DuplicateRejected(t *testing.T) {
	tool := NewGoalsTool(newTestStore(t))
	args := map[string]interface{}{
		"action":             "add",
		"goal_type":          "min_usage",
		"category":           "Development",
		"time_limit_minutes": 30,
	}

	if result, _ := tool.Handle(context.Background(), callWith(args)); isErrorResult(result) {
		t.Fatalf("first add failed: %s", getResultText(result))
	}
	result, _ := tool.Handle(context.Background(), callWith(args))
	if !isErrorResult(result) || !strings.Contains(getResultText(result), "already exists") {
		t.Errorf("duplicate add result = %s, want duplicate error", getResultText(result))
	}
}

func TestGoalsTool_Handle_ValidationErrors(t *testing.T) {
	tool := NewGoalsTool(newTestStore(t))

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"bad action", map[string]interface{}{"action": "purge"}},
		{"bad type", map[string]interface{}{"action": "add", "goal_type": "weekly_max"}},
		{"block without process", map[string]interface{}{"action": "add", "goal_type": "block"}},
		{"usage without limit", map[string]interface{}{"action": "add", "goal_type": "max_usage", "category": "Web"}},
		{"window without bounds", map[string]interface{}{
			"action": "add", "goal_type": "time_window_max", "category": "Gaming", "time_limit_minutes": 60,
		}},
		{"delete without id", map[string]interface{}{"action": "delete"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tool.Handle(context.Background(), callWith(tt.args))
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if !isErrorResult(result) {
				t.Errorf("expected tool error, got: %s", getResultText(result))
			}
		})
	}
}

// --- CategoriesTool ---

func TestCategoriesTool_Handle_AssignAndUncategorized(t *testing.T) {
	st := newTestStore(t)
	err := st.AddSession(tracker.Session{
		ProcessName: "mystery.exe",
		WindowTitle: "mystery",
		StartTime:   time.Now().Add(-time.Hour),
		EndTime:     time.Now().Add(-59 * time.Minute),
	})
	if err != nil {
		t.Fatalf("adding session: %v", err)
	}
	tool := NewCategoriesTool(st)

	result, _ := tool.Handle(context.Background(), callWith(map[string]interface{}{"action": "uncategorized"}))
	if !strings.Contains(getResultText(result), "mystery.exe") {
		t.Errorf("uncategorized output:\n%s", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callWith(map[string]interface{}{
		"action":       "assign",
		"process_name": "mystery.exe",
		"category":     "Design",
	}))
	if isErrorResult(result) {
		t.Fatalf("assign failed: %s", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callWith(map[string]interface{}{"action": "uncategorized"}))
	if strings.Contains(getResultText(result), "mystery.exe") {
		t.Errorf("process still uncategorized after assign:\n%s", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callWith(map[string]interface{}{"action": "list"}))
	text := getResultText(result)
	if !strings.Contains(text, "Design:") || !strings.Contains(text, "mystery.exe") {
		t.Errorf("list output missing assignment:\n%s", text)
	}
}

// --- AchievementsTool ---

func TestAchievementsTool_Handle(t *testing.T) {
	st := newTestStore(t)
	tool := NewAchievementsTool(st)

	result, _ := tool.Handle(context.Background(), callWith(nil))
	text := getResultText(result)
	if !strings.Contains(text, "No achievements unlocked yet") {
		t.Errorf("empty output:\n%s", text)
	}
	if !strings.Contains(text, "Still locked") {
		t.Errorf("missing locked list:\n%s", text)
	}

	if _, err := st.UnlockAchievement("ROOKIE", "Rookie", "First hour done.", "rookie.png", time.Now()); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	result, _ = tool.Handle(context.Background(), callWith(nil))
	text = getResultText(result)
	if !strings.Contains(text, "Rookie") || !strings.Contains(text, "unlocked") {
		t.Errorf("output after unlock:\n%s", text)
	}
}

// --- NotificationsTool ---

func TestNotificationsTool_Handle_Lifecycle(t *testing.T) {
	st := newTestStore(t)
	tool := NewNotificationsTool(st)

	if err := st.AddNotification("Goal Exceeded", "Over the limit", store.NotificationGoal, time.Now()); err != nil {
		t.Fatalf("AddNotification: %v", err)
	}

	result, _ := tool.Handle(context.Background(), callWith(map[string]interface{}{"unread_only": true}))
	if !strings.Contains(getResultText(result), "Goal Exceeded") {
		t.Errorf("unread list:\n%s", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callWith(map[string]interface{}{"action": "mark_read"}))
	if isErrorResult(result) {
		t.Fatalf("mark_read failed: %s", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callWith(map[string]interface{}{"unread_only": true}))
	if !strings.Contains(getResultText(result), "No notifications") {
		t.Errorf("unread list after mark_read:\n%s", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), callWith(map[string]interface{}{"action": "delete_read"}))
	if isErrorResult(result) {
		t.Fatalf("delete_read failed: %s", getResultText(result))
	}
	result, _ = tool.Handle(context.Background(), callWith(nil))
	if !strings.Contains(getResultText(result), "No notifications") {
		t.Errorf("list after delete_read:\n%s", getResultText(result))
	}
}
