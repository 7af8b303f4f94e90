package usagetools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rtur2003/Kognita/internal/achievements"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// AchievementsTool handles the usage_achievements MCP tool.
type AchievementsTool struct {
	store *store.Store
}

func NewAchievementsTool(st *store.Store) *AchievementsTool {
	return &AchievementsTool{store: st}
}

// Definition returns the MCP tool definition for registration.
func (t *AchievementsTool) Definition() mcp.Tool {
	return mcp.NewTool("usage_achievements",
		mcp.WithDescription(
			"List achievements: unlocked ones with their unlock timestamps, "+
				"plus the locked remainder of the catalog.",
		),
	)
}

// Handle processes the usage_achievements tool call.
func (t *AchievementsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	unlocked, err := t.store.UnlockedAchievements()
	if err != nil {
		return mcp.NewToolResultError("listing achievements: " + err.Error()), nil
	}

	unlockedIDs := make(map[string]bool, len(unlocked))
	var b strings.Builder
	if len(unlocked) == 0 {
		b.WriteString("No achievements unlocked yet.\n")
	} else {
		b.WriteString("Unlocked:\n")
		for _, a := range unlocked {
			unlockedIDs[a.ID] = true
			fmt.Fprintf(&b, "  %s — %s (unlocked %s)\n",
				a.Name, a.Description, a.UnlockedAt.Local().Format("2006-01-02 15:04"))
		}
	}

	var locked []string
	for _, a := range achievements.Catalog {
		if !unlockedIDs[a.ID] {
			locked = append(locked, a.Name)
		}
	}
	if len(locked) > 0 {
		b.WriteString("Still locked: " + strings.Join(locked, ", ") + "\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
