// Package report renders usage aggregates as plain text for the CLI and
// the MCP reporting tool.
package report

import (
	"fmt"
	"sort"
	"strings"
)

const rule = "======================================================="

// FormatDuration renders a second count the way the reports expect:
// seconds under a minute, one-decimal minutes under an hour, two-decimal
// hours beyond that.
func FormatDuration(seconds int64) string {
	switch {
	case seconds <= 0:
		return "0s"
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1f min", float64(seconds)/60)
	default:
		return fmt.Sprintf("%.2f hours", float64(seconds)/3600)
	}
}

// Render produces the usage report: total active time, a category table
// sorted by descending share and the persona line. An empty period
// renders a "no data" notice instead.
func Render(totals map[string]int64, total int64, persona string) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("      Kognita - Digital Footprint Report\n")
	b.WriteString(rule + "\n")

	if len(totals) == 0 || total == 0 {
		b.WriteString("\nNot enough data to analyze for this period.\n")
		b.WriteString(rule + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\nTotal Active Time: %s\n\n", FormatDuration(total)))
	b.WriteString(fmt.Sprintf("%-20s | %-18s | %-10s\n", "Category", "Time Spent", "Share"))
	b.WriteString(strings.Repeat("-", 55) + "\n")

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if totals[categories[i]] != totals[categories[j]] {
			return totals[categories[i]] > totals[categories[j]]
		}
		return categories[i] < categories[j]
	})

	for _, category := range categories {
		secs := totals[category]
		share := float64(secs) / float64(total) * 100
		b.WriteString(fmt.Sprintf("%-20s | %-18s | %.1f%%\n", category, FormatDuration(secs), share))
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString(fmt.Sprintf(" Your Digital Persona: %s\n", persona))
	b.WriteString(rule + "\n")
	return b.String()
}
