package render

import (
	"fmt"
	"strings"
)

// Markdown renders r as a markdown document for non-interactive output.
func Markdown(r Report) string {
	var sb strings.Builder

	level := r.RiskLevel
	if level == "" {
		level = "Unclassified"
	}
	fmt.Fprintf(&sb, "# %s\n\n", level)
	fmt.Fprintf(&sb, "**%s** (%d%%)\n\n", r.Description, int(r.Gauge.Fill*100+0.5))
	if r.Recommendation != "" {
		fmt.Fprintf(&sb, "> %s\n\n", r.Recommendation)
	}

	sb.WriteString("## Categories\n\n")
	sb.WriteString("| Category | Detected | Level |\n")
	sb.WriteString("|---|---|---|\n")
	for _, b := range r.Bars {
		fmt.Fprintf(&sb, "| %s | %d | %s |\n", CategoryTitle(b.Category), b.Count, meter(b.Width, 10))
	}
	sb.WriteString("\n## Findings\n\n")
	for _, reason := range r.Reasons {
		fmt.Fprintf(&sb, "- %s %s\n", reason.Icon, reason.Text)
	}
	if r.Timestamp != "" {
		fmt.Fprintf(&sb, "\n_Analyzed %s_\n", r.Timestamp)
	}
	return sb.String()
}

// CategoryTitle returns the display title for a category key.
func CategoryTitle(category string) string {
	switch category {
	case "urgent":
		return "Urgency"
	case "links":
		return "Links"
	case "financial":
		return "Financial"
	case "threats":
		return "Threats"
	}
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

func meter(percent float64, cells int) string {
	filled := int(percent/100*float64(cells) + 0.5)
	if filled > cells {
		filled = cells
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}
