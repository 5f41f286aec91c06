package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/user/fips-dashboard/internal/aggregate"
	"github.com/user/fips-dashboard/internal/fips"
)

const titleExcerptLen = 60

// Timeline renders the month-on-month status change page.
func Timeline(view TimelineView) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("    <title>FIP Status Timeline Tracker</title>\n")
	sb.WriteString("    <style>\n" + mustAsset("assets/timeline.css") + "    </style>\n")
	sb.WriteString("</head>\n<body>\n<div class=\"container\">\n")

	sb.WriteString("<div class=\"header\">\n")
	sb.WriteString("    <h1>📅 FIP Status Timeline Tracker</h1>\n")
	sb.WriteString("    <p>Month-on-Month Status Change Tracking</p>\n")
	sb.WriteString("</div>\n")

	sb.WriteString("<div class=\"content\">\n")
	writeStatusSummary(&sb, view.Summary)
	writeTimeline(&sb, view)
	sb.WriteString("</div>\n")

	sb.WriteString(fmt.Sprintf("<div class=\"last-updated\">Last updated: %s</div>\n",
		view.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("</div>\n</body>\n</html>\n")

	return sb.String()
}

func writeStatusSummary(sb *strings.Builder, summary aggregate.Summary) {
	sb.WriteString("<div class=\"section\">\n<h2>Current Status Summary</h2>\n")
	sb.WriteString("<div class=\"status-summary-grid\">\n")
	for _, sc := range summary.Counts {
		sb.WriteString(fmt.Sprintf("    <div class=\"summary-card\"><div class=\"summary-status %s\">%s</div><div class=\"summary-count\">%d</div></div>\n",
			fips.StatusClass(sc.Status), html.EscapeString(sc.Status), sc.Count))
	}
	sb.WriteString("</div>\n</div>\n")
}

func writeTimeline(sb *strings.Builder, view TimelineView) {
	sb.WriteString("<div class=\"section\">\n<h2>Status Changes Timeline</h2>\n<div class=\"timeline\">\n")

	if len(view.Months) == 0 {
		sb.WriteString("<div class=\"no-changes\">No status changes tracked yet. Historical data will appear here as FIPs change status over time.</div>\n")
		sb.WriteString("</div>\n</div>\n")
		return
	}

	for _, month := range view.Months {
		label := month.Date.Format("January 2006")
		if month.Date.IsZero() {
			label = month.Month
		}

		sb.WriteString("<div class=\"timeline-month\">\n")
		sb.WriteString(fmt.Sprintf("    <div class=\"timeline-header\"><h3>%s</h3><span class=\"change-count\">%d changes</span></div>\n",
			label, month.Count()))
		sb.WriteString("    <div class=\"timeline-changes\">\n")

		for _, e := range month.Added {
			sb.WriteString("        <div class=\"change-item new\"><span class=\"change-icon\">➕</span><span class=\"change-text\">")
			sb.WriteString(fmt.Sprintf("<strong>New:</strong> %s - %s <span class=\"status-badge %s\">%s</span>",
				fipLink(view.FIPBaseURL, e.Number), excerpt(e.Title), fips.StatusClass(e.Status), html.EscapeString(e.Status)))
			sb.WriteString("</span></div>\n")
		}

		for _, t := range month.Transitions {
			sb.WriteString("        <div class=\"change-item status-change\"><span class=\"change-icon\">🔄</span><span class=\"change-text\">")
			sb.WriteString(fmt.Sprintf("<strong>Status Change:</strong> %s - %s <span class=\"status-change-arrow\">%s → %s</span>",
				fipLink(view.FIPBaseURL, t.Number), excerpt(t.Title), html.EscapeString(t.From), html.EscapeString(t.To)))
			sb.WriteString("</span></div>\n")
		}

		for _, e := range month.Removed {
			sb.WriteString("        <div class=\"change-item removed\"><span class=\"change-icon\">➖</span><span class=\"change-text\">")
			sb.WriteString(fmt.Sprintf("<strong>Removed:</strong> FIP-%s - %s", e.Number, excerpt(e.Title)))
			sb.WriteString("</span></div>\n")
		}

		sb.WriteString("    </div>\n</div>\n")
	}

	sb.WriteString("</div>\n</div>\n")
}

func fipLink(baseURL, number string) string {
	url := baseURL + "FIPS/fip-" + number + ".md"
	return fmt.Sprintf("<a href=\"%s\" target=\"_blank\">FIP-%s</a>", html.EscapeString(url), number)
}

func excerpt(title string) string {
	runes := []rune(title)
	if len(runes) > titleExcerptLen {
		return html.EscapeString(string(runes[:titleExcerptLen])) + "..."
	}
	return html.EscapeString(title)
}
