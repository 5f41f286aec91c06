package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/user/fips-dashboard/internal/fips"
)

// Dashboard renders the current-status page. Identical views produce
// byte-identical output.
func Dashboard(view DashboardView) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("    <title>Filecoin Improvement Proposals (FIPs) Dashboard</title>\n")
	sb.WriteString("    <style>\n" + mustAsset("assets/dashboard.css") + "    </style>\n")
	sb.WriteString("</head>\n<body>\n<div class=\"container\">\n")

	sb.WriteString("<div class=\"header\">\n")
	sb.WriteString("    <h1>📋 Filecoin Improvement Proposals</h1>\n")
	sb.WriteString("    <p>Current status of all FIPs</p>\n")
	sb.WriteString("</div>\n")

	writeStatsBar(&sb, view)

	sb.WriteString("<div class=\"content\">\n")
	writeStatusTable(&sb, view)
	writePRSections(&sb, view)
	sb.WriteString("</div>\n")

	sb.WriteString(fmt.Sprintf("<div class=\"last-updated\">Last updated: %s</div>\n",
		view.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("</div>\n</body>\n</html>\n")

	return sb.String()
}

func writeStatsBar(sb *strings.Builder, view DashboardView) {
	stats := []struct {
		label string
		value int
	}{
		{"Total FIPs", view.Summary.Total},
		{"Final", view.Summary.Final},
		{"Draft", view.Summary.Draft},
		{"In Flight", view.Summary.InFlight},
	}

	sb.WriteString("<div class=\"stats-bar\">\n")
	for _, s := range stats {
		sb.WriteString(fmt.Sprintf("    <div class=\"stat-card\"><div class=\"stat-label\">%s</div><div class=\"stat-value\">%d</div></div>\n",
			s.label, s.value))
	}
	sb.WriteString("</div>\n")
}

func writeStatusTable(sb *strings.Builder, view DashboardView) {
	sb.WriteString("<div class=\"section\">\n<h2>FIPs by Status</h2>\n")
	sb.WriteString("<table>\n<thead><tr><th>Status</th><th>Count</th><th>FIPs</th></tr></thead>\n<tbody>\n")

	prCounts := make(map[string]int)
	for _, g := range view.PRsByFIP {
		prCounts[g.FIP] = len(g.PRs)
	}

	for _, group := range view.Groups {
		sb.WriteString("<tr>\n")
		sb.WriteString(fmt.Sprintf("    <td><span class=\"status-badge %s\">%s</span></td>\n",
			fips.StatusClass(group.Status), html.EscapeString(group.Status)))
		sb.WriteString(fmt.Sprintf("    <td><span class=\"count\">%d</span></td>\n", len(group.Records)))

		sb.WriteString("    <td><div class=\"fips-list\">\n")
		for _, rec := range group.Records {
			link := view.FIPBaseURL + "FIPS/fip-" + rec.Number + ".md"
			sb.WriteString(fmt.Sprintf("        <a href=\"%s\" target=\"_blank\" title=\"%s\">FIP-%s</a>",
				html.EscapeString(link), html.EscapeString(rec.Title), rec.Number))
			if n := prCounts[rec.Number]; n > 0 {
				sb.WriteString(fmt.Sprintf(" <span class=\"pr-badge-small\" title=\"%d open PR%s\">🔀 %d</span>",
					n, plural(n), n))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("    </div></td>\n</tr>\n")
	}

	sb.WriteString("</tbody>\n</table>\n</div>\n")
}

func writePRSections(sb *strings.Builder, view DashboardView) {
	total := 0
	seen := make(map[int]struct{})
	for _, g := range view.PRsByFIP {
		for _, pr := range g.PRs {
			if _, ok := seen[pr.Number]; !ok {
				seen[pr.Number] = struct{}{}
				total++
			}
		}
	}
	total += len(view.GeneralPRs)

	sb.WriteString("<div class=\"section\">\n")
	sb.WriteString(fmt.Sprintf("<h2>Open Pull Requests (%d total)</h2>\n", total))

	if total == 0 {
		sb.WriteString("<div class=\"no-prs\">No open PRs found.</div>\n</div>\n")
		return
	}

	for _, group := range view.PRsByFIP {
		sb.WriteString("<div class=\"fip-pr-group\">\n")
		sb.WriteString(fmt.Sprintf("    <div class=\"fip-pr-header\"><strong>FIP-%s</strong> <span class=\"pr-count\">(%d PR%s)</span></div>\n",
			group.FIP, len(group.PRs), plural(len(group.PRs))))
		sb.WriteString("    <div class=\"pr-list\">\n")
		for _, pr := range group.PRs {
			writePRItem(sb, pr)
		}
		sb.WriteString("    </div>\n</div>\n")
	}

	if len(view.GeneralPRs) > 0 {
		sb.WriteString("<div class=\"fip-pr-group\">\n")
		sb.WriteString("    <div class=\"fip-pr-header\"><strong>General FIP-Related PRs</strong></div>\n")
		sb.WriteString("    <div class=\"pr-list\">\n")
		for _, pr := range view.GeneralPRs {
			writePRItem(sb, pr)
		}
		sb.WriteString("    </div>\n</div>\n")
	}

	sb.WriteString("</div>\n")
}

func writePRItem(sb *strings.Builder, pr fips.PullRequestRef) {
	sb.WriteString("        <div class=\"pr-item\">\n")
	sb.WriteString(fmt.Sprintf("            <a href=\"%s\" target=\"_blank\" class=\"pr-link\">#%d: %s</a>\n",
		html.EscapeString(pr.URL), pr.Number, html.EscapeString(pr.Title)))
	sb.WriteString(fmt.Sprintf("            <span class=\"pr-meta\">By @%s • %s • %s</span>\n",
		html.EscapeString(pr.Author),
		pr.CreatedAt.Format("2006-01-02"),
		html.EscapeString(strings.Join(pr.Categories, ", "))))
	sb.WriteString("        </div>\n")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
