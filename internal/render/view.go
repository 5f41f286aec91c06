package render

import (
	"embed"
	"time"

	"github.com/user/fips-dashboard/internal/aggregate"
	"github.com/user/fips-dashboard/internal/fips"
)

//go:embed assets/dashboard.css assets/timeline.css
var assets embed.FS

// DashboardView is everything the dashboard page needs. GeneratedAt is
// caller-supplied so that rendering stays a pure function of the view.
type DashboardView struct {
	GeneratedAt time.Time
	Summary     aggregate.Summary
	Groups      []aggregate.StatusGroup
	PRsByFIP    []aggregate.PRGroup
	GeneralPRs  []fips.PullRequestRef
	FIPBaseURL  string // e.g. "https://github.com/filecoin-project/FIPs/blob/master/"
}

// TimelineView feeds the month-on-month timeline page.
type TimelineView struct {
	GeneratedAt time.Time
	Summary     aggregate.Summary
	Months      []aggregate.MonthChanges
	FIPBaseURL  string
}

func mustAsset(name string) string {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}
