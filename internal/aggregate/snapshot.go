package aggregate

import (
	"sort"
	"time"

	"github.com/user/fips-dashboard/internal/fips"
)

// MonthKey is the canonical snapshot key format, e.g. "2025-07".
const MonthKey = "2006-01"

// Snapshot is the full proposal status set as observed at one month
// boundary, taken from the latest README commit inside that month.
type Snapshot struct {
	Month      string
	CommitSHA  string
	CommitDate time.Time
	Proposals  map[string]fips.ProposalRecord
}

type Transition struct {
	Number string
	Title  string
	From   string
	To     string
	Month  string
}

type Entry struct {
	Number string
	Title  string
	Status string
}

// MonthChanges is everything that happened between two consecutive
// snapshots: proposals that appeared, changed status, or vanished.
type MonthChanges struct {
	Month       string
	Date        time.Time
	Added       []Entry
	Transitions []Transition
	Removed     []Entry
}

func (m MonthChanges) Empty() bool {
	return len(m.Added) == 0 && len(m.Transitions) == 0 && len(m.Removed) == 0
}

func (m MonthChanges) Count() int {
	return len(m.Added) + len(m.Transitions) + len(m.Removed)
}

// Diff compares curr against prev. A nil prev means no prior snapshot
// exists: nothing is emitted, however many records curr holds. A first
// appearance against an existing snapshot is an Added entry, never a
// transition.
func Diff(prev, curr *Snapshot) MonthChanges {
	changes := MonthChanges{Month: curr.Month, Date: curr.CommitDate}
	if prev == nil {
		return changes
	}

	for _, num := range sortedNumbers(curr.Proposals) {
		p := curr.Proposals[num]
		old, existed := prev.Proposals[num]
		if !existed {
			changes.Added = append(changes.Added, Entry{Number: num, Title: p.Title, Status: p.Status})
		} else if old.Status != p.Status {
			changes.Transitions = append(changes.Transitions, Transition{
				Number: num,
				Title:  p.Title,
				From:   old.Status,
				To:     p.Status,
				Month:  curr.Month,
			})
		}
	}

	for _, num := range sortedNumbers(prev.Proposals) {
		if _, ok := curr.Proposals[num]; !ok {
			old := prev.Proposals[num]
			changes.Removed = append(changes.Removed, Entry{Number: num, Title: old.Title, Status: old.Status})
		}
	}

	return changes
}

// BuildTimeline diffs a snapshot series month over month. Snapshots are
// sorted by month first; the earliest month is the baseline and emits
// nothing. Months without changes are dropped.
func BuildTimeline(snapshots []Snapshot) []MonthChanges {
	sorted := make([]Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	var timeline []MonthChanges
	for i := 1; i < len(sorted); i++ {
		changes := Diff(&sorted[i-1], &sorted[i])
		if !changes.Empty() {
			timeline = append(timeline, changes)
		}
	}
	return timeline
}

// CommitRef identifies one README commit for snapshot selection.
type CommitRef struct {
	SHA  string
	Date time.Time
}

// LatestPerMonth picks the newest commit inside each calendar month,
// returned in chronological month order.
func LatestPerMonth(commits []CommitRef) []CommitRef {
	latest := make(map[string]CommitRef)
	for _, c := range commits {
		key := c.Date.Format(MonthKey)
		if cur, ok := latest[key]; !ok || c.Date.After(cur.Date) {
			latest[key] = c
		}
	}

	months := make([]string, 0, len(latest))
	for m := range latest {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]CommitRef, 0, len(months))
	for _, m := range months {
		out = append(out, latest[m])
	}
	return out
}

func sortedNumbers(proposals map[string]fips.ProposalRecord) []string {
	numbers := make([]string, 0, len(proposals))
	for n := range proposals {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	return numbers
}
