package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/user/fips-dashboard/internal/aggregate"
	"github.com/user/fips-dashboard/internal/fips"
)

func snapshot(month string, statuses map[string]string) aggregate.Snapshot {
	proposals := make(map[string]fips.ProposalRecord, len(statuses))
	for num, status := range statuses {
		proposals[num] = fips.ProposalRecord{Number: num, Title: "FIP " + num, Status: status}
	}
	return aggregate.Snapshot{Month: month, Proposals: proposals}
}

func TestDiff_SingleTransition(t *testing.T) {
	prev := snapshot("2025-06", map[string]string{"0100": "Draft"})
	curr := snapshot("2025-07", map[string]string{"0100": "Final"})

	changes := aggregate.Diff(&prev, &curr)

	require.Len(t, changes.Transitions, 1)
	require.Equal(t, aggregate.Transition{
		Number: "0100",
		Title:  "FIP 0100",
		From:   "Draft",
		To:     "Final",
		Month:  "2025-07",
	}, changes.Transitions[0])
	require.Empty(t, changes.Added)
	require.Empty(t, changes.Removed)
}

func TestDiff_NoPriorSnapshot(t *testing.T) {
	curr := snapshot("2025-07", map[string]string{
		"0100": "Final",
		"0101": "Draft",
	})

	changes := aggregate.Diff(nil, &curr)

	require.Empty(t, changes.Transitions)
	require.Empty(t, changes.Added)
	require.Empty(t, changes.Removed)
	require.True(t, changes.Empty())
}

func TestDiff_AddedAndRemoved(t *testing.T) {
	prev := snapshot("2025-06", map[string]string{
		"0100": "Draft",
		"0090": "Final",
	})
	curr := snapshot("2025-07", map[string]string{
		"0100": "Draft",
		"0110": "Draft",
	})

	changes := aggregate.Diff(&prev, &curr)

	require.Empty(t, changes.Transitions)
	require.Len(t, changes.Added, 1)
	require.Equal(t, "0110", changes.Added[0].Number)
	require.Len(t, changes.Removed, 1)
	require.Equal(t, "0090", changes.Removed[0].Number)
	require.Equal(t, 2, changes.Count())
}

func TestDiff_UnchangedEmitsNothing(t *testing.T) {
	prev := snapshot("2025-06", map[string]string{"0100": "Draft"})
	curr := snapshot("2025-07", map[string]string{"0100": "Draft"})

	changes := aggregate.Diff(&prev, &curr)

	require.True(t, changes.Empty())
}

func TestBuildTimeline(t *testing.T) {
	snapshots := []aggregate.Snapshot{
		// out of order on purpose
		snapshot("2025-07", map[string]string{"0100": "Last Call"}),
		snapshot("2025-05", map[string]string{"0100": "Draft"}),
		snapshot("2025-06", map[string]string{"0100": "Draft"}),
		snapshot("2025-08", map[string]string{"0100": "Final"}),
	}

	timeline := aggregate.BuildTimeline(snapshots)

	// 2025-05 is the baseline, 2025-06 had no changes
	require.Len(t, timeline, 2)
	require.Equal(t, "2025-07", timeline[0].Month)
	require.Equal(t, "Draft", timeline[0].Transitions[0].From)
	require.Equal(t, "Last Call", timeline[0].Transitions[0].To)
	require.Equal(t, "2025-08", timeline[1].Month)
	require.Equal(t, "Final", timeline[1].Transitions[0].To)
}

func TestBuildTimeline_SingleSnapshot(t *testing.T) {
	timeline := aggregate.BuildTimeline([]aggregate.Snapshot{
		snapshot("2025-07", map[string]string{"0100": "Draft"}),
	})

	require.Empty(t, timeline)
}

func TestLatestPerMonth(t *testing.T) {
	commits := []aggregate.CommitRef{
		{SHA: "b", Date: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
		{SHA: "a", Date: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)},
		{SHA: "c", Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
	}

	latest := aggregate.LatestPerMonth(commits)

	require.Len(t, latest, 2)
	require.Equal(t, "b", latest[0].SHA)
	require.Equal(t, "c", latest[1].SHA)
}

func TestLatestPerMonth_Empty(t *testing.T) {
	require.Empty(t, aggregate.LatestPerMonth(nil))
}
