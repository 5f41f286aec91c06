package aggregate

import (
	"sort"

	"github.com/user/fips-dashboard/internal/fips"
)

type StatusGroup struct {
	Status  string
	Records []fips.ProposalRecord
}

// GroupByStatus partitions records by status: every record lands in exactly
// one group. Groups are ordered by size descending, ties by status name;
// records within a group by proposal number ascending.
func GroupByStatus(records []fips.ProposalRecord) []StatusGroup {
	byStatus := make(map[string][]fips.ProposalRecord)
	for _, r := range records {
		byStatus[r.Status] = append(byStatus[r.Status], r)
	}

	groups := make([]StatusGroup, 0, len(byStatus))
	for status, recs := range byStatus {
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].Number < recs[j].Number
		})
		groups = append(groups, StatusGroup{Status: status, Records: recs})
	}

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Records) != len(groups[j].Records) {
			return len(groups[i].Records) > len(groups[j].Records)
		}
		return groups[i].Status < groups[j].Status
	})

	return groups
}

type PRGroup struct {
	FIP string
	PRs []fips.PullRequestRef
}

// GroupPRsByFIP buckets pull requests under each proposal they reference,
// ordered by proposal number. A PR mentioning several proposals appears
// under each. PRs with no extracted proposal number are returned separately.
func GroupPRsByFIP(prs []fips.PullRequestRef) ([]PRGroup, []fips.PullRequestRef) {
	byFIP := make(map[string][]fips.PullRequestRef)
	var general []fips.PullRequestRef

	for _, pr := range prs {
		if len(pr.FIPNumbers) == 0 {
			general = append(general, pr)
			continue
		}
		for _, num := range pr.FIPNumbers {
			byFIP[num] = append(byFIP[num], pr)
		}
	}

	numbers := make([]string, 0, len(byFIP))
	for num := range byFIP {
		numbers = append(numbers, num)
	}
	sort.Strings(numbers)

	groups := make([]PRGroup, 0, len(numbers))
	for _, num := range numbers {
		prs := byFIP[num]
		sort.Slice(prs, func(i, j int) bool { return prs[i].Number < prs[j].Number })
		groups = append(groups, PRGroup{FIP: num, PRs: prs})
	}

	sort.Slice(general, func(i, j int) bool { return general[i].Number < general[j].Number })

	return groups, general
}

type StatusCount struct {
	Status string
	Count  int
}

type Summary struct {
	Total    int
	Final    int
	Draft    int
	InFlight int // Accepted + Last Call
	Counts   []StatusCount
}

// Summarize computes headline totals and a deterministic per-status count
// list, ordered by count descending then status name.
func Summarize(records []fips.ProposalRecord) Summary {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Status]++
	}

	s := Summary{
		Total:    len(records),
		Final:    counts["Final"],
		Draft:    counts["Draft"],
		InFlight: counts["Accepted"] + counts["Last Call"],
	}

	for status, n := range counts {
		s.Counts = append(s.Counts, StatusCount{Status: status, Count: n})
	}
	sort.Slice(s.Counts, func(i, j int) bool {
		if s.Counts[i].Count != s.Counts[j].Count {
			return s.Counts[i].Count > s.Counts[j].Count
		}
		return s.Counts[i].Status < s.Counts[j].Status
	})

	return s
}
