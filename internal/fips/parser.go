package fips

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	tableRowStart = "| ["
	separatorRe   = regexp.MustCompile(`^\|[\s\-|:]+$`)
	numberLinkRe  = regexp.MustCompile(`\[(\d+)\]`)
)

// ParseProposals extracts the proposal index table from the FIPs README.
// Only rows typed FIP are kept; FRC rows are skipped. Returns ErrParse when
// the README has no proposal table or a proposal row is missing its status
// column.
func ParseProposals(readme string) ([]ProposalRecord, error) {
	var proposals []ProposalRecord

	inTable := false
	for _, line := range strings.Split(readme, "\n") {
		if strings.Contains(line, "| FIP #") && strings.Contains(line, "Status") {
			inTable = true
			continue
		}

		if inTable && separatorRe.MatchString(line) {
			continue
		}

		if !inTable || !strings.HasPrefix(line, tableRowStart) {
			continue
		}

		var parts []string
		for _, p := range strings.Split(line, "|") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}

		m := numberLinkRe.FindStringSubmatch(parts[0])
		if m == nil {
			continue
		}
		number := PadNumber(m[1])

		if len(parts) < 5 {
			return nil, fmt.Errorf("%w: row for FIP %s is missing columns", ErrParse, number)
		}

		if !strings.EqualFold(strings.TrimSpace(parts[2]), "FIP") {
			continue
		}

		proposals = append(proposals, ProposalRecord{
			Number:  number,
			Title:   parts[1],
			Type:    parts[2],
			Authors: parts[3],
			Status:  NormalizeStatus(parts[4]),
		})
	}

	if !inTable {
		return nil, fmt.Errorf("%w: no proposal table found in README", ErrParse)
	}

	return proposals, nil
}

// PadNumber zero-pads a proposal number to the canonical four digits.
func PadNumber(n string) string {
	if len(n) >= 4 {
		return n
	}
	return strings.Repeat("0", 4-len(n)) + n
}
