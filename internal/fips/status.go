package fips

import "strings"

// NormalizeStatus canonicalizes a raw status cell. "Superseded by FIP-XXXX"
// variants all collapse to plain "Superseded"; everything else is trimmed
// as-is. The README is the status vocabulary of record, so this is not a
// closed enum.
func NormalizeStatus(status string) string {
	if strings.Contains(status, "Superseded") {
		return "Superseded"
	}
	return strings.TrimSpace(status)
}

// StatusClass maps a status to its CSS badge class, falling back to the
// draft style for anything unrecognized.
func StatusClass(status string) string {
	switch s := strings.ToLower(status); {
	case strings.Contains(s, "final"):
		return "status-final"
	case strings.Contains(s, "draft"):
		return "status-draft"
	case strings.Contains(s, "accepted"):
		return "status-accepted"
	case strings.Contains(s, "deferred"):
		return "status-deferred"
	case strings.Contains(s, "rejected"):
		return "status-rejected"
	case strings.Contains(s, "withdrawn"):
		return "status-withdrawn"
	case strings.Contains(s, "active"):
		return "status-active"
	case strings.Contains(s, "last call"):
		return "status-last-call"
	case strings.Contains(s, "superseded"):
		return "status-superseded"
	default:
		return "status-draft"
	}
}
