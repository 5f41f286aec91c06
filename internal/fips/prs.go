package fips

import (
	"regexp"
	"sort"
	"strings"

	"github.com/user/fips-dashboard/pkg/github"
)

const bodyExcerptLen = 200

var fipRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)FIP[-\s]?(\d{4})`),
	regexp.MustCompile(`\[(\d{4})\]`),
	regexp.MustCompile(`#(\d{4})`),
}

// ExtractFIPNumbers finds proposal references in free text: FIP-0001,
// fip 0001, [0001] and #0001 forms. The result is sorted and deduplicated.
func ExtractFIPNumbers(text string) []string {
	seen := make(map[string]struct{})
	for _, re := range fipRefPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			seen[PadNumber(m[1])] = struct{}{}
		}
	}

	numbers := make([]string, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	return numbers
}

// Categorize derives coarse categories from a PR's title and body.
func Categorize(title, body string) []string {
	titleLower := strings.ToLower(title)
	combined := titleLower + " " + strings.ToLower(body)

	var categories []string
	if containsAny(titleLower, "new", "add", "create") {
		categories = append(categories, "New FIP")
	}
	if containsAny(titleLower, "update", "modify", "change") {
		categories = append(categories, "Update FIP")
	}
	if containsAny(combined, "status", "final", "draft") {
		categories = append(categories, "Status Change")
	}
	if containsAny(combined, "supersede", "replace") {
		categories = append(categories, "Supersede")
	}

	if len(categories) == 0 {
		return []string{"General"}
	}
	return categories
}

// ClassifyPRs converts raw API pull requests into annotated refs. The
// proposal numbers are extracted from title, body and branch name together.
func ClassifyPRs(prs []github.PullRequest) []PullRequestRef {
	refs := make([]PullRequestRef, 0, len(prs))
	for _, pr := range prs {
		searchText := pr.Title + " " + pr.Body + " " + pr.Head.Ref

		body := pr.Body
		if runes := []rune(body); len(runes) > bodyExcerptLen {
			body = string(runes[:bodyExcerptLen]) + "..."
		}

		refs = append(refs, PullRequestRef{
			Number:     pr.Number,
			Title:      pr.Title,
			Body:       body,
			URL:        pr.HTMLURL,
			Author:     pr.User.Login,
			Branch:     pr.Head.Ref,
			CreatedAt:  pr.CreatedAt,
			UpdatedAt:  pr.UpdatedAt,
			FIPNumbers: ExtractFIPNumbers(searchText),
			Categories: Categorize(pr.Title, pr.Body),
		})
	}
	return refs
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
