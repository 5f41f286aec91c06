package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

//go:generate mockgen -destination=mocks/http_doer_mock.go -package=mocks github.com/user/fips-dashboard/pkg/github HTTPDoer

// ErrRetrieval marks any failure to obtain data from GitHub: transport
// errors, non-2xx responses and undecodable payloads alike.
var ErrRetrieval = errors.New("github retrieval failed")

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	token      string
	httpClient HTTPDoer
	baseURL    string
	rawBaseURL string
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{},
		baseURL:    "https://api.github.com",
		rawBaseURL: "https://raw.githubusercontent.com",
	}
}

func NewClientWithHTTP(token string, httpClient HTTPDoer) *Client {
	return &Client{
		token:      token,
		httpClient: httpClient,
		baseURL:    "https://api.github.com",
		rawBaseURL: "https://raw.githubusercontent.com",
	}
}

// ListPullRequests returns all pull requests in the given state, following
// pagination until the API runs dry.
func (c *Client) ListPullRequests(ctx context.Context, owner, repo, state string) ([]PullRequest, error) {
	var allPRs []PullRequest
	page := 1

	for {
		url := fmt.Sprintf("%s/repos/%s/%s/pulls?state=%s&per_page=100&page=%d", c.baseURL, owner, repo, state, page)

		var prs []PullRequest
		if err := c.getJSON(ctx, url, &prs); err != nil {
			return nil, fmt.Errorf("listing pull requests: %w", err)
		}

		if len(prs) == 0 {
			break
		}

		allPRs = append(allPRs, prs...)

		if len(prs) < 100 {
			break
		}
		page++
	}

	return allPRs, nil
}

// ListCommits returns the commit history touching path, newest first,
// restricted to commits after since when since is non-zero.
func (c *Client) ListCommits(ctx context.Context, owner, repo, path string, since time.Time) ([]Commit, error) {
	var allCommits []Commit
	page := 1

	for {
		u := fmt.Sprintf("%s/repos/%s/%s/commits?path=%s&per_page=100&page=%d", c.baseURL, owner, repo, url.QueryEscape(path), page)
		if !since.IsZero() {
			u += "&since=" + url.QueryEscape(since.Format(time.RFC3339))
		}

		var commits []Commit
		if err := c.getJSON(ctx, u, &commits); err != nil {
			return nil, fmt.Errorf("listing commits: %w", err)
		}

		if len(commits) == 0 {
			break
		}

		allCommits = append(allCommits, commits...)

		if len(commits) < 100 {
			break
		}
		page++
	}

	return allCommits, nil
}

// GetFileAt returns the decoded content of path at the given ref via the
// contents API. An empty ref means the default branch HEAD.
func (c *Client) GetFileAt(ctx context.Context, owner, repo, path, ref string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}

	var content FileContent
	if err := c.getJSON(ctx, u, &content); err != nil {
		return "", fmt.Errorf("fetching %s: %w", path, err)
	}

	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(content.Content))
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w: decoding content: %v", path, ErrRetrieval, err)
	}

	return string(decoded), nil
}

// GetRawFile returns the current content of path on branch from the raw
// content host. No token is sent; raw content is public.
func (c *Client) GetRawFile(ctx context.Context, owner, repo, branch, path string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/%s", c.rawBaseURL, owner, repo, branch, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching raw %s: %w: %v", path, ErrRetrieval, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching raw %s: %w: status %d", path, ErrRetrieval, resp.StatusCode)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("fetching raw %s: %w: reading body: %v", path, ErrRetrieval, err)
	}
	return buf.String(), nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: executing request: %v", ErrRetrieval, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GitHub API error: %d", ErrRetrieval, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrRetrieval, err)
	}

	return nil
}

// The contents API wraps base64 payloads at 60 columns.
func stripNewlines(s string) string {
	return string(bytes.ReplaceAll([]byte(s), []byte("\n"), nil))
}
