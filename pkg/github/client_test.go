package github_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/user/fips-dashboard/pkg/github"
	"github.com/user/fips-dashboard/pkg/github/mocks"
)

func TestNewClient_Success(t *testing.T) {
	client := github.NewClient("test-token")

	require.NotNil(t, client)
}

func TestClient_ListPullRequests_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	responseBody := `[
		{
			"number": 1142,
			"title": "FIP-0105: update status to Last Call",
			"body": "Moves FIP-0105 forward",
			"html_url": "https://github.com/filecoin-project/FIPs/pull/1142",
			"state": "open",
			"draft": false,
			"created_at": "2025-06-01T10:00:00Z",
			"updated_at": "2025-06-10T10:00:00Z",
			"user": {"login": "author1"},
			"head": {"ref": "fip-0105-last-call"}
		},
		{
			"number": 1143,
			"title": "Fix typos in governance doc",
			"html_url": "https://github.com/filecoin-project/FIPs/pull/1143",
			"state": "open",
			"draft": true,
			"created_at": "2025-06-05T10:00:00Z",
			"updated_at": "2025-06-08T10:00:00Z",
			"user": {"login": "author2"},
			"head": {"ref": "typo-fixes"}
		}
	]`

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "https://api.github.com/repos/filecoin-project/FIPs/pulls?state=open&per_page=100&page=1", req.URL.String())
			require.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
			require.Equal(t, "application/vnd.github+json", req.Header.Get("Accept"))
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(responseBody)),
			}, nil
		})

	client := github.NewClientWithHTTP("test-token", mockHTTP)
	prs, err := client.ListPullRequests(context.Background(), "filecoin-project", "FIPs", "open")

	require.NoError(t, err)
	require.Len(t, prs, 2)
	require.Equal(t, 1142, prs[0].Number)
	require.Equal(t, "fip-0105-last-call", prs[0].Head.Ref)
	require.Equal(t, "author1", prs[0].User.Login)
	require.True(t, prs[1].Draft)
}

func TestClient_ListPullRequests_NoTokenNoAuthHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Empty(t, req.Header.Get("Authorization"))
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(`[]`)),
			}, nil
		})

	client := github.NewClientWithHTTP("", mockHTTP)
	prs, err := client.ListPullRequests(context.Background(), "filecoin-project", "FIPs", "open")

	require.NoError(t, err)
	require.Empty(t, prs)
}

func TestClient_ListPullRequests_APIError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{
			StatusCode: 403,
			Body:       io.NopCloser(strings.NewReader(`{"message": "rate limited"}`)),
		}, nil)

	client := github.NewClientWithHTTP("test-token", mockHTTP)
	prs, err := client.ListPullRequests(context.Background(), "filecoin-project", "FIPs", "open")

	require.Error(t, err)
	require.ErrorIs(t, err, github.ErrRetrieval)
	require.Contains(t, err.Error(), "403")
	require.Nil(t, prs)
}

func TestClient_ListPullRequests_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		Return(nil, errors.New("connection refused"))

	client := github.NewClientWithHTTP("test-token", mockHTTP)
	_, err := client.ListPullRequests(context.Background(), "filecoin-project", "FIPs", "open")

	require.Error(t, err)
	require.ErrorIs(t, err, github.ErrRetrieval)
	require.Contains(t, err.Error(), "connection refused")
}

func TestClient_ListCommits_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	responseBody := `[
		{
			"sha": "abc1234def",
			"commit": {
				"message": "Update FIP-0100 status",
				"committer": {"name": "bot", "date": "2025-07-15T12:00:00Z"}
			}
		}
	]`

	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/repos/filecoin-project/FIPs/commits", req.URL.Path)
			require.Equal(t, "README.md", req.URL.Query().Get("path"))
			require.Equal(t, "2025-01-01T00:00:00Z", req.URL.Query().Get("since"))
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(responseBody)),
			}, nil
		})

	client := github.NewClientWithHTTP("test-token", mockHTTP)
	commits, err := client.ListCommits(context.Background(), "filecoin-project", "FIPs", "README.md", since)

	require.NoError(t, err)
	require.Len(t, commits, 1)
	require.Equal(t, "abc1234def", commits[0].SHA)
	require.Equal(t, 2025, commits[0].Commit.Committer.Date.Year())
}

func TestClient_GetFileAt_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// base64 of "hello FIPs", wrapped the way the contents API wraps it
	responseBody := `{
		"name": "README.md",
		"path": "README.md",
		"sha": "abc1234",
		"encoding": "base64",
		"content": "aGVsbG8g\nRklQcw==\n"
	}`

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/repos/filecoin-project/FIPs/contents/README.md", req.URL.Path)
			require.Equal(t, "abc1234", req.URL.Query().Get("ref"))
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(responseBody)),
			}, nil
		})

	client := github.NewClientWithHTTP("test-token", mockHTTP)
	content, err := client.GetFileAt(context.Background(), "filecoin-project", "FIPs", "README.md", "abc1234")

	require.NoError(t, err)
	require.Equal(t, "hello FIPs", content)
}

func TestClient_GetFileAt_BadBase64(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`{"content": "!!! not base64 !!!"}`)),
		}, nil)

	client := github.NewClientWithHTTP("test-token", mockHTTP)
	_, err := client.GetFileAt(context.Background(), "filecoin-project", "FIPs", "README.md", "abc1234")

	require.Error(t, err)
	require.ErrorIs(t, err, github.ErrRetrieval)
}

func TestClient_GetRawFile_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "https://raw.githubusercontent.com/filecoin-project/FIPs/master/README.md", req.URL.String())
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader("# FIPs\n")),
			}, nil
		})

	client := github.NewClientWithHTTP("test-token", mockHTTP)
	content, err := client.GetRawFile(context.Background(), "filecoin-project", "FIPs", "master", "README.md")

	require.NoError(t, err)
	require.Equal(t, "# FIPs\n", content)
}

func TestClient_GetRawFile_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPDoer(ctrl)
	mockHTTP.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{
			StatusCode: 404,
			Body:       io.NopCloser(strings.NewReader("404: Not Found")),
		}, nil)

	client := github.NewClientWithHTTP("test-token", mockHTTP)
	_, err := client.GetRawFile(context.Background(), "filecoin-project", "FIPs", "master", "README.md")

	require.Error(t, err)
	require.ErrorIs(t, err, github.ErrRetrieval)
	require.Contains(t, err.Error(), "404")
}
