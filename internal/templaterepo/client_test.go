package templaterepo

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/sitekit-cli/internal/testutil"
)

const (
	testAPIURL   = "https://api.github.test"
	testRepoURL  = "https://github.com/org/repo/tree/main/some-fn"
	contentsPath = testAPIURL + "/repos/org/repo/contents/some-fn"
)

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	c := NewClientWithHTTPClient(testutil.NewTestLogger(), testAPIURL, &http.Client{})
	httpmock.ActivateNonDefault(c.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestListFiles(t *testing.T) {
	c := newMockedClient(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	httpmock.RegisterResponderWithQuery(http.MethodGet, contentsPath, "ref=main",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "Bearer gh-token" {
				return httpmock.NewStringResponse(401, "missing token"), nil
			}
			if req.Header.Get("User-Agent") != "sitekit-cli" {
				return httpmock.NewStringResponse(400, "missing user agent"), nil
			}
			return httpmock.NewJsonResponse(200, []map[string]any{
				{"name": "some-fn.js", "path": "some-fn/some-fn.js", "type": "file", "download_url": "https://raw.test/some-fn.js"},
				{"name": "lib", "path": "some-fn/lib", "type": "dir", "download_url": nil},
				{"name": "package.json", "path": "some-fn/package.json", "type": "file", "download_url": "https://raw.test/package.json"},
			})
		})

	files, err := c.ListFiles(context.Background(), testRepoURL)
	require.NoError(t, err)
	assert.Equal(t, []FileEntry{
		{Name: "some-fn.js", DownloadURL: "https://raw.test/some-fn.js"},
		{Name: "package.json", DownloadURL: "https://raw.test/package.json"},
	}, files)
}

func TestListFiles_NotAFolder(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, contentsPath, "ref=main",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"name": "some-fn", "path": "some-fn", "type": "file", "download_url": "https://raw.test/some-fn",
		}))

	_, err := c.ListFiles(context.Background(), testRepoURL)
	assert.ErrorIs(t, err, ErrNotAFolder)
}

func TestListFiles_HTTPError(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, contentsPath, "ref=main",
		httpmock.NewStringResponder(404, `{"message":"Not Found"}`))

	_, err := c.ListFiles(context.Background(), testRepoURL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestListFiles_InvalidURL(t *testing.T) {
	c := newMockedClient(t)

	_, err := c.ListFiles(context.Background(), "https://github.com/org/repo")
	require.Error(t, err)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestDownload(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, "https://raw.test/ok.js", httpmock.NewStringResponder(200, "exports.handler = 1"))
	httpmock.RegisterResponder(http.MethodGet, "https://raw.test/missing.js", httpmock.NewStringResponder(404, "nope"))
	httpmock.RegisterResponder(http.MethodGet, "https://raw.test/broken.js", httpmock.NewErrorResponder(errors.New("connection reset")))

	var buf bytes.Buffer
	require.NoError(t, c.Download(context.Background(), "https://raw.test/ok.js", &buf))
	assert.Equal(t, "exports.handler = 1", buf.String())

	err := c.Download(context.Background(), "https://raw.test/missing.js", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	err = c.Download(context.Background(), "https://raw.test/broken.js", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
