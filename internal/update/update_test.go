package update

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/sitekit-cli/internal/testutil"
)

func newTestChecker(t *testing.T, tag string) (*Checker, *bytes.Buffer, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(githubRelease{TagName: tag})
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	c := NewChecker(testutil.NewTestLogger(), srv.URL)
	c.cachePath = filepath.Join(t.TempDir(), cacheFileName)
	c.out = &out
	return c, &out, &calls
}

func TestCheck_NewerReleaseIsAnnounced(t *testing.T) {
	c, out, calls := newTestChecker(t, "v1.2.0")

	c.Check("version v1.1.0")
	assert.Contains(t, out.String(), "1.2.0 is the latest")
	assert.Equal(t, 1, *calls)

	data, err := os.ReadFile(c.cachePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "v1.2.0")
}

func TestCheck_UpToDateIsSilent(t *testing.T) {
	c, out, _ := newTestChecker(t, "v1.1.0")

	c.Check("v1.1.0")
	assert.Empty(t, out.String())
}

func TestCheck_FreshCacheSkipsFetch(t *testing.T) {
	c, out, calls := newTestChecker(t, "v9.9.9")
	require.NoError(t, c.saveCache(cacheState{LatestVersion: "v1.3.0", LastCheck: time.Now()}))

	c.Check("v1.0.0")
	assert.Zero(t, *calls)
	assert.Contains(t, out.String(), "1.3.0 is the latest")
}

func TestCheck_DevelopmentSkipped(t *testing.T) {
	t.Setenv(forceCheckEnvVar, "")
	c, out, calls := newTestChecker(t, "v1.0.0")

	c.Check("development")
	assert.Zero(t, *calls)
	assert.Empty(t, out.String())
}

func TestCheck_CorruptCacheIsIgnored(t *testing.T) {
	c, out, calls := newTestChecker(t, "v2.0.0")
	require.NoError(t, os.WriteFile(c.cachePath, []byte("{not json"), 0o600))

	c.Check("v1.0.0")
	assert.Equal(t, 1, *calls)
	assert.Contains(t, out.String(), "2.0.0 is the latest")
}
