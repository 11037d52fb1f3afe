package deps

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/sitekit-cli/internal/testutil"
)

func TestStartDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	inst := NewInstallerWithCommand(testutil.NewTestLogger(), func(ctx context.Context, dir string) ([]byte, error) {
		<-release
		return nil, nil
	})

	returned := make(chan struct{})
	go func() {
		inst.Start("hello", t.TempDir(), nil)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Start blocked on the install command")
	}

	close(release)
	inst.Wait()
}

func TestCompletionCallbackReceivesResult(t *testing.T) {
	boom := errors.New("npm exploded")
	logger, buf := testutil.NewBufferedLogger()

	inst := NewInstallerWithCommand(logger, func(ctx context.Context, dir string) ([]byte, error) {
		if dir == "bad" {
			return []byte("ERR!"), boom
		}
		return nil, nil
	})

	var (
		mu      sync.Mutex
		results = map[string]error{}
	)
	record := func(name string) func(error) {
		return func(err error) {
			mu.Lock()
			defer mu.Unlock()
			results[name] = err
		}
	}

	inst.Start("good", "good", record("good"))
	inst.Start("bad", "bad", record("bad"))
	inst.Wait()

	require.Len(t, results, 2)
	assert.NoError(t, results["good"])
	assert.ErrorIs(t, results["bad"], boom)

	out := buf.String()
	assert.Contains(t, out, "installing dependencies for good...")
	assert.Contains(t, out, "installing dependencies for good complete")
	assert.Contains(t, out, "installing dependencies for bad failed")
}
