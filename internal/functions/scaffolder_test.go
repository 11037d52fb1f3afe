package functions

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/sitekit-cli/internal/ui"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := ui.Out
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = prev })
	return &buf
}

func TestCreate_ReportChoiceOpensIssues(t *testing.T) {
	out := captureOutput(t)
	f := newFixture(t, nil)
	f.prompter.choice = "report"

	result, err := f.scaffolder.Create(context.Background(), Request{FunctionsDir: t.TempDir()})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []string{"https://issues.test/new"}, f.opened)
	assert.Contains(t, out.String(), "opening in browser: https://issues.test/new")
	assert.Empty(t, f.prompter.namePrompts)
}

func TestCreate_ReportChoiceBrowserFailureIsNotFatal(t *testing.T) {
	captureOutput(t)
	f := newFixture(t, nil)
	f.prompter.choice = "report"
	f.scaffolder.openBrowser = func(string) error { return errors.New("no browser") }

	result, err := f.scaffolder.Create(context.Background(), Request{FunctionsDir: t.TempDir()})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCreate_URLChoicePromptsForURL(t *testing.T) {
	f := newFixture(t, someFnRepo())
	f.prompter.choice = "url"
	f.prompter.url = "  " + someFnURL + "\n"
	functionsDir := t.TempDir()

	result, err := f.scaffolder.Create(context.Background(), Request{FunctionsDir: functionsDir})
	require.NoError(t, err)

	assert.Equal(t, 1, f.prompter.urlPrompts)
	assert.Equal(t, someFnURL, result.URL)
	assert.Equal(t, SourceRemoteURL, result.Source)
	assert.FileExists(t, filepath.Join(functionsDir, "some-fn", "some-fn.js"))
}

func TestCreate_URLChoiceDownloadError(t *testing.T) {
	repo := someFnRepo()
	repo.contents = map[string]string{}
	f := newFixture(t, repo)
	f.prompter.choice = "url"
	f.prompter.url = someFnURL

	_, err := f.scaffolder.Create(context.Background(), Request{FunctionsDir: t.TempDir()})
	assert.True(t, IsSourceAcquisitionError(err))
}

func TestCreate_URLFlagSkipsSourcePrompt(t *testing.T) {
	f := newFixture(t, someFnRepo())

	// an empty choice makes the fake prompter fail if asked for a source
	_, err := f.scaffolder.Create(context.Background(), Request{URL: someFnURL, FunctionsDir: t.TempDir()})
	require.NoError(t, err)
	assert.Zero(t, f.prompter.urlPrompts)
}

func TestCreate_SourcePromptError(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.scaffolder.Create(context.Background(), Request{FunctionsDir: t.TempDir()})
	assert.ErrorIs(t, err, errNoPrompt)
}

func TestSourceKind_String(t *testing.T) {
	assert.Equal(t, "template", SourceLocalTemplate.String())
	assert.Equal(t, "url", SourceRemoteURL.String())
}
