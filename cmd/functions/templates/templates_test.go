package templates

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/testutil"
	"github.com/sitekit/sitekit-cli/internal/ui"
)

func TestFormatCatalogTable(t *testing.T) {
	catalog, err := fntemplate.Build(fstest.MapFS{
		"js/store/.sitekit-function-template.yaml": {Data: []byte("name: store\ndescription: Stores things\npriority: 3\naddons:\n  - addonName: fauna\n  - addonName: redis\n")},
		"go/ping/.sitekit-function-template.yaml":  {Data: []byte("name: ping\ndescription: Pings\n")},
	})
	require.NoError(t, err)

	out := FormatCatalogTable(catalog)
	assert.Contains(t, out, "LANGUAGE")
	assert.Contains(t, out, "fauna, redis")
	assert.Contains(t, out, "999")
	assert.Less(t, bytes.Index([]byte(out), []byte("store")), bytes.Index([]byte(out), []byte("ping")), "js is listed before go")
}

func TestExecute_Builtin(t *testing.T) {
	var buf bytes.Buffer
	prev := ui.Out
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = prev })

	h := &handler{log: testutil.NewTestLogger()}
	require.NoError(t, h.Execute(""))

	assert.Contains(t, buf.String(), "hello-world")
	assert.Contains(t, buf.String(), "hello-world-go")
	assert.Contains(t, buf.String(), "sitekit functions create")
}

func TestExecute_EmptyTemplatesDir(t *testing.T) {
	var buf bytes.Buffer
	prev := ui.Out
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = prev })

	h := &handler{log: testutil.NewTestLogger()}
	require.NoError(t, h.Execute(t.TempDir()))
	assert.Contains(t, buf.String(), "No function templates found")
}
