package functions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/hooks"
	"github.com/sitekit/sitekit-cli/internal/runtime"
	"github.com/sitekit/sitekit-cli/internal/templaterepo"
	"github.com/sitekit/sitekit-cli/internal/testutil"
	"github.com/sitekit/sitekit-cli/internal/ui"
)

var errNoPrompt = errors.New("unexpected prompt")

type fakePrompter struct {
	name        string
	nameErr     error
	namePrompts []string
	choice      string
	url         string
	urlPrompts  int
}

func (p *fakePrompter) FunctionName(defaultName string, validate func(string) error) (string, error) {
	p.namePrompts = append(p.namePrompts, defaultName)
	if p.nameErr != nil {
		return "", p.nameErr
	}
	if p.name == "" {
		return defaultName, nil
	}
	return p.name, validate(p.name)
}

func (p *fakePrompter) Source(selector *fntemplate.Selector) (fntemplate.Choice, error) {
	if p.choice == "" {
		return fntemplate.Choice{}, errNoPrompt
	}
	c, ok := selector.Resolve(p.choice)
	if !ok {
		return fntemplate.Choice{}, fmt.Errorf("no choice %s", p.choice)
	}
	return c, nil
}

func (p *fakePrompter) RepoURL(validate func(string) error) (string, error) {
	p.urlPrompts++
	return p.url, nil
}

type startedInstall struct {
	name string
	dir  string
}

type fakeDeps struct {
	mu      sync.Mutex
	started []startedInstall
}

func (d *fakeDeps) Start(name, dir string, done func(error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = append(d.started, startedInstall{name: name, dir: dir})
}

type addonCall struct {
	addons []fntemplate.AddonRef
	path   string
}

type fakeAddons struct {
	calls []addonCall
	ok    bool
	err   error
}

func (a *fakeAddons) Install(_ context.Context, addons []fntemplate.AddonRef, functionPath string) (bool, error) {
	a.calls = append(a.calls, addonCall{addons: addons, path: functionPath})
	return a.ok, a.err
}

type fakeHooks struct {
	calls []*hooks.Hook
	dirs  []string
}

func (h *fakeHooks) Run(_ context.Context, hook *hooks.Hook, dir string, env map[string]string) error {
	h.calls = append(h.calls, hook)
	h.dirs = append(h.dirs, dir)
	return nil
}

// fakeRepo serves a fixed listing; contents maps download URL to body, and a
// URL missing from contents fails.
type fakeRepo struct {
	files    []templaterepo.FileEntry
	listErr  error
	contents map[string]string

	mu         sync.Mutex
	downloaded []string
}

func (r *fakeRepo) ListFiles(context.Context, string) ([]templaterepo.FileEntry, error) {
	return r.files, r.listErr
}

func (r *fakeRepo) Download(_ context.Context, downloadURL string, dst io.Writer) error {
	r.mu.Lock()
	r.downloaded = append(r.downloaded, downloadURL)
	r.mu.Unlock()

	body, ok := r.contents[downloadURL]
	if !ok {
		return errors.New("download returned status 404 Not Found")
	}
	_, err := io.Copy(dst, strings.NewReader(body))
	return err
}

type fixture struct {
	scaffolder *Scaffolder
	prompter   *fakePrompter
	deps       *fakeDeps
	addons     *fakeAddons
	hooks      *fakeHooks
	repo       *fakeRepo
	opened     []string
}

func templateFS() fstest.MapFS {
	return fstest.MapFS{
		"ts/hello-world-ts/.sitekit-function-template.yaml": {Data: []byte("name: hello-world-ts\ndescription: TS greeting\npriority: 1\n")},
		"ts/hello-world-ts/hello-world-ts.ts":               {Data: []byte("// {{functionName}} from {{templateName}}\n")},
		"js/fetcher/.sitekit-function-template.yaml":        {Data: []byte(fetcherManifest)},
		"js/fetcher/fetcher.js":                             {Data: []byte("module.exports = '{{functionName}}'\n")},
		"js/fetcher/package.json":                           {Data: []byte(`{"name": "{{functionName}}"}`)},
		"js/fetcher/_gitignore":                             {Data: []byte("node_modules\n")},
		"js/fetcher/lib/util.js.tmpl":                       {Data: []byte("// util for {{functionName}}\n")},
		"js/misnamed/.sitekit-function-template.yaml":       {Data: []byte("name: renamed-elsewhere\n")},
	}
}

const fetcherManifest = `name: fetcher
description: Fetch with deps and an add-on
addons:
  - addonName: fauna
onComplete:
  message: all done
`

func newFixture(t *testing.T, repo *fakeRepo) *fixture {
	t.Helper()
	catalog, err := fntemplate.Build(templateFS())
	require.NoError(t, err)

	f := &fixture{
		prompter: &fakePrompter{},
		deps:     &fakeDeps{},
		addons:   &fakeAddons{ok: true},
		hooks:    &fakeHooks{},
		repo:     repo,
	}
	if f.repo == nil {
		f.repo = &fakeRepo{}
	}
	f.scaffolder = NewScaffolder(Deps{
		Log:       testutil.NewTestLogger(),
		Catalog:   catalog,
		Prompter:  f.prompter,
		Repo:      f.repo,
		Installer: f.deps,
		Addons:    f.addons,
		Hooks:     f.hooks,
		Site:      runtime.NewSite("site-1", nil),
		OpenBrowser: func(url string) error {
			f.opened = append(f.opened, url)
			return nil
		},
		IssuesURL: "https://issues.test/new",
		Spinner:   ui.NewPlainSpinner(io.Discard),
	})
	return f
}
