package addons

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/sitekit-cli/internal/client/graphqlclient"
	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/hooks"
	"github.com/sitekit/sitekit-cli/internal/runtime"
	"github.com/sitekit/sitekit-cli/internal/siteapi"
	"github.com/sitekit/sitekit-cli/internal/testutil"
)

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Authenticate(context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type hookCall struct {
	hook *hooks.Hook
	dir  string
	env  map[string]string
}

type recordingRunner struct {
	mu    sync.Mutex
	calls []hookCall
	err   error
}

func (r *recordingRunner) Run(_ context.Context, hook *hooks.Hook, dir string, env map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, hookCall{hook: hook, dir: dir, env: env})
	return r.err
}

func siteResolvers(addonMessages map[string]string) map[string]testutil.GraphQLResolver {
	return map[string]testutil.GraphQLResolver{
		"getSite": func(vars map[string]any) (any, string) {
			return map[string]any{"getSite": map[string]any{"id": vars["siteId"], "name": "my-site"}}, ""
		},
		"createSiteAddon": func(vars map[string]any) (any, string) {
			name, _ := vars["addonName"].(string)
			msg, ok := addonMessages[name]
			if !ok {
				return nil, "unknown add-on " + name
			}
			return map[string]any{"createSiteAddon": map[string]any{"alreadyInstalled": msg == "", "message": msg}}, ""
		},
		"siteAddonEnv": func(map[string]any) (any, string) {
			return map[string]any{"siteAddonEnv": []map[string]string{
				{"key": "FAUNADB_SERVER_SECRET", "value": "s3cr3t"},
			}}, ""
		},
	}
}

func newInstaller(t *testing.T, mock *testutil.GraphQLMock, auth Authenticator, runner hooks.Runner, site *runtime.Site) *Installer {
	t.Helper()
	logger := testutil.NewTestLogger()
	api := siteapi.New(graphqlclient.New(mock.GraphQLURL(), logger), logger)
	return NewInstaller(logger, api, auth, runner, site)
}

var bootstrapHook = &hooks.Hook{Run: [][]string{{"npm", "run", "bootstrap"}}}

func TestInstall_EmptyListIsNoop(t *testing.T) {
	mock := testutil.NewGraphQLMockServer(t, siteResolvers(nil))
	auth := &fakeAuth{token: "tok"}
	inst := newInstaller(t, mock, auth, &recordingRunner{}, runtime.NewSite("site-1", nil))

	ok, err := inst.Install(context.Background(), nil, "/fns/hello")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, mock.TotalCalls())
	assert.Equal(t, 0, auth.calls)
}

func TestInstall_MissingSiteIDIsRecoverable(t *testing.T) {
	mock := testutil.NewGraphQLMockServer(t, siteResolvers(map[string]string{"fauna": "ok"}))
	logger, buf := testutil.NewBufferedLogger()
	auth := &fakeAuth{token: "tok"}
	api := siteapi.New(graphqlclient.New(mock.GraphQLURL(), logger), logger)
	inst := NewInstaller(logger, api, auth, &recordingRunner{}, runtime.NewSite("", nil))

	ok, err := inst.Install(context.Background(), []fntemplate.AddonRef{{AddonName: "fauna"}}, "/fns/hello")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, mock.TotalCalls())
	assert.Equal(t, 0, auth.calls)
	assert.Contains(t, buf.String(), "No site id found")
}

func TestInstall_ProvisionsAndRunsHooks(t *testing.T) {
	mock := testutil.NewGraphQLMockServer(t, siteResolvers(map[string]string{
		"fauna":    "fauna provisioned",
		"identity": "identity provisioned",
	}))
	site := runtime.NewSite("site-1", map[string]string{"EXISTING": "1"})
	runner := &recordingRunner{}
	inst := newInstaller(t, mock, &fakeAuth{token: "tok"}, runner, site)

	ok, err := inst.Install(context.Background(), []fntemplate.AddonRef{
		{AddonName: "fauna", OnInstall: bootstrapHook},
		{AddonName: "identity"},
	}, "/fns/hello")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 1, mock.Calls("getSite"))
	assert.Equal(t, 2, mock.Calls("createSiteAddon"))
	assert.Equal(t, 1, mock.Calls("siteAddonEnv"))

	require.Len(t, runner.calls, 1)
	assert.Same(t, bootstrapHook, runner.calls[0].hook)
	assert.Equal(t, "/fns/hello", runner.calls[0].dir)
	assert.Equal(t, map[string]string{"EXISTING": "1", "FAUNADB_SERVER_SECRET": "s3cr3t"}, runner.calls[0].env)
	assert.Equal(t, map[string]string{"EXISTING": "1", "FAUNADB_SERVER_SECRET": "s3cr3t"}, site.Env())
}

func TestInstall_AlreadyInstalledSkipsHook(t *testing.T) {
	mock := testutil.NewGraphQLMockServer(t, siteResolvers(map[string]string{"fauna": ""}))
	runner := &recordingRunner{}
	inst := newInstaller(t, mock, &fakeAuth{token: "tok"}, runner, runtime.NewSite("site-1", nil))

	ok, err := inst.Install(context.Background(), []fntemplate.AddonRef{{AddonName: "fauna", OnInstall: bootstrapHook}}, "/fns/hello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, runner.calls)
	assert.Equal(t, 0, mock.Calls("siteAddonEnv"))
}

func TestInstall_ProvisioningFailurePropagates(t *testing.T) {
	mock := testutil.NewGraphQLMockServer(t, siteResolvers(map[string]string{"fauna": "ok"}))
	inst := newInstaller(t, mock, &fakeAuth{token: "tok"}, &recordingRunner{}, runtime.NewSite("site-1", nil))

	_, err := inst.Install(context.Background(), []fntemplate.AddonRef{
		{AddonName: "fauna"},
		{AddonName: "does-not-exist"},
	}, "/fns/hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown add-on does-not-exist")
	// every provisioning call still fires
	assert.Equal(t, 2, mock.Calls("createSiteAddon"))
}

func TestInstall_AuthFailurePropagates(t *testing.T) {
	mock := testutil.NewGraphQLMockServer(t, siteResolvers(map[string]string{"fauna": "ok"}))
	boom := errors.New("authentication failed: not logged in")
	inst := newInstaller(t, mock, &fakeAuth{err: boom}, &recordingRunner{}, runtime.NewSite("site-1", nil))

	_, err := inst.Install(context.Background(), []fntemplate.AddonRef{{AddonName: "fauna"}}, "/fns/hello")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, mock.TotalCalls())
}

func TestInstall_HookFailurePropagates(t *testing.T) {
	mock := testutil.NewGraphQLMockServer(t, siteResolvers(map[string]string{"fauna": "ok"}))
	runner := &recordingRunner{err: errors.New("npm missing")}
	inst := newInstaller(t, mock, &fakeAuth{token: "tok"}, runner, runtime.NewSite("site-1", nil))

	_, err := inst.Install(context.Background(), []fntemplate.AddonRef{{AddonName: "fauna", OnInstall: bootstrapHook}}, "/fns/hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install hook for add-on fauna failed")
}
