package addons

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sitekit/sitekit-cli/internal/fntemplate"
	"github.com/sitekit/sitekit-cli/internal/hooks"
	"github.com/sitekit/sitekit-cli/internal/runtime"
	"github.com/sitekit/sitekit-cli/internal/siteapi"
)

const noSiteMessage = "No site id found, please run inside a site folder or `sitekit link`"

type SiteAPI interface {
	GetSite(ctx context.Context, accessToken, siteID string) (*siteapi.Site, error)
	CreateSiteAddon(ctx context.Context, accessToken, addonName string, site *siteapi.Site) (string, error)
	AddonEnv(ctx context.Context, accessToken, siteID string) (map[string]string, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context) (string, error)
}

// Installer provisions the add-ons a function declares against the linked site.
type Installer struct {
	log   *zerolog.Logger
	api   SiteAPI
	auth  Authenticator
	hooks hooks.Runner
	site  *runtime.Site

	// serializes the env refresh and install hook of each add-on
	mu sync.Mutex
}

func NewInstaller(log *zerolog.Logger, api SiteAPI, auth Authenticator, runner hooks.Runner, site *runtime.Site) *Installer {
	return &Installer{
		log:   log,
		api:   api,
		auth:  auth,
		hooks: runner,
		site:  site,
	}
}

// Install provisions every add-on concurrently and waits for all of them.
// It returns false without error when there is nothing to do or no linked site.
func (i *Installer) Install(ctx context.Context, addons []fntemplate.AddonRef, functionPath string) (bool, error) {
	if len(addons) == 0 {
		return false, nil
	}
	if i.site == nil || i.site.ID == "" {
		i.log.Info().Msg(noSiteMessage)
		return false, nil
	}

	accessToken, err := i.auth.Authenticate(ctx)
	if err != nil {
		return false, err
	}

	siteData, err := i.api.GetSite(ctx, accessToken, i.site.ID)
	if err != nil {
		return false, err
	}

	var g errgroup.Group
	for _, addon := range addons {
		g.Go(func() error {
			return i.installOne(ctx, accessToken, siteData, addon, functionPath)
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	return true, nil
}

func (i *Installer) installOne(ctx context.Context, accessToken string, siteData *siteapi.Site, addon fntemplate.AddonRef, functionPath string) error {
	i.log.Info().Msgf("installing addon: %s", addon.AddonName)

	msg, err := i.api.CreateSiteAddon(ctx, accessToken, addon.AddonName, siteData)
	if err != nil {
		return err
	}
	if msg == "" || addon.OnInstall.IsZero() {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	addonEnv, err := i.api.AddonEnv(ctx, accessToken, i.site.ID)
	if err != nil {
		return err
	}
	env := i.site.Env()
	maps.Copy(env, addonEnv)
	i.site.ReplaceEnv(env)

	if err := i.hooks.Run(ctx, addon.OnInstall, functionPath, env); err != nil {
		return fmt.Errorf("install hook for add-on %s failed: %w", addon.AddonName, err)
	}
	return nil
}
