package siteapi

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"
	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/client/graphqlclient"
)

// Site is the slice of site data add-on provisioning needs.
type Site struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccountSlug string `json:"accountSlug"`
	URL         string `json:"url"`
}

// Client talks to the provider's site and add-on API.
type Client struct {
	gql *graphqlclient.Client
	log *zerolog.Logger
}

func New(gql *graphqlclient.Client, l *zerolog.Logger) *Client {
	return &Client{gql: gql, log: l}
}

func (c *Client) GetSite(ctx context.Context, accessToken, siteID string) (*Site, error) {
	req := graphql.NewRequest(`
	query GetSite($siteId: ID!) {
		getSite(siteId: $siteId) {
			id
			name
			accountSlug
			url
		}
	}`)
	req.Var("siteId", siteID)

	var resp struct {
		GetSite *Site `json:"getSite"`
	}
	if err := c.gql.Execute(ctx, accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch site %s: %w", siteID, err)
	}
	if resp.GetSite == nil {
		return nil, fmt.Errorf("site %s not found", siteID)
	}
	return resp.GetSite, nil
}

// CreateSiteAddon provisions addonName on site. The returned confirmation is
// empty when the add-on was already installed.
func (c *Client) CreateSiteAddon(ctx context.Context, accessToken, addonName string, site *Site) (string, error) {
	req := graphql.NewRequest(`
	mutation CreateSiteAddon($siteId: ID!, $addonName: String!) {
		createSiteAddon(input: {siteId: $siteId, addonName: $addonName}) {
			alreadyInstalled
			message
		}
	}`)
	req.Var("siteId", site.ID)
	req.Var("addonName", addonName)

	var resp struct {
		CreateSiteAddon struct {
			AlreadyInstalled bool   `json:"alreadyInstalled"`
			Message          string `json:"message"`
		} `json:"createSiteAddon"`
	}
	if err := c.gql.Execute(ctx, accessToken, req, &resp); err != nil {
		return "", fmt.Errorf("failed to create add-on %s: %w", addonName, err)
	}

	if resp.CreateSiteAddon.AlreadyInstalled {
		c.log.Info().Str("addon", addonName).Str("site", site.Name).Msg("The add-on has already been installed")
		return "", nil
	}

	msg := resp.CreateSiteAddon.Message
	if msg == "" {
		msg = fmt.Sprintf("Add-on %q created for %s", addonName, site.Name)
	}
	c.log.Info().Str("addon", addonName).Msg(msg)
	return msg, nil
}

// AddonEnv returns the environment variables every installed add-on exposes to site.
func (c *Client) AddonEnv(ctx context.Context, accessToken, siteID string) (map[string]string, error) {
	req := graphql.NewRequest(`
	query SiteAddonEnv($siteId: ID!) {
		siteAddonEnv(siteId: $siteId) {
			key
			value
		}
	}`)
	req.Var("siteId", siteID)

	var resp struct {
		SiteAddonEnv []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"siteAddonEnv"`
	}
	if err := c.gql.Execute(ctx, accessToken, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch add-on environment: %w", err)
	}

	env := make(map[string]string, len(resp.SiteAddonEnv))
	for _, kv := range resp.SiteAddonEnv {
		env[kv.Key] = kv.Value
	}
	return env, nil
}
