package graphqlclient

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/machinebox/graphql"
	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

var ErrMissingToken = errors.New("access token not provided")

var authorizationHeader = regexp.MustCompile(`Authorization:\[[^\]]*\]`)

// Client runs GraphQL requests against the provider API.
type Client struct {
	client *graphql.Client
	log    *zerolog.Logger
}

func New(endpoint string, l *zerolog.Logger) *Client {
	return NewWithHTTPClient(endpoint, &http.Client{Timeout: constants.ProviderAPITimeout}, l)
}

// NewWithHTTPClient wraps base's transport with the CLI's standard headers.
func NewWithHTTPClient(endpoint string, base *http.Client, l *zerolog.Logger) *Client {
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	httpClient := &http.Client{
		Timeout:   base.Timeout,
		Transport: newHeaderTransport(transport),
	}

	gqlClient := graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient))
	gqlClient.Log = func(s string) {
		l.Debug().Str("client", "GraphQL").Msg(redactSensitiveHeaders(s))
	}

	return &Client{
		client: gqlClient,
		log:    l,
	}
}

// Execute sends req authorized with accessToken and decodes the data into resp.
func (c *Client) Execute(ctx context.Context, accessToken string, req *graphql.Request, resp any) error {
	if accessToken == "" {
		return ErrMissingToken
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.client.Run(ctx, req, resp)
}

func redactSensitiveHeaders(s string) string {
	return authorizationHeader.ReplaceAllString(s, "Authorization:[[REDACTED]]")
}
