package graphqlclient

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

type headerTransport struct {
	base http.RoundTripper
}

func newHeaderTransport(base http.RoundTripper) *headerTransport {
	return &headerTransport{base: base}
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Accept", "application/json")
	clone.Header.Set("User-Agent", constants.DefaultUserAgent)
	if clone.Header.Get("Idempotency-Key") == "" {
		clone.Header.Set("Idempotency-Key", uuid.New().String())
	}
	return t.base.RoundTrip(clone)
}
