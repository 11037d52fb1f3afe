package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/credentials"
)

// Service hands out the access token for the current session. Credentials are
// read on first use, so commands that never talk to the provider API work
// without a login.
type Service struct {
	log  *zerolog.Logger
	load func(*zerolog.Logger) (*credentials.Credentials, error)

	once  sync.Once
	creds *credentials.Credentials
	err   error
}

func NewService(logger *zerolog.Logger) *Service {
	return &Service{log: logger, load: credentials.New}
}

// NewServiceWithCredentials skips loading and always returns creds.
func NewServiceWithCredentials(logger *zerolog.Logger, creds *credentials.Credentials) *Service {
	return &Service{
		log: logger,
		load: func(*zerolog.Logger) (*credentials.Credentials, error) {
			return creds, nil
		},
	}
}

// Authenticate returns a bearer access token or an error if the user is not
// logged in.
func (s *Service) Authenticate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.once.Do(func() {
		s.creds, s.err = s.load(s.log)
	})
	if s.err != nil {
		return "", fmt.Errorf("authentication failed: %w", s.err)
	}
	if s.creds == nil || s.creds.Tokens == nil || s.creds.Tokens.AccessToken == "" {
		return "", fmt.Errorf("authentication failed: %w", credentials.ErrNotLoggedIn)
	}

	s.log.Debug().Str("auth_type", s.creds.AuthType).Msg("Authenticated")
	return s.creds.Tokens.AccessToken, nil
}
