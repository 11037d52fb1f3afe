package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

type TokenSet struct {
	AccessToken string `json:"access_token" yaml:"AccessToken"`
	TokenType   string `json:"token_type"   yaml:"TokenType"`
	UserID      string `json:"user_id"      yaml:"UserID"`
}

type Credentials struct {
	Tokens   *TokenSet `yaml:"tokens"`
	AuthType string    `yaml:"auth_type"`
	log      *zerolog.Logger
}

const (
	AuthTokenEnvVar = "SITEKIT_AUTH_TOKEN"
	AuthTypeEnv     = "env-token"
	AuthTypeStored  = "stored-token"
	ConfigDir       = ".sitekit"
	ConfigFile      = "config.yaml"
)

var ErrNotLoggedIn = errors.New("you are not logged in, set " + AuthTokenEnvVar + " or store a token in ~/.sitekit/config.yaml")

// New loads credentials from SITEKIT_AUTH_TOKEN or ~/.sitekit/config.yaml, in
// that order.
func New(logger *zerolog.Logger) (*Credentials, error) {
	if token := os.Getenv(AuthTokenEnvVar); token != "" {
		logger.Debug().Msgf("Using access token from %s", AuthTokenEnvVar)
		return &Credentials{
			Tokens:   &TokenSet{AccessToken: token, TokenType: "Bearer"},
			AuthType: AuthTypeEnv,
			log:      logger,
		}, nil
	}

	path, err := ConfigPath()
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug().Err(err).Msgf("No credentials file at %s", path)
		return nil, ErrNotLoggedIn
	}

	cfg := &Credentials{AuthType: AuthTypeStored, log: logger}
	if err := yaml.Unmarshal(data, &cfg.Tokens); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	if cfg.Tokens == nil || cfg.Tokens.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}
	return cfg, nil
}

func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

func SaveCredentials(tokenSet *TokenSet) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(tokenSet)
	if err != nil {
		return fmt.Errorf("marshal token set: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file %s to %s: %w", tmp, path, err)
	}
	return nil
}
