package runtime

import (
	"fmt"
	"maps"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/sitekit/sitekit-cli/internal/environments"
	"github.com/sitekit/sitekit-cli/internal/settings"
)

// Context is the per-invocation session shared by commands. It replaces any
// process-wide state: every component that needs the site or logger gets it
// from here.
type Context struct {
	Logger         *zerolog.Logger
	Viper          *viper.Viper
	Settings       *settings.Settings
	EnvironmentSet *environments.EnvironmentSet
	Site           *Site
}

// Site is the linked site plus the environment the session has accumulated for it.
type Site struct {
	ID string

	mu  sync.Mutex
	env map[string]string
}

func NewSite(id string, env map[string]string) *Site {
	s := &Site{ID: id, env: map[string]string{}}
	maps.Copy(s.env, env)
	return s
}

// Env returns a copy of the session environment.
func (s *Site) Env() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.env)
}

// ReplaceEnv swaps in next as the session environment. Callers read with Env,
// merge, and replace.
func (s *Site) ReplaceEnv(next map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = maps.Clone(next)
}

func NewContext(logger *zerolog.Logger, viper *viper.Viper) *Context {
	return &Context{
		Logger: logger,
		Viper:  viper,
		Site:   NewSite("", nil),
	}
}

func (ctx *Context) AttachSettings(projectRoot string) error {
	var err error

	ctx.Settings, err = settings.New(ctx.Logger, ctx.Viper, projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	ctx.Site = NewSite(ctx.Settings.Site.ID, nil)

	return nil
}

func (ctx *Context) AttachEnvironmentSet() error {
	var err error

	ctx.EnvironmentSet, err = environments.New()
	if err != nil {
		return fmt.Errorf("failed to load environment details: %w", err)
	}

	return nil
}
