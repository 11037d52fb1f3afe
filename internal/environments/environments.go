package environments

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	EnvVarEnv = "SITEKIT_CLI_ENV"

	EnvVarGraphQLURL   = "SITEKIT_CLI_GRAPHQL_URL"
	EnvVarGitHubAPIURL = "SITEKIT_CLI_GITHUB_API_URL"
	EnvVarIssuesURL    = "SITEKIT_CLI_ISSUES_URL"
	EnvVarReleasesURL  = "SITEKIT_CLI_RELEASES_URL"

	DefaultEnv = "PRODUCTION"
)

//go:embed environments.yaml
var envFileContent embed.FS

type EnvironmentSet struct {
	GraphQLURL   string `yaml:"SITEKIT_CLI_GRAPHQL_URL"`
	GitHubAPIURL string `yaml:"SITEKIT_CLI_GITHUB_API_URL"`
	IssuesURL    string `yaml:"SITEKIT_CLI_ISSUES_URL"`
	ReleasesURL  string `yaml:"SITEKIT_CLI_RELEASES_URL"`
}

type fileFormat struct {
	Envs map[string]EnvironmentSet `yaml:"ENVIRONMENTS"`
}

func loadEmbeddedEnvironmentFile() (*fileFormat, error) {
	data, err := envFileContent.ReadFile("environments.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded environments file: %w", err)
	}
	return parseEnvironmentFile(data)
}

func parseEnvironmentFile(data []byte) (*fileFormat, error) {
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("unmarshalling environments file: %w", err)
	}
	return &ff, nil
}

// NewEnvironmentSet picks envName (falling back to the default environment)
// and applies per-variable overrides from the process environment.
func NewEnvironmentSet(ff *fileFormat, envName string) *EnvironmentSet {
	set, ok := ff.Envs[envName]
	if !ok {
		set = ff.Envs[DefaultEnv]
	}

	overrides := map[string]*string{
		EnvVarGraphQLURL:   &set.GraphQLURL,
		EnvVarGitHubAPIURL: &set.GitHubAPIURL,
		EnvVarIssuesURL:    &set.IssuesURL,
		EnvVarReleasesURL:  &set.ReleasesURL,
	}
	for name, field := range overrides {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}

	return &set
}

func New() (*EnvironmentSet, error) {
	ff, err := loadEmbeddedEnvironmentFile()
	if err != nil {
		return nil, err
	}
	envName := os.Getenv(EnvVarEnv)
	if envName == "" {
		envName = DefaultEnv
	}
	return NewEnvironmentSet(ff, envName), nil
}
