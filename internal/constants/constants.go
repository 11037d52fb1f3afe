package constants

import (
	"time"
)

const (
	// Project files
	DefaultProjectSettingsFileName = "sitekit.toml"
	DefaultStateDirName            = ".sitekit"
	DefaultStateFileName           = "state.json"
	DefaultEnvFileName             = ".env"

	// Function scaffolding
	FunctionTemplateManifestFileName = ".sitekit-function-template.yaml"
	PackageManifestFileName          = "package.json"

	// Subprocess used for dependency installation
	DependencyInstallCommand = "npm"

	// Limits
	MaxURLLength = 2048

	// HTTP
	DefaultUserAgent   = "sitekit-cli"
	GitHubAPITimeout   = 10 * time.Second
	DownloadTimeout    = 30 * time.Second
	ProviderAPITimeout = 30 * time.Second

	// Environment variables
	SiteIDEnvVar       = "SITEKIT_SITE_ID"
	FunctionPathEnvVar = "SITEKIT_FUNCTION_PATH"
	GitHubTokenEnvVar  = "GITHUB_TOKEN"
)

// SingleFileFunctionExtensions are the extensions a function may use when it is
// deployed as one file rather than a directory.
var SingleFileFunctionExtensions = []string{".js", ".mjs", ".cjs", ".ts", ".go"}
