package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

const loadEnvErrorMessage = "Not able to load configuration from .env file, skipping this optional step.\n" +
	"If you want to use a .env file, check that it exists in the project root or pass its location with --env."

// Settings is everything a command needs to know about the project it runs in.
type Settings struct {
	ProjectRoot string
	Project     ProjectSettings
	Site        SiteState
}

// New loads the optional .env file, then sitekit.toml and the linked-site state
// rooted at projectRoot. Missing files yield zero values, not errors.
func New(logger *zerolog.Logger, v *viper.Viper, projectRoot string) (*Settings, error) {
	envPath := v.GetString(Flags.CliEnvFile.Name)
	if err := LoadEnv(envPath, projectRoot); err != nil {
		logger.Debug().Err(err).Msg(loadEnvErrorMessage)
	}

	if err := v.BindEnv(constants.SiteIDEnvVar); err != nil {
		return nil, fmt.Errorf("failed to bind environment variable: %s", constants.SiteIDEnvVar)
	}

	project, err := LoadProjectSettings(filepath.Join(projectRoot, constants.DefaultProjectSettingsFileName))
	if err != nil {
		return nil, err
	}

	site, err := LoadSiteState(filepath.Join(projectRoot, constants.DefaultStateDirName, constants.DefaultStateFileName))
	if err != nil {
		return nil, err
	}
	if id := v.GetString(constants.SiteIDEnvVar); id != "" {
		site.ID = id
	}

	logger.Debug().
		Str("projectRoot", projectRoot).
		Str("functions", project.Build.Functions).
		Str("siteId", site.ID).
		Msg("Settings loaded")

	return &Settings{
		ProjectRoot: projectRoot,
		Project:     project,
		Site:        site,
	}, nil
}

func LoadEnv(envPath, projectRoot string) error {
	if envPath != "" {
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(projectRoot, envPath)
		}
		if info, err := os.Stat(envPath); err == nil && !info.IsDir() {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading file from %s: %w", envPath, err)
			}
			return nil
		}
	}

	foundEnvPath, err := findEnvFile(projectRoot, constants.DefaultEnvFileName)
	if err != nil {
		return fmt.Errorf("error loading environment: %w", err)
	}

	if err := godotenv.Load(foundEnvPath); err != nil {
		return fmt.Errorf("error loading file from %s: %w", foundEnvPath, err)
	}
	return nil
}

func findEnvFile(startDir, fileName string) (string, error) {
	dir := startDir

	for {
		filePath := filepath.Join(dir, fileName)

		if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
			return filePath, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}
	return "", fmt.Errorf("file %s not found in any parent directory starting from %s", fileName, startDir)
}
