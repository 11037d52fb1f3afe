package context

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

// SetProjectContext changes the working directory to the project root and
// returns it. An explicit projectRootFlag wins; otherwise the nearest
// directory holding sitekit.toml is used, falling back to the current
// directory when none is found.
func SetProjectContext(projectRootFlag string, logger *zerolog.Logger) (string, error) {
	projectRoot, err := ResolveProjectRoot(projectRootFlag)
	if err != nil {
		return "", err
	}

	if err := os.Chdir(projectRoot); err != nil {
		return "", fmt.Errorf("failed to change directory to project root %s: %w", projectRoot, err)
	}
	logger.Debug().Str("projectRoot", projectRoot).Msg("Project context set")

	return projectRoot, nil
}

func ResolveProjectRoot(projectRootFlag string) (string, error) {
	if projectRootFlag != "" {
		resolvedPath, err := filepath.Abs(projectRootFlag)
		if err != nil {
			return "", fmt.Errorf("failed to resolve project root path '%s': %w", projectRootFlag, err)
		}

		info, err := os.Stat(resolvedPath)
		if os.IsNotExist(err) {
			return "", fmt.Errorf("project root path does not exist: %s", resolvedPath)
		} else if err != nil {
			return "", fmt.Errorf("failed to check project root path '%s': %w", resolvedPath, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project root path is not a directory: %s", resolvedPath)
		}
		return resolvedPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	projectSettingsPath, found, err := FindProjectSettingsPath(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to find project settings: %w", err)
	}
	if !found {
		return cwd, nil
	}

	return filepath.Dir(projectSettingsPath), nil
}

func FindProjectSettingsPath(startDir string) (string, bool, error) {
	var err error

	if startDir == "" {
		return "", false, fmt.Errorf("starting directory cannot be empty")
	}

	cwd := startDir

	for {
		filePath := filepath.Join(cwd, constants.DefaultProjectSettingsFileName)
		if _, err = os.Stat(filePath); err == nil {
			return filePath, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, fmt.Errorf("error checking project settings: %w", err)
		}

		parentDir := filepath.Dir(cwd)
		if parentDir == cwd {
			break
		}
		cwd = parentDir
	}

	return "", false, nil
}
