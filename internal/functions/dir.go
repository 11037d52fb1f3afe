package functions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
)

// ResolveFunctionsDir returns the --functions flag value, else the configured
// [build] functions folder, creating it when it does not exist yet.
func ResolveFunctionsDir(log *zerolog.Logger, flag, configured string) (string, error) {
	dir := flag
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		log.Error().Msg("No functions folder specified in sitekit.toml or as an argument")
		return "", &MissingFunctionsDirError{}
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return dir, nil
	case err == nil:
		return "", fmt.Errorf("functions folder %s is not a directory", dir)
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to check functions folder %s: %w", dir, err)
	}

	log.Info().Msgf("functions folder %s specified but folder not found, creating it...", dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create functions folder %s: %w", dir, err)
	}
	log.Info().Msgf("functions folder %s created", dir)
	return dir, nil
}
