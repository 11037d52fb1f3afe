package functions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sitekit/sitekit-cli/internal/constants"
)

// CheckTarget fails if anything already exists at path.
func CheckTarget(path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		return &TargetExistsError{Path: path}
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	return nil
}

// CheckRemoteTarget tolerates an existing directory at path but fails if a
// single-file function with the same base name sits next to it.
func CheckRemoteTarget(path string) error {
	for _, ext := range constants.SingleFileFunctionExtensions {
		candidate := path + ext
		info, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		if info.Mode().IsRegular() {
			return &TargetExistsError{Path: candidate, SingleFile: true}
		}
	}
	return nil
}
